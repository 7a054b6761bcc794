package showtimes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nyc-rep-showtimes/lib/schedule"
	"nyc-rep-showtimes/lib/snapshotstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/showtimes")

// Scraper is one theater source. Fetch and Parse are separate so the
// pipeline owns the failure policy between them and tests can feed
// Parse canned markup.
type Scraper interface {
	Source() string
	URL() string
	Fetch(ctx context.Context) ([]byte, error)
	Parse(ctx context.Context, body []byte, fetchedAt time.Time) (*schedule.Document, error)
}

// Pipeline runs one source end to end: fetch, parse, assemble, persist.
//
// the keep-last-known-good policy lives here, at the persistence
// boundary, not inside the fetcher or locator: any fetch or layout
// failure becomes a logged warning and an untouched output file when a
// previous run's document exists, and a hard error only when it
// doesn't. a soft-failed run exits successfully so one bad morning
// doesn't blank the downstream site.
type Pipeline struct {
	scraper    Scraper
	outputPath string
	snapshots  *snapshotstore.Store
}

// snapshots may be nil, archiving is best effort either way
func NewPipeline(scraper Scraper, outputPath string, snapshots *snapshotstore.Store) Pipeline {
	return Pipeline{
		scraper:    scraper,
		outputPath: outputPath,
		snapshots:  snapshots,
	}
}

func (p Pipeline) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("source", p.scraper.Source()))

	body, err := p.scraper.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return p.degrade(err)
	}

	doc, err := p.scraper.Parse(ctx, body, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		return p.degrade(err)
	}

	if err := p.write(doc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist output")
		return fmt.Errorf("%s: persist output: %w", p.scraper.Source(), err)
	}

	if p.snapshots != nil {
		if err := p.snapshots.Push(ctx, doc); err != nil {
			slog.Warn("failed to archive run snapshot",
				"source", p.scraper.Source(), "err", err)
		}
	}

	slog.Info("wrote schedule",
		"source", p.scraper.Source(),
		"path", p.outputPath,
		"films", len(doc.Films),
		"screenings", len(doc.Screenings))
	return nil
}

func (p Pipeline) degrade(cause error) error {
	if _, err := os.Stat(p.outputPath); err == nil {
		slog.Warn("keeping last known good output",
			"source", p.scraper.Source(),
			"path", p.outputPath,
			"err", cause)
		return nil
	}
	return fmt.Errorf("%s: no previous output to fall back on: %w", p.scraper.Source(), cause)
}

// write replaces the output file atomically: the new document lands in
// a temp file first and renames over the old one, so a crash mid-write
// can never leave a truncated file for the downstream site
func (p Pipeline) write(doc *schedule.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')

	dir := filepath.Dir(p.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p.outputPath)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.outputPath)
}
