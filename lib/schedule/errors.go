package schedule

import "fmt"

// LayoutError means the anchor markup a scraper depends on is missing
// from the fetched page, usually a site redesign. the pipeline treats
// it like a fetch failure: fatal on first run, keep-last-known-good
// afterwards.
type LayoutError struct {
	Source  string
	Missing string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: expected markup not found: %s", e.Source, e.Missing)
}
