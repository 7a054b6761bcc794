package metrograph

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata is the parsed form of the "/"-separated film byline, e.g.
// "Hu Bo / 2018 / 230min / DCP". every field is positional and
// individually optional; a zero value means the field was absent or
// unrecognizable, never an error.
type Metadata struct {
	Director   string
	Year       int
	RuntimeMin int
	Format     string
}

var (
	yearRegex    = regexp.MustCompile(`\d{4}`)
	runtimeRegex = regexp.MustCompile(`(\d+)\s*min`)
)

func ParseMetadata(text string) Metadata {
	parts := strings.Split(text, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var meta Metadata
	if len(parts) > 0 {
		meta.Director = parts[0]
	}
	if len(parts) > 1 {
		// the year can appear anywhere in the field ("c. 1932")
		if m := yearRegex.FindString(parts[1]); m != "" {
			meta.Year, _ = strconv.Atoi(m)
		}
	}
	if len(parts) > 2 {
		if m := runtimeRegex.FindStringSubmatch(parts[2]); m != nil {
			meta.RuntimeMin, _ = strconv.Atoi(m[1])
		}
	}
	if len(parts) > 3 {
		meta.Format = parts[3]
	}
	return meta
}
