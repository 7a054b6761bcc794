package textutil

import "github.com/gosimple/slug"

// Slugify lowercases a title and collapses non-alphanumeric runs to a
// single separator, e.g. "SUNSET BLVD." -> "sunset-blvd".
func Slugify(title string) string {
	return slug.Make(title)
}
