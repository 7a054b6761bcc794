package filmforum

import (
	"regexp"
	"strings"
)

// TimeSlot is one parsed showtime cell. both forms the site uses:
//
//	"8:00"     -> Time "8:00", no tags
//	"2:45(OC)" -> Time "2:45", Tags ["OC"], Notes "OC"
//
// anything else leaves Time empty and the raw text in Notes. times stay
// as 12-hour literals; the site omits AM/PM and guessing would bake a
// wrong answer into the output.
type TimeSlot struct {
	Time  string
	Tags  []string
	Notes string
}

var timeSlotRegex = regexp.MustCompile(`^(\d{1,2}:\d{2})(?:\(([^)]+)\))?$`)

func ParseTimeSlot(raw string) TimeSlot {
	raw = strings.TrimSpace(raw)

	m := timeSlotRegex.FindStringSubmatch(raw)
	if m == nil {
		return TimeSlot{Notes: raw}
	}

	slot := TimeSlot{Time: m[1], Tags: []string{}}
	if m[2] != "" {
		slot.Tags = []string{m[2]}
		slot.Notes = m[2]
	}
	return slot
}
