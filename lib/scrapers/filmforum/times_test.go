package filmforum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	testCases := []struct {
		in       string
		expected TimeSlot
	}{
		{"8:00", TimeSlot{Time: "8:00", Tags: []string{}}},
		{"12:30", TimeSlot{Time: "12:30", Tags: []string{}}},
		{"2:45(OC)", TimeSlot{Time: "2:45", Tags: []string{"OC"}, Notes: "OC"}},
		{" 6:15 ", TimeSlot{Time: "6:15", Tags: []string{}}},
		// no leading-zero normalization: the literal survives
		{"09:05", TimeSlot{Time: "09:05", Tags: []string{}}},
		// unexpected formats keep the raw text as a diagnostic note
		{"Q&A to follow", TimeSlot{Notes: "Q&A to follow"}},
		{"7pm", TimeSlot{Notes: "7pm"}},
		{"2:45 (OC)", TimeSlot{Notes: "2:45 (OC)"}},
		{"", TimeSlot{}},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseTimeSlot(test.in), "input: %q", test.in)
	}
}
