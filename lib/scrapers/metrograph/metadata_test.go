package metrograph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		in       string
		expected Metadata
	}{
		{
			in:       "Hu Bo / 2018 / 230min / DCP",
			expected: Metadata{Director: "Hu Bo", Year: 2018, RuntimeMin: 230, Format: "DCP"},
		},
		{
			// empty director is absent, not an error
			in:       " / 1932 / 73min / DCP",
			expected: Metadata{Year: 1932, RuntimeMin: 73, Format: "DCP"},
		},
		{
			// year extracted from inside the field
			in:       "Yasujiro Ozu / c. 1962 / 113 min / 35mm",
			expected: Metadata{Director: "Yasujiro Ozu", Year: 1962, RuntimeMin: 113, Format: "35mm"},
		},
		{
			// short strings degrade field by field
			in:       "Chantal Akerman",
			expected: Metadata{Director: "Chantal Akerman"},
		},
		{
			in:       "Chantal Akerman / 1975",
			expected: Metadata{Director: "Chantal Akerman", Year: 1975},
		},
		{
			// unparsable year and runtime degrade to absent
			in:       "Unknown / n.d. / feature / video",
			expected: Metadata{Director: "Unknown", Format: "video"},
		},
		{
			// "MIN" is not "min"
			in:       "Someone / 2001 / 90MIN / DCP",
			expected: Metadata{Director: "Someone", Year: 2001, Format: "DCP"},
		},
		{
			in:       "",
			expected: Metadata{},
		},
		{
			// extra trailing fields are ignored
			in:       "D / 1999 / 80min / 16mm / restored",
			expected: Metadata{Director: "D", Year: 1999, RuntimeMin: 80, Format: "16mm"},
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseMetadata(test.in), "input: %q", test.in)
	}
}
