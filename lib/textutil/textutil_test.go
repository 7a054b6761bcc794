package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	// punctuation/case variants of the same title must collapse to the
	// same identifier
	require.Equal(t, Slugify("Sunset Blvd."), Slugify("SUNSET   BLVD"))
	require.Equal(t, "the-400-blows", Slugify("The 400 Blows"))
	require.Equal(t, "billy-wilders-sunset-blvd", Slugify("Billy Wilder's\n SUNSET BLVD."))
	require.Equal(t, "", Slugify(""))
}
