package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const testPage = `<div id="tabs-3">
	<!-- 19 -->
	<p><strong><a href="/film/sunset-blvd">Billy Wilder&rsquo;s
	SUNSET BLVD.</a></strong></p>
</div>`

func TestComments(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testPage))
	require.NoError(t, err)

	sel := doc.Find("#tabs-3")
	require.Equal(t, 1, sel.Length())

	comments := Comments(sel.Nodes[0])
	require.Len(t, comments, 1)
	require.Equal(t, "19", strings.TrimSpace(comments[0]))
}

func TestGetTextAndClean(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testPage))
	require.NoError(t, err)

	a := doc.Find("a")
	require.Equal(t, 1, a.Length())

	raw := GetText(a.Nodes[0])
	require.Contains(t, raw, "\n")
	require.Equal(t, "Billy Wilder’s SUNSET BLVD.", CleanText(raw))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "", CleanText("  \n\t "))
	require.Equal(t, "a b", CleanText(" a \n\n  b "))
}
