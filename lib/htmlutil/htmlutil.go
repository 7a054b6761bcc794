package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// AbsoluteURL resolves a possibly-relative href against the page's base
// URL. unparsable input comes back unchanged, a later fetch of it will
// fail loudly instead.
func AbsoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Comments collects the text of every comment node under `node`.
// goquery's selection API never surfaces comment nodes, but Film Forum
// hides its day-of-month markers inside them.
func Comments(node *html.Node) []string {
	var out []string
	commentsRecursive(node, &out)
	return out
}

func commentsRecursive(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.CommentNode {
		*out = append(*out, node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		commentsRecursive(child, out)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText flattens rendered text the way a browser would: drops
// non-printable runes, trims, and collapses internal whitespace runs
// (including the newlines sites leave inside anchor text) to one space.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}
