// Package normalize flattens raw page markup into plain searchable text.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
)

// Flatten strips non-content elements and structural markup, then collapses
// all whitespace runs and inter-element boundaries into single spaces.
// Malformed markup degrades to best-effort text extraction; Flatten never
// fails.
func Flatten(markup string) string {
	text := scriptTag.ReplaceAllString(markup, " ")
	text = styleTag.ReplaceAllString(text, " ")
	text = noscriptTag.ReplaceAllString(text, " ")
	text = htmlComments.ReplaceAllString(text, " ")
	text = allTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
