package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// urlPattern matches bare http(s) URLs delimited by whitespace. It runs on
// already-escaped text, so the anchors it inserts are the only markup present.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// FormatText turns raw post text into safe markup: escape everything first,
// then wrap URL tokens in anchors that open in a new context without an opener
// reference, then convert newlines to line breaks. The order is load-bearing:
// the anchor insertion must never re-escape the URL or the tag itself.
func FormatText(text string) string {
	escaped := template.HTMLEscapeString(text)

	withLinks := urlPattern.ReplaceAllStringFunc(escaped, func(url string) string {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, url, url)
	})

	return strings.ReplaceAll(withLinks, "\n", "<br>")
}
