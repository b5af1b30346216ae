package stringutil

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes HTML markup from s, keeping only text content, and
// re-escapes the characters that are significant in HTML (including quotes).
// Comments, doctypes and the content of script and style elements are dropped.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&'\"") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				// The tokenizer only fails on reader errors, which a strings.Reader never returns.
				return html.EscapeString(s)
			}
			return b.String()
		case html.StartTagToken:
			if isRawTextElement(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && isRawTextElement(z) {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}
		}
	}
}

func isRawTextElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
