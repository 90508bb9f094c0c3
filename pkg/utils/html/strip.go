// ABOUTME: HTML utilities for turning markup into plain text
// ABOUTME: Used for badge hover texts and for page meta descriptions built from rendered markdown

package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed.
// Script and style content is dropped and entities are decoded.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	var b strings.Builder
	tokenizer := xhtml.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch tokenizer.Next() {
		case xhtml.ErrorToken:
			return collapse(b.String())
		case xhtml.StartTagToken:
			name, _ := tokenizer.TagName()
			if isHidden(name) {
				skip++
			}
			b.WriteByte(' ')
		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			if isHidden(name) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case xhtml.SelfClosingTagToken:
			b.WriteByte(' ')
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// Truncate shortens text to at most max runes, cutting at a word boundary and adding an ellipsis
func Truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

func isHidden(tag []byte) bool {
	switch string(tag) {
	case "script", "style":
		return true
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
