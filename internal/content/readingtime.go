package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// inline elements do not separate words: "<strong>spa</strong>ce" is one word.
var inlineElements = map[atom.Atom]bool{
	atom.A:      true,
	atom.B:      true,
	atom.Em:     true,
	atom.I:      true,
	atom.Span:   true,
	atom.Strong: true,
	atom.Code:   true,
}

// CountWords counts the whitespace-separated words in the visible text of an
// HTML fragment.
func CountWords(fragment string) int {
	var text strings.Builder
	skip := 0

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return len(strings.Fields(text.String()))
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style:
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			case !inlineElements[a]:
				text.WriteByte(' ')
			}
		}
	}
}

// ReadingTime formats the minutes needed to read words words, rounded up.
func ReadingTime(words int) string {
	if words < 0 {
		words = 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return fmt.Sprintf("%d min", minutes)
}
