// Package richtext renders Prismic rich-text fields as HTML or plain text.
//
// Span offsets in the content API are JavaScript string indices, so they are
// applied to the UTF-16 encoding of each block's text.
package richtext

import (
	"bytes"
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
)

// RichText is an ordered list of rich-text blocks.
type RichText []Block

// Block is a single structured-text element (paragraph, heading, list item...).
type Block struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	Spans      []Span      `json:"spans,omitempty"`
	URL        string      `json:"url,omitempty"`
	Alt        *string     `json:"alt,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Oembed     *Embed      `json:"oembed,omitempty"`
}

// Span is inline formatting applied to Text[Start:End].
type Span struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Type  string    `json:"type"`
	Data  *SpanData `json:"data,omitempty"`
}

// SpanData carries the link target of a hyperlink span or the name of a label span.
type SpanData struct {
	LinkType string `json:"link_type,omitempty"`
	URL      string `json:"url,omitempty"`
	Target   string `json:"target,omitempty"`
	UID      string `json:"uid,omitempty"`
	Type     string `json:"type,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Dimensions of an image block.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Embed is the oEmbed payload of an embed block.
type Embed struct {
	Type         string `json:"type,omitempty"`
	EmbedURL     string `json:"embed_url,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
	HTML         string `json:"html,omitempty"`
}

// LinkResolver maps hyperlink span data to an href.
type LinkResolver func(SpanData) string

// DefaultLinkResolver links web and media links to their URL and documents to
// their post page.
func DefaultLinkResolver(d SpanData) string {
	switch {
	case d.URL != "":
		return d.URL
	case d.UID != "":
		return "/post/" + d.UID
	default:
		return "#"
	}
}

// AsHTML renders rt as an HTML fragment.
func AsHTML(rt RichText, resolve LinkResolver) string {
	var buf bytes.Buffer
	Render(&buf, rt, resolve)
	return buf.String()
}

// AsText joins the text of every block with a single space.
func AsText(rt RichText) string {
	parts := make([]string, 0, len(rt))
	for _, b := range rt {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Render writes the HTML representation of rt to buf. Consecutive list items
// are grouped into a single <ul> or <ol>; unknown block types are skipped.
func Render(buf *bytes.Buffer, rt RichText, resolve LinkResolver) {
	if resolve == nil {
		resolve = DefaultLinkResolver
	}
	list := ""
	flushList := func() {
		if list != "" {
			buf.WriteString("</" + list + ">")
			list = ""
		}
	}
	openList := func(tag string) {
		if list != tag {
			flushList()
			buf.WriteString("<" + tag + ">")
			list = tag
		}
	}

	for _, b := range rt {
		switch b.Type {
		case "list-item":
			openList("ul")
			writeElement(buf, "li", b, resolve)
			continue
		case "o-list-item":
			openList("ol")
			writeElement(buf, "li", b, resolve)
			continue
		}

		flushList()
		switch b.Type {
		case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
			writeElement(buf, "h"+strings.TrimPrefix(b.Type, "heading"), b, resolve)
		case "paragraph":
			writeElement(buf, "p", b, resolve)
		case "preformatted":
			writeElement(buf, "pre", b, resolve)
		case "image":
			writeImage(buf, b)
		case "embed":
			writeEmbed(buf, b)
		}
	}
	flushList()
}

func writeElement(buf *bytes.Buffer, tag string, b Block, resolve LinkResolver) {
	buf.WriteString("<" + tag + ">")
	writeSpans(buf, b.Text, b.Spans, resolve)
	buf.WriteString("</" + tag + ">")
}

func writeImage(buf *bytes.Buffer, b Block) {
	alt := ""
	if b.Alt != nil {
		alt = *b.Alt
	}
	buf.WriteString(`<p class="block-img"><img src="`)
	buf.WriteString(html.EscapeString(b.URL))
	buf.WriteString(`" alt="`)
	buf.WriteString(html.EscapeString(alt))
	buf.WriteString(`"`)
	if b.Dimensions != nil {
		buf.WriteString(` width="` + strconv.Itoa(b.Dimensions.Width) + `" height="` + strconv.Itoa(b.Dimensions.Height) + `"`)
	}
	buf.WriteString(` /></p>`)
}

// writeEmbed trusts the oEmbed markup: it comes from the content repository, not from visitors.
func writeEmbed(buf *bytes.Buffer, b Block) {
	if b.Oembed == nil {
		return
	}
	buf.WriteString(`<div data-oembed="`)
	buf.WriteString(html.EscapeString(b.Oembed.EmbedURL))
	buf.WriteString(`" data-oembed-type="`)
	buf.WriteString(html.EscapeString(b.Oembed.Type))
	buf.WriteString(`" data-oembed-provider="`)
	buf.WriteString(html.EscapeString(b.Oembed.ProviderName))
	buf.WriteString(`">`)
	buf.WriteString(b.Oembed.HTML)
	buf.WriteString(`</div>`)
}

// writeSpans writes text with its spans applied. Overlapping spans that are not
// properly nested are closed and reopened at the boundary so the output stays
// well-formed.
func writeSpans(buf *bytes.Buffer, text string, spans []Span, resolve LinkResolver) {
	units := utf16.Encode([]rune(text))
	n := len(units)

	valid := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.End > n {
			s.End = n
		}
		if s.Start < 0 || s.Start >= s.End || openTag(s, resolve) == "" {
			continue
		}
		valid = append(valid, s)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})

	bounds := []int{0, n}
	for _, s := range valid {
		bounds = append(bounds, s.Start, s.End)
	}
	sort.Ints(bounds)

	var stack []Span
	next := 0
	last := -1
	for _, b := range bounds {
		if b == last {
			continue
		}
		last = b

		lowest := -1
		for i, s := range stack {
			if s.End == b {
				lowest = i
				break
			}
		}
		if lowest >= 0 {
			var reopen []Span
			for i := len(stack) - 1; i >= lowest; i-- {
				buf.WriteString(closeTag(stack[i]))
				if stack[i].End != b {
					reopen = append([]Span{stack[i]}, reopen...)
				}
			}
			stack = stack[:lowest]
			for _, s := range reopen {
				buf.WriteString(openTag(s, resolve))
				stack = append(stack, s)
			}
		}

		for next < len(valid) && valid[next].Start == b {
			buf.WriteString(openTag(valid[next], resolve))
			stack = append(stack, valid[next])
			next++
		}

		if b < n {
			end := n
			for _, nb := range bounds {
				if nb > b {
					end = nb
					break
				}
			}
			writeText(buf, string(utf16.Decode(units[b:end])))
		}
	}
}

func writeText(buf *bytes.Buffer, s string) {
	buf.WriteString(strings.ReplaceAll(html.EscapeString(s), "\n", "<br />"))
}

func openTag(s Span, resolve LinkResolver) string {
	switch s.Type {
	case "strong":
		return "<strong>"
	case "em":
		return "<em>"
	case "hyperlink":
		if s.Data == nil {
			return ""
		}
		tag := `<a href="` + html.EscapeString(resolve(*s.Data)) + `"`
		if s.Data.Target != "" {
			tag += ` target="` + html.EscapeString(s.Data.Target) + `" rel="noopener"`
		}
		return tag + ">"
	case "label":
		if s.Data == nil {
			return "<span>"
		}
		return `<span class="` + html.EscapeString(s.Data.Label) + `">`
	}
	return ""
}

func closeTag(s Span) string {
	switch s.Type {
	case "strong":
		return "</strong>"
	case "em":
		return "</em>"
	case "hyperlink":
		return "</a>"
	case "label":
		return "</span>"
	}
	return ""
}
