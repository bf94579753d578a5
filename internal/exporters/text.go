package exporters

import (
	"errors"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockBreaks lists the tags that end the current line, with the number of
// line breaks owed before the next text (2 leaves a blank line).
var blockBreaks = map[atom.Atom]int{
	atom.Section:    2,
	atom.Article:    2,
	atom.Div:        2,
	atom.P:          2,
	atom.H1:         2,
	atom.H2:         2,
	atom.H3:         2,
	atom.H4:         2,
	atom.H5:         2,
	atom.H6:         2,
	atom.Blockquote: 2,
	atom.Ul:         2,
	atom.Ol:         2,
	atom.Li:         1,
	atom.Tr:         1,
	atom.Br:         1,
	atom.Hr:         2,
}

var headingTags = map[atom.Atom]bool{
	atom.H1: true,
	atom.H2: true,
	atom.H3: true,
	atom.H4: true,
	atom.H5: true,
	atom.H6: true,
}

var skipTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

// TextRenderer converts HTML fragments to console text: block elements start
// new lines, headings are upper-cased and paragraphs wrap at Width columns.
type TextRenderer struct {
	Width int
}

func NewTextRenderer(width int) *TextRenderer {
	return &TextRenderer{Width: width}
}

// Render converts fragment to plain text.
func (r *TextRenderer) Render(fragment string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	w := &textWriter{width: r.Width}
	skipDepth := 0
	headingDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			w.flush(0)
			return w.out.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			a := atom.Lookup(name)
			if skipTags[a] {
				if tt == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if breaks, ok := blockBreaks[a]; ok {
				w.flush(breaks)
			}
			if headingTags[a] && tt == html.StartTagToken {
				headingDepth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			a := atom.Lookup(name)
			if skipTags[a] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if breaks, ok := blockBreaks[a]; ok {
				w.flush(breaks)
			}
			if headingTags[a] && headingDepth > 0 {
				headingDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			// Text is already unescaped by the tokenizer
			text := string(tokenizer.Text())
			if headingDepth > 0 {
				text = strings.ToUpper(text)
			}
			w.inline.WriteString(text)
		}
	}
}

type textWriter struct {
	out     strings.Builder
	inline  strings.Builder
	pending int
	width   int
}

// flush writes the collected inline text as one wrapped block and records the
// line breaks owed before the next block.
func (w *textWriter) flush(breaks int) {
	words := strings.Fields(w.inline.String())
	w.inline.Reset()

	if len(words) > 0 {
		if w.out.Len() > 0 {
			w.out.WriteString(strings.Repeat("\n", max(w.pending, 1)))
		}
		w.writeWrapped(words)
		w.pending = 0
	}
	w.pending = max(w.pending, breaks)
}

// writeWrapped lays words out on lines no wider than w.width display columns.
// A word wider than the limit gets a line of its own.
func (w *textWriter) writeWrapped(words []string) {
	lineWidth := 0
	for i, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if i > 0 {
			if w.width > 0 && lineWidth+1+wordWidth > w.width {
				w.out.WriteByte('\n')
				lineWidth = 0
			} else {
				w.out.WriteByte(' ')
				lineWidth++
			}
		}
		w.out.WriteString(word)
		lineWidth += wordWidth
	}
}
