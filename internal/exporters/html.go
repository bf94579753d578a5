package exporters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/zipshelf/internal/entities"
)

// ErrInvalidInput indicates the renderer was handed no book sequence at all
var ErrInvalidInput = errors.New("invalid book data: not a sequence")

// HTMLRenderer renders books as an embeddable HTML fragment.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns one book card per book inside a single section. A nil slice
// is rejected; an empty one renders the section without cards.
func (r *HTMLRenderer) Render(books []entities.Book) (string, error) {
	if books == nil {
		return "", ErrInvalidInput
	}

	var builder strings.Builder
	builder.WriteString("<section class=\"books\">\n")
	builder.WriteString("  <h1>Books</h1>\n")
	for _, book := range books {
		writeBookCard(&builder, book)
	}
	builder.WriteString("</section>\n")

	return builder.String(), nil
}

func writeBookCard(builder *strings.Builder, book entities.Book) {
	builder.WriteString("  <div class=\"book-card\">\n")
	fmt.Fprintf(builder, "    <h2>%s</h2>\n", EscapeHTML(book.Name))
	fmt.Fprintf(builder, "    <b>Price: %s</b>\n", EscapeHTML(book.Price))
	builder.WriteString("    <br>\n")
	builder.WriteString("    <b>Description:</b>\n")
	fmt.Fprintf(builder, "    <p>%s</p>\n", EscapeHTML(book.Description))
	builder.WriteString("  </div>\n")
}

// EscapeHTML escapes the five reserved HTML characters. The ampersand goes
// first so entities produced by the later replacements are left intact.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}
