package exporters

import (
	"fmt"
	"io"
)

// ConsoleDisplay prints the text rendering of a fragment.
type ConsoleDisplay struct {
	out  io.Writer
	text *TextRenderer
}

func NewConsoleDisplay(out io.Writer, width int) *ConsoleDisplay {
	return &ConsoleDisplay{out: out, text: NewTextRenderer(width)}
}

func (d *ConsoleDisplay) Display(fragment string) error {
	text, err := d.text.Render(fragment)
	if err != nil {
		return fmt.Errorf("convert html to text: %w", err)
	}
	if _, err := fmt.Fprintln(d.out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
