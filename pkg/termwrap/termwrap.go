// Package termwrap wraps long help text to the width of the attached
// terminal.
package termwrap

import (
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

type TermWrap struct {
	width  int
	height int
}

// NewTermWrap sizes a wrapper from the current terminal, falling back to the
// provided defaults when not attached to one.
func NewTermWrap(defaultWidth, defaultHeight int) *TermWrap {
	var err error
	tw := &TermWrap{}

	tw.width, tw.height, err = term.GetSize(0)
	if err != nil {
		tw.width = defaultWidth
		tw.height = defaultHeight
	}

	return tw
}

// Paragraph rewraps content to the terminal width.
func (tw *TermWrap) Paragraph(content string) string {
	return wordwrap.WrapString(content, uint(tw.width))
}
