/*
Package console outputs rich text documents to a terminal.

Formats are visualized with colors and text attributes, as far as a terminal
is able to display them. Console output is meant for diagnostics and for
command line tools; it is not a faithful rendering of a document.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package console

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/richtext"
	"github.com/npillmayer/richtext/formats"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

// Palette maps format names to terminal attributes. Attributes of all the
// formats of a run are combined.
type Palette map[string][]color.Attribute

// DefaultPalette returns a palette for the default formats.
func DefaultPalette() Palette {
	return Palette{
		formats.Bold:          {color.Bold},
		formats.Code:          {color.FgCyan},
		formats.Italic:        {color.Italic},
		formats.Link:          {color.FgBlue, color.Underline},
		formats.StrikeThrough: {color.CrossedOut},
		formats.Subscript:     {color.Faint},
		formats.Superscript:   {color.Faint},
	}
}

var setupGraphemes sync.Once

// Printer writes documents to a console with a fixed width font, wrapping
// lines at word boundaries.
type Printer struct {
	Palette   Palette
	LineWidth int            // target line length in ‘en’s; 0 disables wrapping
	Context   *uax11.Context // context for East Asian widths
	col       int            // position within the current line
}

// NewPrinter creates a printer for the current terminal. If palette is nil,
// the default palette is used.
func NewPrinter(palette Palette) *Printer {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Printer{
		Palette:   palette,
		LineWidth: LineWidth(),
		Context:   uax11.ContextFromEnvironment(),
	}
}

// Print outputs the complete document to w.
func (p *Printer) Print(w io.Writer, doc *richtext.Document) error {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	if p.Context == nil {
		p.Context = uax11.LatinContext
	}
	p.col = 0
	err := doc.EachRun(0, richtext.ToEnd, func(run richtext.Run, _ int) error {
		return p.printRun(w, run)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Print outputs a document to stdout, using the default palette.
func Print(doc *richtext.Document) error {
	return NewPrinter(nil).Print(os.Stdout, doc)
}

func (p *Printer) printRun(w io.Writer, run richtext.Run) error {
	c := p.colorFor(run.Format)
	lines := strings.Split(run.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			p.col = 0
		}
		for _, segment := range strings.SplitAfter(line, " ") {
			if segment == "" {
				continue
			}
			width := p.width(strings.TrimRight(segment, " "))
			if p.LineWidth > 0 && p.col > 0 && p.col+width > p.LineWidth {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				p.col = 0
			}
			if err := p.write(w, c, segment); err != nil {
				return err
			}
			p.col += p.width(segment)
		}
	}
	return nil
}

// colorFor returns nil if no format of f is part of the palette.
func (p *Printer) colorFor(f richtext.Format) *color.Color {
	var c *color.Color
	f.Each(func(name string, _ richtext.Attributes) {
		if attrs, ok := p.Palette[name]; ok {
			if c == nil {
				c = color.New()
			}
			c.Add(attrs...)
		}
	})
	return c
}

func (p *Printer) write(w io.Writer, c *color.Color, s string) error {
	var err error
	if c == nil {
		_, err = io.WriteString(w, s)
	} else {
		_, err = c.Fprint(w, s)
	}
	return err
}

func (p *Printer) width(s string) int {
	if s == "" {
		return 0
	}
	return uax11.StringWidth(grapheme.StringFromString(s), p.Context)
}

// --- Terminal --------------------------------------------------------------

// LineWidth is a simple heuristic for the line length of console output. If
// stdout is a terminal, the result is derived from the terminal's width.
func LineWidth() int {
	lw := 65
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			switch {
			case w > 65:
				lw = w - 10
			case w > 30:
				lw = w - 5
			case w > 10:
				lw = w
			default:
				lw = 10
			}
		}
	}
	tracer().Infof("setting line length to %d en", lw)
	return lw
}
