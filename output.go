package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

// LinkFormat is the name of the format for hyperlinks, as used by ActiveLink.
const LinkFormat = "link"

// placeholder keeps a trailing empty line visible in rendered markup.
const placeholder = "&nbsp;"

// --- Queries ---------------------------------------------------------------

// HasFormat reports whether every character in range carries format name.
// For an empty range it is vacuously true.
func (doc *Document) HasFormat(name string, start, length int) bool {
	spn := toSpan(start, length, len(doc.chars))
	for i := spn.l; i < spn.r; i++ {
		if !doc.chars[i].Format.Has(name) {
			return false
		}
	}
	return true
}

// ActiveFormats returns the names of formats applied uniformly to every
// character in range, in order of first appearance. Formats present on just a
// part of the range are not reported.
func (doc *Document) ActiveFormats(start, length int) []string {
	spn := toSpan(start, length, len(doc.chars))
	active := []string{}
	seen := map[string]bool{}
	for i := spn.l; i < spn.r; i++ {
		for _, name := range doc.chars[i].Format.Names() {
			if seen[name] {
				continue
			}
			seen[name] = true
			if doc.HasFormat(name, spn.l, spn.len()) {
				active = append(active, name)
			}
		}
	}
	return active
}

// ActiveLink returns the attributes of the last link in range. With a caret
// between two adjacent links, this selects the link just before the caret.
func (doc *Document) ActiveLink(start, length int) (Attributes, bool) {
	spn := toSpan(start, length, len(doc.chars))
	var link Attributes
	found := false
	for i := spn.l; i < spn.r; i++ {
		if attrs, ok := doc.chars[i].Format.Get(LinkFormat); ok {
			link, found = attrs, true
		}
	}
	return link.Clone(), found
}

// Get returns a copy of the characters in range.
func (doc *Document) Get(start, length int) []Character {
	spn := toSpan(start, length, len(doc.chars))
	return CloneCharacters(doc.chars[spn.l:spn.r])
}

// Clone returns a copy of all characters.
func (doc *Document) Clone() []Character {
	return CloneCharacters(doc.chars)
}

// --- Output ----------------------------------------------------------------

// Runs returns the runs of identically formatted characters in range.
func (doc *Document) Runs(start, length int) []Run {
	spn := toSpan(start, length, len(doc.chars))
	return RunsOf(doc.chars[spn.l:spn.r])
}

// EachRun calls f for every run in range, together with the run's position.
// Iteration stops at the first error, which is returned.
func (doc *Document) EachRun(start, length int, f func(run Run, pos int) error) error {
	spn := toSpan(start, length, len(doc.chars))
	pos := spn.l
	for _, run := range RunsOf(doc.chars[spn.l:spn.r]) {
		if err := f(run, pos); err != nil {
			return err
		}
		pos += len([]rune(run.Text))
	}
	return nil
}

// ToText returns the text in range, ignoring all formats.
func (doc *Document) ToText(start, length int) string {
	spn := toSpan(start, length, len(doc.chars))
	return TextOf(doc.chars[spn.l:spn.r])
}

// ToHTML renders the range as markup. Text is escaped, then every run is
// wrapped by the renderers of its formats, the format set first being the
// innermost. If the markup ends with a line break, a non-breaking space is
// appended to keep the empty last line visible.
func (doc *Document) ToHTML(start, length int) string {
	var sb strings.Builder
	for _, run := range doc.Runs(start, length) {
		sb.WriteString(doc.renderRun(run))
	}
	markup := sb.String()
	if strings.HasSuffix(markup, "\n") {
		markup += placeholder
	}
	return markup
}

func (doc *Document) renderRun(run Run) string {
	markup := html.EscapeString(run.Text)
	run.Format.Each(func(name string, attrs Attributes) {
		markup = doc.registry.Render(name, markup, attrs)
	})
	return markup
}
