package richtext

import (
	"strings"
	"unicode/utf8"
)

// Character is a single code point of a document together with its formats.
type Character struct {
	Text   rune
	Format Format
}

// Char is a shortcut to create a character with marker formats.
func Char(r rune, formats ...string) Character {
	return Character{Text: r, Format: NewFormat(formats...)}
}

// Chars splits a string into characters, all sharing format f.
func Chars(s string, f Format) []Character {
	chars := make([]Character, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		chars = append(chars, Character{Text: r, Format: f})
	}
	return chars
}

// Clone returns a deep copy of ch.
func (ch Character) Clone() Character {
	return Character{Text: ch.Text, Format: ch.Format.Clone()}
}

// CloneCharacters returns a deep copy of a slice of characters. The result
// is never nil.
func CloneCharacters(chars []Character) []Character {
	c := make([]Character, len(chars))
	for i, ch := range chars {
		c[i] = ch.Clone()
	}
	return c
}

// TextOf concatenates the text of a slice of characters.
func TextOf(chars []Character) string {
	var sb strings.Builder
	for _, ch := range chars {
		sb.WriteRune(ch.Text)
	}
	return sb.String()
}

// --- Runs ------------------------------------------------------------------

// Run is a maximal stretch of characters with identical formats. Runs are
// computed for output only and never stored.
type Run struct {
	Text   string
	Format Format
}

// RunsOf merges adjacent characters with structurally identical formats.
func RunsOf(chars []Character) []Run {
	runs := make([]Run, 0, 4)
	var sb strings.Builder
	for i, ch := range chars {
		if i > 0 && !ch.Format.Equals(chars[i-1].Format) {
			runs[len(runs)-1].Text = sb.String()
			sb.Reset()
		}
		if i == 0 || !ch.Format.Equals(chars[i-1].Format) {
			runs = append(runs, Run{Format: ch.Format.Clone()})
		}
		sb.WriteRune(ch.Text)
	}
	if len(runs) > 0 {
		runs[len(runs)-1].Text = sb.String()
	}
	return runs
}
