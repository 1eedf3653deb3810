package richtext

import (
	"unicode/utf8"

	"github.com/derekparker/trie"
)

// Trigger names an exact text pattern. Whenever an insertion leaves the
// document with exactly this text, the trigger fires.
//
// Typical patterns are markdown-like shortcuts, e.g. "# " for a heading.
// The document itself does not run any side effect; it reports the name of
// the fired trigger to the caller of InsertText.
type Trigger struct {
	Pattern string
	Name    string
}

type triggerTable struct {
	patterns *trie.Trie
	longest  int // length of the longest pattern in code points
	count    int
}

func newTriggerTable(triggers []Trigger) *triggerTable {
	tt := &triggerTable{patterns: trie.New()}
	for _, t := range triggers {
		if t.Pattern == "" {
			continue
		}
		if _, exists := tt.patterns.Find(t.Pattern); exists {
			tracer().Infof("duplicate trigger pattern %q ignored", t.Pattern)
			continue
		}
		tt.patterns.Add(t.Pattern, t.Name)
		tt.count++
		if l := utf8.RuneCountInString(t.Pattern); l > tt.longest {
			tt.longest = l
		}
	}
	return tt
}

// match checks the complete text of a buffer against the trigger patterns.
func (tt *triggerTable) match(chars []Character) (string, bool) {
	if tt == nil || tt.count == 0 || len(chars) == 0 || len(chars) > tt.longest {
		return "", false
	}
	node, ok := tt.patterns.Find(TextOf(chars))
	if !ok {
		return "", false
	}
	name, _ := node.Meta().(string)
	return name, true
}
