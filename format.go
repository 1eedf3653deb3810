package richtext

import (
	"maps"
	"strings"
)

// Attributes carry the data of a format, e.g. the href of a link.
//
// A nil Attributes value denotes a plain marker format (like bold), which in
// markup terms is simply “on”. A non-nil map, even an empty one, denotes an
// attribute object.
type Attributes map[string]string

// Marker is the value of a format without attributes.
var Marker Attributes = nil

// IsMarker reports whether attrs denotes a plain marker format.
func (attrs Attributes) IsMarker() bool {
	return attrs == nil
}

// Get returns the value for key, or the empty string.
func (attrs Attributes) Get(key string) string {
	if attrs == nil {
		return ""
	}
	return attrs[key]
}

// Clone returns a deep copy; the copy of a marker is a marker.
func (attrs Attributes) Clone() Attributes {
	if attrs == nil {
		return nil
	}
	return maps.Clone(attrs)
}

// Equals compares two attribute values. A marker is only equal to a marker.
func (attrs Attributes) Equals(other Attributes) bool {
	if (attrs == nil) != (other == nil) {
		return false
	}
	return maps.Equal(attrs, other)
}

// --- Format ----------------------------------------------------------------

// Format is an ordered set of named formats applied to a character.
//
// The order of insertion is significant: when rendering markup, the format
// inserted first ends up innermost. Setting a format which is already present
// keeps its position.
//
// Format is a value type and its methods never modify the receiver. Many
// characters may therefore share the same underlying entries.
type Format struct {
	entries []formatEntry
}

type formatEntry struct {
	name  string
	attrs Attributes
}

// NewFormat creates a format set from a list of names, all of them markers.
func NewFormat(names ...string) Format {
	f := Format{}
	for _, name := range names {
		f = f.With(name, Marker)
	}
	return f
}

// Len returns the number of formats in f.
func (f Format) Len() int {
	return len(f.entries)
}

// IsEmpty is true if no format is present.
func (f Format) IsEmpty() bool {
	return len(f.entries) == 0
}

func (f Format) index(name string) int {
	for i, e := range f.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// Has reports whether format name is present.
func (f Format) Has(name string) bool {
	return f.index(name) >= 0
}

// Get returns the attributes of format name and whether it is present.
func (f Format) Get(name string) (Attributes, bool) {
	if i := f.index(name); i >= 0 {
		return f.entries[i].attrs, true
	}
	return nil, false
}

// Names returns the format names in insertion order.
func (f Format) Names() []string {
	names := make([]string, len(f.entries))
	for i, e := range f.entries {
		names[i] = e.name
	}
	return names
}

// With returns a copy of f with format name set to attrs.
func (f Format) With(name string, attrs Attributes) Format {
	entries := make([]formatEntry, len(f.entries), len(f.entries)+1)
	copy(entries, f.entries)
	if i := f.index(name); i >= 0 {
		entries[i].attrs = attrs.Clone()
		return Format{entries: entries}
	}
	entries = append(entries, formatEntry{name: name, attrs: attrs.Clone()})
	return Format{entries: entries}
}

// Without returns a copy of f with format name removed.
func (f Format) Without(name string) Format {
	i := f.index(name)
	if i < 0 {
		return f
	}
	entries := make([]formatEntry, 0, len(f.entries)-1)
	entries = append(entries, f.entries[:i]...)
	entries = append(entries, f.entries[i+1:]...)
	return Format{entries: entries}
}

// Clone returns a deep copy of f.
func (f Format) Clone() Format {
	if len(f.entries) == 0 {
		return Format{}
	}
	entries := make([]formatEntry, len(f.entries))
	for i, e := range f.entries {
		entries[i] = formatEntry{name: e.name, attrs: e.attrs.Clone()}
	}
	return Format{entries: entries}
}

// Equals is a structural comparison, including the order of formats.
func (f Format) Equals(other Format) bool {
	if len(f.entries) != len(other.entries) {
		return false
	}
	for i, e := range f.entries {
		o := other.entries[i]
		if e.name != o.name || !e.attrs.Equals(o.attrs) {
			return false
		}
	}
	return true
}

// Each calls fn for every format in insertion order.
func (f Format) Each(fn func(name string, attrs Attributes)) {
	for _, e := range f.entries {
		fn(e.name, e.attrs)
	}
}

// String returns an informational string. Clients must not rely on its form.
func (f Format) String() string {
	if len(f.entries) == 0 {
		return "[plain]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range f.entries {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.name)
		if !e.attrs.IsMarker() {
			sb.WriteString("{…}")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
