package richtext

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON serializes the runs in range as a JSON array of objects
//
//	[{"text":"Hello","format":{"bold":true,"link":{"href":"…"}}}, …]
//
// Format names appear in the order they have been set; attributes of a format
// are sorted by key.
func (doc *Document) ToJSON(start, length int) string {
	return RunsToJSON(doc.Runs(start, length))
}

// RunsToJSON serializes runs as a JSON array.
func RunsToJSON(runs []Run) string {
	arr := "[]"
	for _, run := range runs {
		obj, err := sjson.Set("{}", "text", run.Text)
		if err != nil {
			tracer().Errorf("cannot serialize run text: %v", err)
			continue
		}
		if obj, err = sjson.SetRaw(obj, "format", formatToJSON(run.Format)); err != nil {
			tracer().Errorf("cannot serialize run format: %v", err)
			continue
		}
		if arr, err = sjson.SetRaw(arr, "-1", obj); err != nil {
			tracer().Errorf("cannot append run: %v", err)
		}
	}
	return arr
}

func formatToJSON(f Format) string {
	obj := "{}"
	f.Each(func(name string, attrs Attributes) {
		var err error
		if attrs.IsMarker() {
			obj, err = sjson.Set(obj, jsonKey(name), true)
		} else {
			obj, err = sjson.SetRaw(obj, jsonKey(name), attributesToJSON(attrs))
		}
		if err != nil {
			tracer().Errorf("cannot serialize format %s: %v", name, err)
		}
	})
	return obj
}

func attributesToJSON(attrs Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := "{}"
	for _, k := range keys {
		var err error
		if obj, err = sjson.Set(obj, jsonKey(k), attrs[k]); err != nil {
			tracer().Errorf("cannot serialize attribute %s: %v", k, err)
		}
	}
	return obj
}

// jsonKeyEscaper escapes the path syntax characters of sjson.
var jsonKeyEscaper = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`, `:`, `\:`,
)

func jsonKey(key string) string {
	return jsonKeyEscaper.Replace(key)
}

// CharactersFromJSON reads characters from a JSON array as produced by
// ToJSON. Array elements may hold runs of text or single characters; every
// code point of a run becomes a character of its own. A format value of
// false or null is dropped, true denotes a marker and an object denotes
// attributes.
func CharactersFromJSON(data string) ([]Character, error) {
	if !gjson.Valid(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.Parse(data)
	if !root.IsArray() {
		return nil, ErrInvalidJSON
	}
	chars := []Character{}
	var err error
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = ErrInvalidJSON
			return false
		}
		format := formatFromJSON(item.Get("format"))
		chars = append(chars, Chars(item.Get("text").String(), format)...)
		return true
	})
	if err != nil {
		return nil, err
	}
	for i := range chars {
		chars[i].Format = chars[i].Format.Clone()
	}
	return chars, nil
}

func formatFromJSON(obj gjson.Result) Format {
	f := Format{}
	if !obj.IsObject() {
		return f
	}
	obj.ForEach(func(name, value gjson.Result) bool {
		switch {
		case value.Type == gjson.True:
			f = f.With(name.String(), Marker)
		case value.IsObject():
			attrs := Attributes{}
			value.ForEach(func(k, v gjson.Result) bool {
				if v.Type != gjson.Null {
					attrs[k.String()] = v.String()
				}
				return true
			})
			f = f.With(name.String(), attrs)
		}
		return true
	})
	return f
}
