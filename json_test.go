package richtext_test

import (
	"testing"

	"github.com/npillmayer/richtext"
	"github.com/npillmayer/richtext/formats"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestToJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, 5, nil)
	doc.AddFormat(formats.Link, 0, 5, richtext.Attributes{formats.Href: "https://x.io", formats.Title: "X"})
	js := doc.ToJSON(0, richtext.ToEnd)
	require.True(t, gjson.Valid(js), js)
	assert.Equal(t, int64(2), gjson.Get(js, "#").Int())
	assert.Equal(t, "Hello", gjson.Get(js, "0.text").String())
	assert.True(t, gjson.Get(js, "0.format.bold").Bool())
	assert.Equal(t, "https://x.io", gjson.Get(js, "0.format.link.href").String())
	assert.Equal(t, " world", gjson.Get(js, "1.text").String())
	assert.Equal(t, "{}", gjson.Get(js, "1.format").Raw)
	assert.Equal(t, `[{"text":"Hello","format":{"bold":true,"link":{"href":"https://x.io","title":"X"}}},`+
		`{"text":" world","format":{}}]`, js)
	//
	assert.Equal(t, "[]", richtext.New().ToJSON(0, richtext.ToEnd))
}

func TestJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Grüße \"World\"")
	doc.AddFormat(formats.Italic, 0, 5, nil)
	doc.AddFormat(formats.Link, 7, richtext.ToEnd, richtext.Attributes{formats.Href: "https://y.io"})
	chars, err := richtext.CharactersFromJSON(doc.ToJSON(0, richtext.ToEnd))
	require.NoError(t, err)
	orig := doc.Clone()
	require.Len(t, chars, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Text, chars[i].Text)
		assert.True(t, orig[i].Format.Equals(chars[i].Format), "format at %d", i)
	}
}

func TestCharactersFromJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	chars, err := richtext.CharactersFromJSON(
		`[{"text":"H","format":{"bold":true,"italic":false}},{"text":"i","format":{"link":{"href":"a","rel":null}}},{"text":"!"}]`)
	require.NoError(t, err)
	require.Len(t, chars, 3)
	assert.Equal(t, []string{formats.Bold}, chars[0].Format.Names())
	link, ok := chars[1].Format.Get(formats.Link)
	require.True(t, ok)
	assert.Equal(t, richtext.Attributes{formats.Href: "a"}, link)
	assert.True(t, chars[2].Format.IsEmpty())
	//
	for _, bad := range []string{`{"text":"x"}`, `[1,2]`, `[{"text":`, ``} {
		_, err := richtext.CharactersFromJSON(bad)
		assert.ErrorIs(t, err, richtext.ErrInvalidJSON, bad)
	}
}
