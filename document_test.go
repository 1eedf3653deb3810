package richtext_test

import (
	"testing"

	"github.com/npillmayer/richtext"
	"github.com/npillmayer/richtext/formats"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := richtext.New()
	assert.Equal(t, 0, doc.Length())
	assert.Equal(t, "", doc.ToText(0, richtext.ToEnd))
	assert.Equal(t, "", doc.ToHTML(0, richtext.ToEnd))
	assert.False(t, doc.Undo(), "initial state cannot be undone")
	assert.False(t, doc.Redo())
	assert.Equal(t, 0, doc.Length())
	assert.NotNil(t, doc.Clone())
}

func TestInsertText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := richtext.New()
	for _, s := range []string{"T", "e", "", "s", "t"} {
		doc.InsertText(s, richtext.End)
	}
	assert.Equal(t, "Test", doc.ToText(0, richtext.ToEnd))
	//
	doc = richtext.New()
	doc.InsertText("A", richtext.End)
	doc.InsertText("C", richtext.End)
	doc.InsertText("B", 1)
	assert.Equal(t, "ABC", doc.ToText(0, richtext.ToEnd))
	//
	doc = richtext.New()
	doc.InsertText("B", richtext.End)
	doc.InsertText("C", richtext.End)
	doc.InsertText("A", 0)
	assert.Equal(t, "ABC", doc.ToText(0, richtext.ToEnd))
	//
	doc = richtext.New()
	doc.InsertText("A", richtext.End)
	doc.InsertText("D", richtext.End)
	doc.InsertText("BC", 1)
	assert.Equal(t, "ABCD", doc.ToText(0, richtext.ToEnd))
	//
	doc = richtext.New()
	doc.InsertText("world", richtext.End)
	doc.InsertText("Hello ", 0)
	assert.Equal(t, "Hello world", doc.ToText(0, richtext.ToEnd))
	doc.InsertText("!", 100)
	assert.Equal(t, "Hello world!", doc.ToText(0, richtext.ToEnd), "positions beyond the end append")
}

func TestInsertTextInheritsFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Held")
	doc.AddFormat(formats.Bold, 0, 4, nil)
	doc.InsertText("llo wor", 2)
	assert.Equal(t, "<strong>Hello world</strong>", doc.ToHTML(0, richtext.ToEnd))
	doc.InsertText("!", richtext.End)
	assert.Equal(t, "<strong>Hello world</strong>!", doc.ToHTML(0, richtext.ToEnd),
		"appended text has no successor to inherit from")
}

func TestRemoveText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Test")
	doc.RemoveText(richtext.End, 1)
	assert.Equal(t, "Tes", doc.ToText(0, richtext.ToEnd))
	doc = newDoc("Test")
	doc.RemoveText(1, 0)
	assert.Equal(t, "Tst", doc.ToText(0, richtext.ToEnd))
	doc = newDoc("Test")
	doc.RemoveText(1, 2)
	assert.Equal(t, "Tt", doc.ToText(0, richtext.ToEnd))
	doc = newDoc("Test")
	doc.RemoveText(2, 100)
	assert.Equal(t, "Te", doc.ToText(0, richtext.ToEnd))
}

func TestAddFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, richtext.ToEnd, nil)
	assert.Equal(t, "<strong>Hello world</strong>", doc.ToHTML(0, richtext.ToEnd))
	//
	doc = newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, 5, nil)
	assert.Equal(t, "<strong>Hello</strong> world", doc.ToHTML(0, richtext.ToEnd))
	doc.AddFormat(formats.Italic, 0, 5, nil)
	assert.Equal(t, "<em><strong>Hello</strong></em> world", doc.ToHTML(0, richtext.ToEnd))
}

func TestNestedFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Test")
	doc.AddFormat(formats.Italic, 0, richtext.ToEnd, nil)
	doc.AddFormat(formats.Bold, 0, 2, nil)
	assert.Equal(t, "<strong><em>Te</em></strong><em>st</em>", doc.ToHTML(0, richtext.ToEnd))
}

func TestRemoveFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, richtext.ToEnd, nil)
	doc.RemoveFormat(formats.Bold, 0, richtext.ToEnd)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
	//
	doc.AddFormat(formats.Bold, 0, 5, nil)
	doc.RemoveFormat(formats.Bold, 0, 5)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
}

func TestRemoveFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, richtext.ToEnd, nil)
	doc.AddFormat(formats.Italic, 0, richtext.ToEnd, nil)
	assert.Equal(t, "<em><strong>Hello world</strong></em>", doc.ToHTML(0, richtext.ToEnd))
	doc.RemoveFormats(0, richtext.ToEnd)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
}

func TestToggleFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.ToggleFormat(formats.Bold, 0, richtext.ToEnd, nil)
	assert.Equal(t, "<strong>Hello world</strong>", doc.ToHTML(0, richtext.ToEnd))
	doc.ToggleFormat(formats.Bold, 0, richtext.ToEnd, nil)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
	//
	doc.ToggleFormat(formats.Bold, 0, 5, nil)
	assert.Equal(t, "<strong>Hello</strong> world", doc.ToHTML(0, richtext.ToEnd))
	doc.ToggleFormat(formats.Bold, 0, 5, nil)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
}

func TestToggleMixedFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, 5, nil)
	doc.ToggleFormat(formats.Bold, 0, 8, nil)
	assert.Equal(t, "<strong>Hello wo</strong>rld", doc.ToHTML(0, richtext.ToEnd))
	doc.ToggleFormat(formats.Bold, 0, 8, nil)
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
}

func TestHasFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	assert.False(t, doc.HasFormat(formats.Bold, 0, richtext.ToEnd))
	doc.AddFormat(formats.Bold, 0, 5, nil)
	assert.True(t, doc.HasFormat(formats.Bold, 0, 5))
	assert.True(t, doc.HasFormat(formats.Bold, 2, 3))
	assert.False(t, doc.HasFormat(formats.Bold, 3, 10))
	assert.False(t, doc.HasFormat(formats.Bold, 5, 3))
	assert.True(t, doc.HasFormat(formats.Bold, 11, 0), "empty ranges carry every format")
}

func TestActiveFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, 5, nil)
	doc.AddFormat(formats.Italic, 2, 3, nil)
	assert.Equal(t, []string{formats.Bold}, doc.ActiveFormats(0, 5))
	assert.Equal(t, []string{formats.Bold, formats.Italic}, doc.ActiveFormats(2, 3))
	assert.Empty(t, doc.ActiveFormats(3, 5), "mixed formats are not active")
}

func TestActiveLink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	_, ok := doc.ActiveLink(0, richtext.ToEnd)
	assert.False(t, ok)
	doc.AddFormat(formats.Link, 0, 5, richtext.Attributes{formats.Href: "https://x.io"})
	doc.AddFormat(formats.Link, 6, richtext.ToEnd, richtext.Attributes{formats.Href: "https://y.io"})
	link, ok := doc.ActiveLink(0, richtext.ToEnd)
	require.True(t, ok)
	assert.Equal(t, "https://y.io", link.Get(formats.Href))
	link, ok = doc.ActiveLink(2, 8)
	require.True(t, ok)
	assert.Equal(t, "https://y.io", link.Get(formats.Href))
	link, ok = doc.ActiveLink(0, 3)
	require.True(t, ok)
	assert.Equal(t, "https://x.io", link.Get(formats.Href))
	//
	link[formats.Href] = "https://z.io"
	link, _ = doc.ActiveLink(0, 3)
	assert.Equal(t, "https://x.io", link.Get(formats.Href), "active link is a copy")
}

func TestRenderLink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Test")
	doc.AddFormat(formats.Link, 0, richtext.ToEnd, richtext.Attributes{formats.Href: "https://getkirby.com"})
	assert.Equal(t, `<a href="https://getkirby.com" rel="noopener noreferrer">Test</a>`,
		doc.ToHTML(0, richtext.ToEnd))
}

func TestAppendAndInject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("")
	doc.Append(richtext.Chars("Hello", richtext.Format{}))
	assert.Equal(t, "Hello", doc.ToHTML(0, richtext.ToEnd))
	doc.InsertText(" ", richtext.End)
	doc.Append(richtext.Chars("world", richtext.Format{}))
	assert.Equal(t, "Hello world", doc.ToHTML(0, richtext.ToEnd))
	//
	doc = newDoc("")
	doc.Inject(richtext.Chars("Test", richtext.NewFormat(formats.Bold)), richtext.End)
	assert.Equal(t, "<strong>Test</strong>", doc.ToHTML(0, richtext.ToEnd))
	//
	doc = newDoc("AC")
	doc.Inject([]richtext.Character{richtext.Char('B')}, 1)
	assert.Equal(t, "ABC", doc.ToText(0, richtext.ToEnd))
	doc = newDoc("BC")
	doc.Inject([]richtext.Character{richtext.Char('A')}, 0)
	assert.Equal(t, "ABC", doc.ToText(0, richtext.ToEnd))
}

func TestInjectCopiesContent(t *testing.T) {
	content := []richtext.Character{richtext.Char('A', formats.Bold)}
	doc := newDoc("")
	doc.Inject(content, 0)
	content[0].Text = 'Z'
	content[0].Format = content[0].Format.Without(formats.Bold)
	assert.Equal(t, "<strong>A</strong>", doc.ToHTML(0, richtext.ToEnd))
}

func TestGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	all := doc.Get(0, richtext.ToEnd)
	require.Len(t, all, 11)
	assert.Equal(t, 'H', all[0].Text)
	assert.Equal(t, 'o', all[4].Text)
	assert.Equal(t, 'd', all[10].Text)
	after := doc.Get(6, richtext.ToEnd)
	require.Len(t, after, 5)
	assert.Equal(t, 'w', after[0].Text)
	part := doc.Get(0, 5)
	require.Len(t, part, 5)
	assert.Equal(t, 'o', part[4].Text)
	//
	part[0].Text = 'J'
	assert.Equal(t, "Hello world", doc.ToText(0, richtext.ToEnd), "Get returns a copy")
}

func TestLength(t *testing.T) {
	doc := newDoc("")
	assert.Equal(t, 0, doc.Length())
	assert.Equal(t, 0, doc.LengthAfter(0))
	doc.InsertText("Hello", richtext.End)
	assert.Equal(t, 5, doc.Length())
	assert.Equal(t, 5, doc.LengthAfter(0))
	assert.Equal(t, 4, doc.LengthAfter(1))
	assert.Equal(t, 1, doc.LengthAfter(4))
	assert.Equal(t, 0, doc.LengthAfter(5))
	assert.Equal(t, 0, doc.LengthAfter(10))
}

func TestToTextRanges(t *testing.T) {
	doc := newDoc("Grüße, 世界")
	assert.Equal(t, 9, doc.Length())
	for start := -1; start <= 10; start++ {
		for length := -1; length <= 10; length++ {
			text := doc.ToText(start, length)
			assert.Equal(t, len(doc.Get(start, length)), len([]rune(text)))
		}
	}
	assert.Equal(t, "世界", doc.ToText(7, richtext.ToEnd))
}

func TestEscaping(t *testing.T) {
	doc := newDoc(`a < b & "c"`)
	doc.AddFormat(formats.Code, 0, richtext.ToEnd, nil)
	assert.Equal(t, "<code>a &lt; b &amp; &#34;c&#34;</code>", doc.ToHTML(0, richtext.ToEnd))
}

func TestTrailingLineBreak(t *testing.T) {
	doc := newDoc("Line\n")
	assert.Equal(t, "Line\n&nbsp;", doc.ToHTML(0, richtext.ToEnd))
	assert.Equal(t, "Line", doc.ToHTML(0, 4))
}

func TestUnregisteredFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello")
	doc.AddFormat("mark", 0, richtext.ToEnd, nil)
	assert.True(t, doc.HasFormat("mark", 0, richtext.ToEnd))
	assert.Equal(t, "Hello", doc.ToHTML(0, richtext.ToEnd))
}

func TestRuns(t *testing.T) {
	doc := newDoc("Hello world")
	doc.AddFormat(formats.Bold, 0, 5, nil)
	runs := doc.Runs(0, richtext.ToEnd)
	require.Len(t, runs, 2)
	assert.Equal(t, "Hello", runs[0].Text)
	assert.Equal(t, []string{formats.Bold}, runs[0].Format.Names())
	assert.Equal(t, " world", runs[1].Text)
	//
	var positions []int
	err := doc.EachRun(3, richtext.ToEnd, func(run richtext.Run, pos int) error {
		positions = append(positions, pos)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, positions)
}

func TestUndoRedo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("")
	doc.InsertText("A", richtext.End)
	assert.True(t, doc.Undo())
	assert.Equal(t, "", doc.ToText(0, richtext.ToEnd))
	assert.False(t, doc.Undo())
	assert.True(t, doc.Redo())
	assert.Equal(t, "A", doc.ToText(0, richtext.ToEnd))
	assert.False(t, doc.Redo())
}

func TestUndoRestoresFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := newDoc("Hello world")
	before := doc.ToHTML(0, richtext.ToEnd)
	doc.AddFormat(formats.Bold, 0, 5, nil)
	after := doc.ToHTML(0, richtext.ToEnd)
	doc.Undo()
	assert.Equal(t, before, doc.ToHTML(0, richtext.ToEnd))
	doc.Redo()
	assert.Equal(t, after, doc.ToHTML(0, richtext.ToEnd))
	doc.ToggleFormat(formats.Bold, 0, 5, nil)
	doc.ToggleFormat(formats.Bold, 0, 5, nil)
	assert.Equal(t, after, doc.ToHTML(0, richtext.ToEnd))
	doc.Undo()
	assert.Equal(t, before, doc.ToHTML(0, richtext.ToEnd))
}

func TestHistoryLimit(t *testing.T) {
	doc := richtext.New(richtext.WithHistoryLimit(2))
	for _, s := range []string{"a", "b", "c", "d"} {
		doc.InsertText(s, richtext.End)
	}
	assert.True(t, doc.Undo())
	assert.True(t, doc.Undo())
	assert.False(t, doc.Undo())
	assert.Equal(t, "ab", doc.ToText(0, richtext.ToEnd))
}

func TestHooks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	var commits, undos, redos []richtext.Action
	var lastArgs richtext.Args
	doc := richtext.New(
		richtext.WithRegistry(formats.Default()),
		richtext.OnCommit(func(buf []richtext.Character, action richtext.Action, args richtext.Args) {
			commits = append(commits, action)
			lastArgs = args
		}),
		richtext.OnUndo(func(buf []richtext.Character, action richtext.Action, args richtext.Args) {
			undos = append(undos, action)
		}),
		richtext.OnRedo(func(buf []richtext.Character, action richtext.Action, args richtext.Args) {
			redos = append(redos, action)
			lastArgs = args
		}),
	)
	doc.InsertText("Hello", richtext.End)
	assert.Equal(t, 5, lastArgs.Start, "insertion reports the caret after the text")
	doc.AddFormat(formats.Bold, 1, 2, nil)
	assert.Equal(t, richtext.Args{Format: formats.Bold, Start: 1, Length: 2}, lastArgs)
	doc.RemoveText(0, 1)
	assert.Equal(t, []richtext.Action{
		richtext.ActionInsertText, richtext.ActionAddFormat, richtext.ActionRemoveText,
	}, commits)
	doc.Undo()
	assert.Equal(t, []richtext.Action{richtext.ActionAddFormat}, undos,
		"undo reports the action of the restored state")
	doc.Redo()
	assert.Equal(t, []richtext.Action{richtext.ActionRemoveText}, redos)
	assert.Equal(t, 0, lastArgs.Start)
	assert.Equal(t, 1, lastArgs.Length)
}

func TestCommitHookAltersBuffer(t *testing.T) {
	doc := richtext.New(richtext.OnCommit(func(buf []richtext.Character, _ richtext.Action, _ richtext.Args) {
		for i := range buf {
			if buf[i].Text == '\t' {
				buf[i].Text = ' '
			}
		}
	}))
	doc.InsertText("a\tb", richtext.End)
	assert.Equal(t, "a b", doc.ToText(0, richtext.ToEnd))
}

func TestCopyOnWrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	shared := richtext.NewFormat(formats.Bold)
	content := richtext.Chars("AB", shared)
	doc := newDoc("")
	doc.Append(content)
	doc.AddFormat(formats.Italic, 0, 1, nil)
	assert.Equal(t, "<em><strong>A</strong></em><strong>B</strong>", doc.ToHTML(0, richtext.ToEnd))
	assert.Equal(t, []string{formats.Bold}, shared.Names())
	//
	snapshot := doc.Clone()
	doc.RemoveFormats(0, richtext.ToEnd)
	assert.Equal(t, []string{formats.Bold, formats.Italic}, snapshot[0].Format.Names())
}

func TestTriggers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := richtext.New(richtext.WithTriggers(
		richtext.Trigger{Pattern: "### ", Name: "h3"},
		richtext.Trigger{Pattern: "## ", Name: "h2"},
		richtext.Trigger{Pattern: "# ", Name: "h1"},
		richtext.Trigger{Pattern: "# ", Name: "duplicate"},
		richtext.Trigger{Pattern: "- ", Name: "list"},
	))
	_, fired := doc.InsertText("#", richtext.End)
	assert.False(t, fired)
	name, fired := doc.InsertText(" ", richtext.End)
	require.True(t, fired)
	assert.Equal(t, "h1", name)
	doc.RemoveText(0, 2)
	name, fired = doc.InsertText("### ", richtext.End)
	require.True(t, fired)
	assert.Equal(t, "h3", name)
	_, fired = doc.InsertText("x", richtext.End)
	assert.False(t, fired, "trigger needs the complete text")
	//
	doc = richtext.New(richtext.WithTriggers(richtext.Trigger{Pattern: "- ", Name: "list"}))
	name, fired = doc.InsertText("- ", richtext.End)
	assert.True(t, fired)
	assert.Equal(t, "list", name)
}

func TestTriggersWhileInserting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "richtext")
	defer teardown()
	//
	doc := richtext.New(richtext.WithTriggers(
		richtext.Trigger{Pattern: "# ", Name: "h1"},
		richtext.Trigger{Pattern: "- ", Name: "list"},
	))
	name, fired := doc.InsertText("# Title", richtext.End)
	require.True(t, fired, "trigger fires on an intermediate text")
	assert.Equal(t, "h1", name)
	assert.Equal(t, "# Title", doc.ToText(0, richtext.ToEnd))
	require.True(t, doc.Undo())
	assert.Equal(t, "", doc.ToText(0, richtext.ToEnd), "insertion is a single action")
	//
	doc.InsertText("x", richtext.End)
	name, fired = doc.InsertText("- ", 0)
	assert.False(t, fired, "text after the insertion counts, too")
	assert.Equal(t, "", name)
}

func TestReplace(t *testing.T) {
	doc := newDoc("Hello")
	doc.Replace(richtext.Chars("World", richtext.Format{}))
	assert.Equal(t, "World", doc.ToText(0, richtext.ToEnd))
	assert.True(t, doc.Undo())
	assert.Equal(t, "", doc.ToText(0, richtext.ToEnd), "replace is not committed")
}

// --- Helpers ---------------------------------------------------------------

func newDoc(text string) *richtext.Document {
	doc := richtext.New(richtext.WithRegistry(formats.Default()))
	if text != "" {
		doc.InsertText(text, richtext.End)
	}
	return doc
}
