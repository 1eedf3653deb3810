package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/richtext"
)

// maxDumpWidth limits the text column of Dump.
const maxDumpWidth = 40

var dumpEscaper = strings.NewReplacer("\n", "⏎", "\t", "⇥")

// Dump writes a table of the runs of a document to w, one run per line:
// position, text and formats. Line breaks are made visible; long texts are
// truncated.
func Dump(w io.Writer, doc *richtext.Document) error {
	runs := doc.Runs(0, richtext.ToEnd)
	texts := make([]string, len(runs))
	col := 0
	for i, run := range runs {
		texts[i] = runewidth.Truncate(dumpEscaper.Replace(run.Text), maxDumpWidth, "…")
		if tw := runewidth.StringWidth(texts[i]); tw > col {
			col = tw
		}
	}
	pos := 0
	for i, run := range runs {
		_, err := fmt.Fprintf(w, "%4d │ %s │ %s\n", pos, runewidth.FillRight(texts[i], col),
			formatString(run.Format))
		if err != nil {
			return err
		}
		pos += len([]rune(run.Text))
	}
	return nil
}

func formatString(f richtext.Format) string {
	if f.IsEmpty() {
		return "-"
	}
	var sb strings.Builder
	f.Each(func(name string, attrs richtext.Attributes) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		if !attrs.IsMarker() {
			fmt.Fprintf(&sb, " %v", map[string]string(attrs))
		}
	})
	return sb.String()
}
