package diffutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one line of a line-level diff.
type Line struct {
	Op     diffmatchpatch.Operation // DiffEqual, DiffInsert or DiffDelete
	OldNum int                      // line number in the original, 0 if inserted
	NewNum int                      // line number in the modified text, 0 if deleted
	Text   string                   // without the trailing newline
}

// Summary counts the lines touched by a diff.
type Summary struct {
	OriginalLines int
	ModifiedLines int
	Inserted      int
	Deleted       int
}

// String renders the summary the way it is shown above previews.
func (s Summary) String() string {
	return fmt.Sprintf("%d line(s) added, %d line(s) removed (%d -> %d lines)",
		s.Inserted, s.Deleted, s.OriginalLines, s.ModifiedLines)
}

// Lines computes a line-level diff of original and modified. Config files
// are compared whole-line so a changed bind shows as one delete plus one insert.
func Lines(original, modified string) ([]Line, Summary) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 5 * time.Second

	a, b, lineArray := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var (
		out     []Line
		summary = Summary{OriginalLines: lineCount(original), ModifiedLines: lineCount(modified)}
		oldNum  = 1
		newNum  = 1
	)
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			line := Line{Op: d.Type, Text: text}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				line.OldNum, line.NewNum = oldNum, newNum
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				line.OldNum = oldNum
				oldNum++
				summary.Deleted++
			case diffmatchpatch.DiffInsert:
				line.NewNum = newNum
				newNum++
				summary.Inserted++
			}
			out = append(out, line)
		}
	}
	return out, summary
}

// Unified renders a unified-style diff of one file with contextLines of
// unchanged context around each change. Identical inputs render as "".
func Unified(path, original, modified string, contextLines int) string {
	lines, summary := Lines(original, modified)
	if summary.Inserted == 0 && summary.Deleted == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	visible := VisibleLines(lines, contextLines)
	for i, keep := range visible {
		if !keep {
			if i == 0 || visible[i-1] {
				sb.WriteString("@@\n")
			}
			continue
		}
		sb.WriteString(prefix(lines[i].Op))
		sb.WriteString(lines[i].Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// VisibleLines marks which lines fall within contextLines of a change.
// Renderers use it to fold long unchanged runs.
func VisibleLines(lines []Line, contextLines int) []bool {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == diffmatchpatch.DiffEqual {
			continue
		}
		lo, hi := max(0, i-contextLines), min(len(lines)-1, i+contextLines)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}
	return keep
}

func prefix(op diffmatchpatch.Operation) string {
	switch op {
	case diffmatchpatch.DiffInsert:
		return "+"
	case diffmatchpatch.DiffDelete:
		return "-"
	default:
		return " "
	}
}

// splitLines splits text into lines, dropping the empty element after a
// trailing newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// lineCount returns the number of *physical* lines in the snippet.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++ // final line has no trailing newline
	}
	return n
}
