package diffutil

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

func TestLinesAppendOnly(t *testing.T) {
	before := "monitor=,preferred,auto,1\n"
	after := before + "\n# overlay-core hotkeys\nsource = /h/overlay-core-hotkeys.conf\n"

	lines, summary := Lines(before, after)

	assert.Equal(t, Summary{OriginalLines: 1, ModifiedLines: 4, Inserted: 3, Deleted: 0}, summary)
	assert.Equal(t, []Line{
		{Op: diffmatchpatch.DiffEqual, OldNum: 1, NewNum: 1, Text: "monitor=,preferred,auto,1"},
		{Op: diffmatchpatch.DiffInsert, NewNum: 2, Text: ""},
		{Op: diffmatchpatch.DiffInsert, NewNum: 3, Text: "# overlay-core hotkeys"},
		{Op: diffmatchpatch.DiffInsert, NewNum: 4, Text: "source = /h/overlay-core-hotkeys.conf"},
	}, lines)
}

func TestLinesReplacedLine(t *testing.T) {
	before := "# header\nbind = SHIFT CTRL, SPACE, exec, oc --toggle-overlay\n"
	after := "# header\nbind = SUPER, O, exec, oc --toggle-overlay\n"

	_, summary := Lines(before, after)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, "1 line(s) added, 1 line(s) removed (2 -> 2 lines)", summary.String())
}

func TestUnified(t *testing.T) {
	before := "a\nb\nc\nd\ne\nf\n"
	after := "a\nb\nc\nd\ne\nF\n"

	got := Unified("x.conf", before, after, 1)
	assert.Equal(t, "--- x.conf\n+++ x.conf\n@@\n e\n-f\n+F\n", got)
}

func TestUnifiedIdentical(t *testing.T) {
	assert.Empty(t, Unified("x.conf", "same\n", "same\n", 3))
}

func TestUnifiedNewFile(t *testing.T) {
	got := Unified("new.conf", "", "one\ntwo\n", 3)
	assert.Equal(t, "--- new.conf\n+++ new.conf\n+one\n+two\n", got)
}
