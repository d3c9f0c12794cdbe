// Package diff implements line oriented diffs, used to show the changes
// between two serialized trees.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Do computes the (line oriented) modifications needed to turn the src
// string into the dst string.
func Do(src, dst string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	wSrc, wDst, lines := dmp.DiffLinesToRunes(src, dst)
	diffs := dmp.DiffMainRunes(wSrc, wDst, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Src returns the source text of diffs.
func Src(diffs []diffmatchpatch.Diff) string {
	return join(diffs, diffmatchpatch.DiffInsert)
}

// Dst returns the destination text of diffs.
func Dst(diffs []diffmatchpatch.Diff) string {
	return join(diffs, diffmatchpatch.DiffDelete)
}

func join(diffs []diffmatchpatch.Diff, skip diffmatchpatch.Operation) string {
	var b strings.Builder
	for _, d := range diffs {
		if d.Type != skip {
			b.WriteString(d.Text)
		}
	}

	return b.String()
}

// Unified renders diffs one line at a time, every line prefixed with '+'
// if inserted, '-' if deleted or a space if unchanged.
func Unified(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			b.WriteString(prefix)
			b.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
		}
	}

	return b.String()
}
