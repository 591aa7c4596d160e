package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// noEOLMarker follows a rendered line that has no trailing newline,
// matching git's convention.
const noEOLMarker = "\\ No newline at end of file\n"

// SplitLines splits content into lines for diffing. Each line keeps
// its trailing newline, so a file missing its final newline differs
// from one that has it. Empty content produces no lines at all.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Unified renders a unified diff between old and new content with
// "--- aLabel" / "+++ bLabel" headers and @@ hunk headers. Returns ""
// when the contents are identical.
func Unified(old, new, aLabel, bLabel string) string {
	ops := Lines(SplitLines(old), SplitLines(new))

	changed := false
	for _, op := range ops {
		if op.Type != Equal {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", aLabel)
	fmt.Fprintf(&b, "+++ %s\n", bLabel)

	for _, h := range hunks(ops) {
		b.WriteString(h.header())
		for _, op := range h.ops {
			switch op.Type {
			case Delete:
				writeDiffLine(&b, '-', op.Line)
			case Insert:
				writeDiffLine(&b, '+', op.Line)
			case Equal:
				writeDiffLine(&b, ' ', op.Line)
			}
		}
	}

	return b.String()
}

// writeDiffLine emits one prefixed diff line, annotating lines that
// lack a trailing newline.
func writeDiffLine(b *strings.Builder, prefix byte, line string) {
	b.WriteByte(prefix)
	b.WriteString(strings.TrimSuffix(line, "\n"))
	b.WriteByte('\n')
	if !strings.HasSuffix(line, "\n") {
		b.WriteString(noEOLMarker)
	}
}

// hunk is a contiguous run of ops rendered under one @@ header.
type hunk struct {
	aStart, aCount int
	bStart, bCount int
	ops            []Op
}

func (h hunk) header() string {
	// Git's convention: a zero-length side reports the line before it.
	aStart := h.aStart
	if h.aCount == 0 {
		aStart--
	}
	bStart := h.bStart
	if h.bCount == 0 {
		bStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", aStart, h.aCount, bStart, h.bCount)
}

// hunks groups an edit script into hunks, merging changed regions whose
// gap of equal lines is at most twice the context width.
func hunks(ops []Op) []hunk {
	// aPos[i] and bPos[i] hold the number of a/b lines consumed before
	// ops[i].
	aPos := make([]int, len(ops)+1)
	bPos := make([]int, len(ops)+1)
	for i, op := range ops {
		aPos[i+1] = aPos[i]
		bPos[i+1] = bPos[i]
		switch op.Type {
		case Equal:
			aPos[i+1]++
			bPos[i+1]++
		case Delete:
			aPos[i+1]++
		case Insert:
			bPos[i+1]++
		}
	}

	var changedIdx []int
	for i, op := range ops {
		if op.Type != Equal {
			changedIdx = append(changedIdx, i)
		}
	}

	var result []hunk
	for gi := 0; gi < len(changedIdx); {
		first := changedIdx[gi]
		last := first
		gi++
		for gi < len(changedIdx) && changedIdx[gi]-last-1 <= 2*contextLines {
			last = changedIdx[gi]
			gi++
		}

		start := first - contextLines
		if start < 0 {
			start = 0
		}
		end := last + contextLines
		if end > len(ops)-1 {
			end = len(ops) - 1
		}

		h := hunk{
			aStart: aPos[start] + 1,
			bStart: bPos[start] + 1,
			ops:    ops[start : end+1],
		}
		for _, op := range h.ops {
			switch op.Type {
			case Equal:
				h.aCount++
				h.bCount++
			case Delete:
				h.aCount++
			case Insert:
				h.bCount++
			}
		}
		result = append(result, h)
	}

	return result
}
