// Package diff renders unified diffs between a listing and its conversion.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line present only in the converted listing.
	LineAdd

	// LineRemove is a line present only in the original listing.
	LineRemove
)

// Prefix returns the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// Line is a single line of a hunk.
type Line struct {
	Kind LineKind

	// Content is the line text without the diff marker or line terminator.
	Content string
}

// Hunk is a contiguous block of changes with surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the conversion.
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Unified is a unified diff of one file.
type Unified struct {
	// Path is shown in the a/ and b/ headers.
	Path string

	Hunks []Hunk

	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of removed lines.
	Deletions int
}

// Generate diffs original against modified. Lines are compared without
// their terminators, so a CRLF listing diffs cleanly against itself.
// It returns nil when the two have the same lines.
func Generate(path string, original, modified []byte) *Unified {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := compare(origLines, modLines)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	u := &Unified{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				u.Additions++
			case LineRemove:
				u.Deletions++
			}
		}
	}
	return u
}

// HasChanges returns true if the diff contains any hunk.
func (u *Unified) HasChanges() bool {
	return u != nil && len(u.Hunks) > 0
}

// DisplayPath returns Path without a leading slash.
func (u *Unified) DisplayPath() string {
	return strings.TrimPrefix(u.Path, "/")
}

// GitHeader returns the "diff --git" line.
func (u *Unified) GitHeader() string {
	if u == nil {
		return ""
	}
	path := u.DisplayPath()
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff without the git header.
func (u *Unified) String() string {
	if !u.HasChanges() {
		return ""
	}

	path := u.DisplayPath()

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range u.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the diff including the git header.
func (u *Unified) FullString() string {
	if !u.HasChanges() {
		return ""
	}
	return u.GitHeader() + "\n" + u.String()
}

// splitLines splits content on "\n", dropping the "\r" of CRLF endings and
// the empty element after a final terminator.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// op is one line of the edit script.
type op struct {
	kind    LineKind
	content string
}

// compare builds an edit script turning orig into mod. The common prefix
// and suffix are matched directly; only the middle goes through the LCS
// table, which keeps the cost low for conversions that touch a few lines.
func compare(orig, mod []string) []op {
	prefix := 0
	for prefix < len(orig) && prefix < len(mod) && orig[prefix] == mod[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(orig)-prefix && suffix < len(mod)-prefix &&
		orig[len(orig)-1-suffix] == mod[len(mod)-1-suffix] {
		suffix++
	}

	ops := make([]op, 0, len(orig)+len(mod))
	for _, line := range orig[:prefix] {
		ops = append(ops, op{kind: LineContext, content: line})
	}
	ops = append(ops, middle(orig[prefix:len(orig)-suffix], mod[prefix:len(mod)-suffix])...)
	for _, line := range orig[len(orig)-suffix:] {
		ops = append(ops, op{kind: LineContext, content: line})
	}
	return ops
}

// middle diffs two slices with no common prefix or suffix.
func middle(orig, mod []string) []op {
	rows, cols := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var ops []op
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, op{kind: LineContext, content: orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{kind: LineRemove, content: orig[i]})
			i++
		default:
			ops = append(ops, op{kind: LineAdd, content: mod[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, op{kind: LineRemove, content: orig[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, op{kind: LineAdd, content: mod[j]})
	}
	return ops
}

// groupIntoHunks groups the edit script into hunks, merging changes that
// are separated by no more than twice the context size.
func groupIntoHunks(ops []op) []Hunk {
	type span struct{ start, end int }

	var spans []span
	for i := 0; i < len(ops); {
		if ops[i].kind == LineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != LineContext {
			i++
		}
		if n := len(spans); n > 0 && start-spans[n-1].end <= 2*contextLines {
			spans[n-1].end = i
		} else {
			spans = append(spans, span{start, i})
		}
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		hunks = append(hunks, buildHunk(ops, max(0, s.start-contextLines), min(len(ops), s.end+contextLines)))
	}
	return hunks
}

// buildHunk builds the hunk covering ops[start:end].
func buildHunk(ops []op, start, end int) Hunk {
	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, o := range ops[:start] {
		if o.kind != LineAdd {
			hunk.OriginalStart++
		}
		if o.kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, o := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Content: o.content})
		if o.kind != LineAdd {
			hunk.OriginalCount++
		}
		if o.kind != LineRemove {
			hunk.ModifiedCount++
		}
	}

	// An empty side starts at the line before, as in GNU diff.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}
	return hunk
}
