package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/sidconv/internal/ui/pretty"
	"github.com/yaklabco/sidconv/pkg/analysis"
	"github.com/yaklabco/sidconv/pkg/diff"
)

// DiffRenderer formats results as git-style unified diffs of each listing
// against its conversion. Line content is written unescaped so the output
// stays usable as a patch.
type DiffRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffRenderer creates a new diff renderer.
func NewDiffRenderer(opts Options) *DiffRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *DiffRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var filesWithDiffs, additions, deletions int

	for _, file := range report.Files {
		if file.Status == analysis.StatusError {
			fmt.Fprint(bw, r.styles.FormatFileError(file.Path, file.Error))
			continue
		}
		if file.Status != analysis.StatusConverted {
			continue
		}

		unified := diff.Generate(file.Path, file.Original, file.Converted)
		if !unified.HasChanges() {
			continue
		}

		filesWithDiffs++
		additions += unified.Additions
		deletions += unified.Deletions
		r.writeDiff(bw, unified)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(bw, filesWithDiffs, additions, deletions)
	}

	return nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffRenderer) writeDiff(bw *bufio.Writer, unified *diff.Unified) {
	path := unified.DisplayPath()

	fmt.Fprintln(bw, r.styles.DiffHeader.Render(unified.GitHeader()))
	fmt.Fprintln(bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range unified.Hunks {
		fmt.Fprintln(bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			text := line.Kind.Prefix() + line.Content
			switch line.Kind {
			case diff.LineAdd:
				text = r.styles.DiffAdd.Render(text)
			case diff.LineRemove:
				text = r.styles.DiffRemove.Render(text)
			default:
				text = r.styles.DiffContext.Render(text)
			}
			fmt.Fprintln(bw, text)
		}
	}

	// Blank line between files
	fmt.Fprintln(bw)
}

// writeSummary writes a git-style shortstat line.
func (r *DiffRenderer) writeSummary(bw *bufio.Writer, files, additions, deletions int) {
	parts := []string{pretty.Plural(files, "file") + " changed"}

	if additions > 0 {
		word := "insertions"
		if additions == 1 {
			word = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, word)))
	}
	if deletions > 0 {
		word := "deletions"
		if deletions == 1 {
			word = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, word)))
	}

	fmt.Fprintln(bw, strings.Join(parts, ", "))
}
