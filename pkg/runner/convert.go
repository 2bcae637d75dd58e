package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yaklabco/sidconv/internal/logging"
	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/fsutil"
	"github.com/yaklabco/sidconv/pkg/langdetect"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// Conversion error types for categorization.
var (
	// ErrParseFailure indicates the source is not a valid listing.
	ErrParseFailure = errors.New("parse failure")

	// ErrRewriteFailure indicates the conversion pass failed.
	ErrRewriteFailure = errors.New("rewrite failure")

	// ErrWriteFailure indicates the output could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// FileResult is the outcome of converting one file.
type FileResult struct {
	// Path is the source path.
	Path string

	// Output is the destination path, or "" when nothing is written.
	Output string

	// Original is the source content.
	Original []byte

	// Converted is the rendered output program.
	Converted []byte

	// Program holds the per-line changes, warnings, and header.
	Program *rewrite.ProgramResult

	// Skipped is true if the file was not converted.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Written is true if Output was written to disk.
	Written bool

	// BackupCreated is true if the previous Output was backed up.
	BackupCreated bool

	// Duration is how long the conversion took.
	Duration time.Duration
}

// Changed reports whether any line was rewritten or a header was added.
func (fr *FileResult) Changed() bool {
	return fr.Program != nil && (len(fr.Program.Changes) > 0 || fr.Program.Header != nil)
}

// Converter applies a rewrite engine to files on disk.
type Converter struct {
	// Engine performs the conversion pass.
	Engine *rewrite.Engine
}

// NewConverter creates a Converter for the given engine.
func NewConverter(engine *rewrite.Engine) *Converter {
	return &Converter{Engine: engine}
}

// ConvertFile reads path, converts it, and writes the result to output.
//
// Steps:
//  1. Read the source with metadata.
//  2. Parse and convert. Nothing is written if either fails.
//  3. Unless dry-run or output is "", back up an existing output and write
//     the new one atomically. Overwriting the source itself is refused if it
//     changed while being converted.
func (c *Converter) ConvertFile(ctx context.Context, path, output string, opts WriteOptions) (*FileResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &FileResult{Path: path, Output: output, Original: content}

	prog, err := basic.ParseProgram(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	programResult, err := c.Engine.Rewrite(ctx, prog)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRewriteFailure, path, err)
	}
	result.Program = programResult
	result.Converted = programResult.Bytes()

	if output != "" && !opts.DryRun {
		if err := c.write(ctx, result, info, opts); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	logger.Debug("converted",
		logging.FieldLines, len(prog.Lines),
		logging.FieldChanged, len(programResult.Changes),
		logging.FieldWarnings, len(programResult.Warnings),
		logging.FieldOutput, output,
		logging.FieldDuration, result.Duration,
	)

	return result, nil
}

func (c *Converter) write(ctx context.Context, result *FileResult, info *fsutil.FileInfo, opts WriteOptions) error {
	if sameFile(result.Path, result.Output) {
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		if modified {
			return fmt.Errorf("%w: %w: %s", ErrWriteFailure, fsutil.ErrModified, result.Path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(result.Output), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	existing, err := os.ReadFile(result.Output)
	if err == nil && bytes.Equal(existing, result.Converted) {
		return nil
	}

	created, err := fsutil.CreateBackup(ctx, result.Output, opts.Backup)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, result.Output, result.Converted, info.Mode.Perm()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// convertSource converts a discovered file. Files found by walking a
// directory that turn out not to be line-numbered listings are skipped.
func (c *Converter) convertSource(ctx context.Context, src Source, outDir string, opts WriteOptions) (*FileResult, error) {
	output := ""
	if outDir != "" {
		output = filepath.Join(outDir, src.Rel)
	}

	if !src.Explicit {
		content, _, err := fsutil.ReadFile(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		if !langdetect.IsListing(content) {
			logging.FromContext(ctx).Debug("skipped",
				logging.FieldPath, src.Path,
				logging.FieldLanguage, langdetect.Detect(src.Path, content),
				logging.FieldReason, "not a line-numbered listing")
			return &FileResult{
				Path:       src.Path,
				Output:     output,
				Original:   content,
				Skipped:    true,
				SkipReason: "not a line-numbered listing",
			}, nil
		}
	}

	return c.ConvertFile(ctx, src.Path, output, opts)
}
