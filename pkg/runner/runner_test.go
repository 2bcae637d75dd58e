package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/fsutil"
	"github.com/yaklabco/sidconv/pkg/runner"
)

const scenario = "5 B=54272\n30 POKE B+1,0\n40 POKE B+0,0\n"

const scenarioOut = "0 B=0:REG=212:DAT=213\n5 B=0\n30 OUT REG,1:OUT DAT,0\n40 OUT REG,0:OUT DAT,0\n"

func TestConvertFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": scenario})
		in, out := filepath.Join(dir, "in.bas"), filepath.Join(dir, "out", "out.bas")

		fr, err := newConverter(nil).ConvertFile(ctx, in, out, runner.WriteOptions{})
		require.NoError(t, err)
		assert.True(t, fr.Written)
		assert.True(t, fr.Changed())
		assert.Equal(t, scenarioOut, string(fr.Converted))
		assert.Equal(t, scenarioOut, readFile(t, out))
		assert.Equal(t, scenario, readFile(t, in), "source untouched")
	})

	t.Run("no output path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": scenario})

		fr, err := newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), "", runner.WriteOptions{})
		require.NoError(t, err)
		assert.False(t, fr.Written)
		assert.Equal(t, scenarioOut, string(fr.Converted))
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": scenario})
		out := filepath.Join(dir, "out.bas")

		fr, err := newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), out, runner.WriteOptions{DryRun: true})
		require.NoError(t, err)
		assert.False(t, fr.Written)
		assert.NoFileExists(t, out)
	})

	t.Run("parse failure writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": "10 POKE 54272,0\nPRINT \"NO NUMBER\"\n"})
		out := filepath.Join(dir, "out.bas")

		_, err := newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), out, runner.WriteOptions{})
		require.ErrorIs(t, err, runner.ErrParseFailure)
		require.ErrorIs(t, err, basic.ErrNoLineNumber)

		var perr *basic.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 2, perr.Index)
		assert.NoFileExists(t, out)
	})

	t.Run("no header slot", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": "0 POKE 54272,0\n"})

		_, err := newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), "", runner.WriteOptions{})
		require.ErrorIs(t, err, runner.ErrRewriteFailure)
		assert.Contains(t, err.Error(), "in.bas")
	})

	t.Run("backs up overwritten output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": scenario, "out.bas": "old\n"})
		out := filepath.Join(dir, "out.bas")
		opts := runner.WriteOptions{Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}}

		fr, err := newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), out, opts)
		require.NoError(t, err)
		assert.True(t, fr.BackupCreated)
		assert.Equal(t, "old\n", readFile(t, out+fsutil.BackupSuffix))

		fr, err = newConverter(nil).ConvertFile(ctx, filepath.Join(dir, "in.bas"), out, opts)
		require.NoError(t, err)
		assert.False(t, fr.Written, "identical output is not rewritten")
		assert.False(t, fr.BackupCreated)
	})

	t.Run("in place", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"in.bas": scenario})
		in := filepath.Join(dir, "in.bas")

		fr, err := newConverter(nil).ConvertFile(ctx, in, in, runner.WriteOptions{})
		require.NoError(t, err)
		assert.True(t, fr.Written)
		assert.Equal(t, scenarioOut, readFile(t, in))
	})
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.bas":       scenario,
		"src/b/c.bas":     "10 PRINT \"HI\"\n",
		"src/bad.bas":     "10 PRINT \"OOPS\n",
		"src/module.bas":  "Attribute VB_Name = \"M\"\n",
		"src/warn.bas":    "10 POKE 54272+30,0\n",
		"src/ignored.txt": "10 POKE 54272,0\n",
	})
	outDir := filepath.Join(dir, "out")

	cfg := config.NewConfig()
	cfg.WarnOutOfRange = true

	result, err := runner.New(newConverter(cfg)).Run(context.Background(), runner.Options{
		Paths:      []string{"src"},
		WorkingDir: dir,
		OutDir:     outDir,
		Jobs:       2,
		Config:     cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 2, result.Stats.FilesChanged)
	assert.Equal(t, 3, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.Warnings)
	assert.Equal(t, 3, result.Stats.RuleCounts["SC002"])
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())

	assert.Equal(t, scenarioOut, readFile(t, filepath.Join(outDir, "a.bas")))
	assert.Equal(t, "5 REG=212:DAT=213\n10 PRINT \"HI\"\n", readFile(t, filepath.Join(outDir, "b", "c.bas")))
	assert.NoFileExists(t, filepath.Join(outDir, "bad.bas"))
	assert.NoFileExists(t, filepath.Join(outDir, "module.bas"))

	require.Len(t, result.Files, 5)
	for i := 1; i < len(result.Files); i++ {
		assert.Less(t, result.Files[i-1].Path, result.Files[i].Path)
	}
}

func TestRunner_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.bas": scenario})
	outDir := filepath.Join(dir, "out")

	cfg := config.NewConfig()
	cfg.DryRun = true

	result, err := runner.New(newConverter(cfg)).Run(context.Background(), runner.Options{
		Paths:      []string{"a.bas"},
		WorkingDir: dir,
		OutDir:     outDir,
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Zero(t, result.Stats.FilesWritten)

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.New(newConverter(nil)).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasErrors())
}

func TestWriteOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	opts := runner.WriteOptionsFromConfig(cfg)
	assert.True(t, opts.Backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, opts.Backup.Mode)

	cfg.NoBackups = true
	cfg.DryRun = true
	opts = runner.WriteOptionsFromConfig(cfg)
	assert.False(t, opts.Backup.Enabled)
	assert.True(t, opts.DryRun)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	result := runner.NewResult(
		runner.FileOutcome{Path: "a.bas", Result: &runner.FileResult{Path: "a.bas", Written: true}},
		runner.FileOutcome{Path: "b.bas", Error: errors.New("parse failure")},
	)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
}
