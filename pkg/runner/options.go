// Package runner converts one or many BASIC listings: it discovers input
// files, rewrites them concurrently, and writes the results safely.
package runner

import (
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/fsutil"
)

// Options controls a batch conversion.
type Options struct {
	// Paths are the user-specified files or directories to convert.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// OutDir receives one converted file per input, at the input's path
	// relative to the directory it was found in. Empty means nothing is
	// written and only the report is produced.
	OutDir string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// WriteOptions controls how a converted file reaches disk.
type WriteOptions struct {
	// DryRun converts and reports without writing.
	DryRun bool

	// Backup configures backups of overwritten outputs.
	Backup fsutil.BackupConfig
}

// WriteOptionsFromConfig derives write options from the configuration.
func WriteOptionsFromConfig(cfg *config.Config) WriteOptions {
	if cfg == nil {
		return WriteOptions{}
	}
	backup := fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	if backup.Mode == "" {
		backup.Mode = fsutil.BackupModeSidecar
	}
	return WriteOptions{DryRun: cfg.DryRun, Backup: backup}
}
