package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// appName names the per-user and system configuration directories.
const appName = "sidconv"

// Source names a configuration layer. Sources are listed lowest
// precedence first.
type Source string

// Configuration file layers.
const (
	SourceSystem   Source = "system"
	SourceUser     Source = "user"
	SourceProject  Source = "project"
	SourceExplicit Source = "explicit"
)

// ConfigPaths holds the configuration files that apply to a conversion.
// An empty field means no file was found for that layer.
type ConfigPaths struct {
	// System holds site-wide port numbers, e.g. /etc/sidconv/config.yaml.
	System string

	// User holds personal defaults, e.g. ~/.config/sidconv/config.yaml.
	User string

	// Project sits beside a set of listings, e.g. ./.sidconv.yml.
	Project string

	// Explicit is the file named by --config.
	Explicit string
}

// ConfigFile is one discovered file and the layer it belongs to.
type ConfigFile struct {
	Source Source
	Path   string
}

// Files returns the discovered files in merge order, skipping missing
// layers and any source in skip.
func (p *ConfigPaths) Files(skip ...Source) []ConfigFile {
	all := []ConfigFile{
		{SourceSystem, p.System},
		{SourceUser, p.User},
		{SourceProject, p.Project},
		{SourceExplicit, p.Explicit},
	}

	files := make([]ConfigFile, 0, len(all))
	for _, f := range all {
		if f.Path == "" || slices.Contains(skip, f.Source) {
			continue
		}
		files = append(files, f)
	}
	return files
}

// projectConfigFiles are the names a project file may take, best first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".sidconv.yml",
	".sidconv.yaml",
	"sidconv.yml",
	"sidconv.yaml",
}

// layerConfigFiles are the names used inside the system and user directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward search for a project file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project files for listings
// converted from workDir. Missing files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		Project: project,
	}
	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, layerConfigFiles)
	}
	return paths, nil
}

// systemConfigDir is /etc/sidconv, or %ProgramData%\sidconv on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}

	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// UserConfigDir returns the per-user configuration directory, honouring
// XDG_CONFIG_HOME. It returns "" when no home directory is known.
func UserConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks from startDir towards the root looking for a
// project file. The walk ends at a VCS root or the home directory, so a
// listing collection never picks up a stray file from an enclosing tree.
// It returns "" when no file is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir() //nolint:errcheck // No home means no home boundary

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
