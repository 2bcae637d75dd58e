package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/sidconv/pkg/langdetect"
)

// Source is a discovered input file.
type Source struct {
	// Path is the absolute path of the file.
	Path string

	// Rel is the path relative to the directory argument it was found
	// under, or the base name for a file argument. Outputs are written at
	// OutDir/Rel.
	Rel string

	// Explicit is true when the file was named directly rather than found
	// by walking a directory.
	Explicit bool
}

// Discover finds BASIC sources under opts.Paths. Named files are always
// included; directories are walked for files with BASIC-family extensions.
// The result is sorted by Path.
func Discover(ctx context.Context, opts Options) ([]Source, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var sources []Source
	add := func(src Source) {
		if _, ok := seen[src.Path]; ok {
			return
		}
		seen[src.Path] = struct{}{}
		sources = append(sources, src)
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(Source{Path: absPath, Rel: filepath.Base(absPath), Explicit: true})
			continue
		}

		found, err := walkDirectory(ctx, absPath, absPath, opts)
		if err != nil {
			return nil, err
		}
		for _, src := range found {
			add(src)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return sources, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory collects BASIC sources under dir. Rel paths are computed
// against root, the directory argument the walk started from.
func walkDirectory(ctx context.Context, root, dir string, opts Options) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") ||
				langdetect.IsVendored(relPath) ||
				matchesAnyGlob(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow the link itself.
				sub, err := walkDirectory(ctx, root, realPath, opts)
				if err != nil {
					return err
				}
				for _, src := range sub {
					if rel, err := filepath.Rel(realPath, src.Path); err == nil {
						src.Rel = filepath.Join(relPath, rel)
					}
					sources = append(sources, src)
				}
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !langdetect.IsBASICPath(path) || matchesAnyGlob(relPath, opts.ExcludeGlobs) {
			return nil
		}

		sources = append(sources, Source{Path: path, Rel: relPath})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return sources, nil
}

// matchesAnyGlob checks relPath against each pattern. Patterns are matched
// against the whole relative path and against the base name; "dir/**"
// matches everything under dir and "**/name" matches name at any depth.
func matchesAnyGlob(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matchGlob(relPath, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

func matchGlob(path, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		for _, part := range strings.Split(path, "/") {
			if matched, _ := filepath.Match(suffix, part); matched {
				return true
			}
		}
		return false
	}
	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}
