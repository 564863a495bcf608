package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitignoreFile is the ignore file honored at the root of each directory argument
const gitignoreFile = ".gitignore"

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectOptions controls how directory arguments are expanded
type CollectOptions struct {
	Recursive        bool
	RespectGitignore bool
	IncludePatterns  []string
	ExcludePatterns  []string
}

// ResolvePaths expands directory arguments into the source files they contain.
// File arguments are kept as given, as are paths that cannot be inspected, so
// the caller can report them as not found.
func (h *FileHelper) ResolvePaths(paths []string, opts CollectOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			add(path)
			continue
		}

		collected, err := h.CollectSourceFiles(path, opts)
		if err != nil {
			return nil, err
		}
		for _, file := range collected {
			add(file)
		}
	}

	return files, nil
}

// CollectSourceFiles collects files under root matching the include patterns
func (h *FileHelper) CollectSourceFiles(root string, opts CollectOptions) ([]string, error) {
	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		var err error
		gitignore, err = loadGitignore(root)
		if err != nil {
			return nil, err
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		ignored := false
		if gitignore != nil && rel != "." {
			slashed := filepath.ToSlash(rel)
			ignored = gitignore.MatchesPath(slashed) || (d.IsDir() && gitignore.MatchesPath(slashed+"/"))
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			// Skip excluded directories early
			if !opts.Recursive || ignored || h.isExcluded(path, opts.ExcludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignored || !h.IsSourceFile(path, opts.IncludePatterns) || h.isExcluded(path, opts.ExcludePatterns) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// IsSourceFile reports whether the base name of path matches an include pattern
func (h *FileHelper) IsSourceFile(path string, includePatterns []string) bool {
	name := filepath.Base(path)
	for _, pattern := range includePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	name := filepath.Base(path)
	slashed := filepath.ToSlash(path)
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		// Also check path segments
		if strings.Contains(slashed, "/"+pattern+"/") {
			return true
		}
	}
	return false
}

// loadGitignore compiles root/.gitignore, or returns nil when there is none
func loadGitignore(root string) (*ignore.GitIgnore, error) {
	path := filepath.Join(root, gitignoreFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return ignore.CompileIgnoreFile(path)
}
