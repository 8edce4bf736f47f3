package filelint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DiscoverStats tracks file discovery statistics
type DiscoverStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesSelected   int // Files kept for linting
	FilesSkipped    int // Files dropped by .gitignore
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// No .gitignore is fine
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile reports whether a discovered file is gitignored.
// Absolute paths (like /tmp/...) are not affected by the project gitignore.
func shouldSkipFile(path string, gi *ignore.GitIgnore) bool {
	if gi == nil || filepath.IsAbs(path) {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(path))
}

// Discover expands glob patterns into an ordered, de-duplicated file list.
// Patterns without glob metacharacters are taken as literal paths and are
// kept even when they do not exist, so a missing file surfaces as a read
// error instead of silently shrinking the report.
func Discover(patterns []string) ([]string, DiscoverStats, error) {
	return discover(patterns, loadGitIgnore())
}

func discover(patterns []string, gi *ignore.GitIgnore) ([]string, DiscoverStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := DiscoverStats{}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if !hasMeta(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				stats.FilesDiscovered++
				stats.FilesSelected++
				files = append(files, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			seen[match] = true
			stats.FilesDiscovered++
			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesSelected++
		}
	}

	return files, stats, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
