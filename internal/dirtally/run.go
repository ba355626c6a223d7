package dirtally

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultRoot is the directory audited when no path argument is given.
const DefaultRoot = "results"

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ErrRootNotFound indicates the root argument does not name an existing
// directory.
var ErrRootNotFound = errors.New("root directory not found")

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output to stderr if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// Resolve turns a root argument into a canonical absolute path. An empty
// argument falls back to DefaultRoot; relative arguments are resolved
// against the current working directory. The returned error names the
// original, unresolved input when the path does not exist or is not a
// directory.
func Resolve(path string) (string, error) {
	if path == "" {
		path = DefaultRoot
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRootNotFound, path)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrRootNotFound, path)
	}

	return abs, nil
}

// startProgressReporter invokes hook(files) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.files())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run resolves opt.Path and performs exactly one recursive walk over it,
// producing a Report that covers the root and every nested directory.
// Each regular file increments the count of its immediate parent only;
// directories without any files appear with a zero count. Symlinks are
// neither followed nor counted.
//
// Any error while listing a file or directory aborts the whole run; no
// partial report is produced. The walk can be cancelled via ctx.
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	root, err := Resolve(opt.Path)
	if err != nil {
		return nil, err
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	collector := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	// Configure fastwalk
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are fatal: the report is complete or absent.
			return fmt.Errorf("listing %q: %w", path, err)
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if matchedPattern := shouldExcludeByPattern(path, excludeRegexes); matchedPattern != nil {
			if d.IsDir() {
				log.printf("[debug]: excluding directory: %s (matched %s)\n", path, matchedPattern.String())

				return filepath.SkipDir
			}

			log.printf("[debug]: excluding file: %s (matched %s)\n", path, matchedPattern.String())

			return nil
		}

		if d.IsDir() {
			collector.addDir(path)

			return nil
		}

		// Symlinks and other non-regular entries are not counted.
		if !d.Type().IsRegular() {
			log.printf("[debug]: skipping non-regular entry: %s\n", path)

			return nil
		}

		collector.addFile(filepath.Dir(path))

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %q: %w", root, walkErr)
	}

	report := collector.finalize(root)

	report.Elapsed = time.Since(start)

	return report, nil
}
