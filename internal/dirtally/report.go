package dirtally

import (
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// DirCount describes a single directory in the audited tree.
type DirCount struct {
	// Path is the absolute directory path.
	Path string `json:"path"`
	// Rel is the path relative to the root, "." for the root itself.
	Rel string `json:"rel"`
	// Depth is the number of path components below the root.
	Depth int `json:"depth"`
	// Direct is the number of regular files directly inside the directory.
	Direct int `json:"direct"`
	// Total is the number of regular files in the directory and all of
	// its descendants.
	Total int `json:"total"`
}

// Report holds the result of one directory audit.
type Report struct {
	// Root is the basename of the resolved root directory.
	Root string `json:"root"`
	// Path is the absolute resolved root path.
	Path string `json:"path"`
	// GrandTotal is the number of regular files anywhere under the root.
	GrandTotal int `json:"grand_total"`
	// Dirs lists every directory under the root, including the root and
	// directories without any files, sorted byte-wise by absolute path.
	Dirs []DirCount `json:"dirs"`
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// Children returns the entries for the root's immediate subdirectories,
// in the same order as Dirs.
func (r *Report) Children() []DirCount {
	children := make([]DirCount, 0)

	for _, dir := range r.Dirs {
		if dir.Depth == 1 {
			children = append(children, dir)
		}
	}

	return children
}

// Options configures a directory audit and CLI behavior.
type Options struct {
	// Path is the root directory to audit.
	Path string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Levels limits the tree breakdown display depth (0=unlimited).
	Levels int
	// Totals indicates whether to display recursive totals per directory.
	Totals bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (text or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output integration script.
	Integration bool
}

// collector aggregates per-directory counts from concurrent fastwalk
// callbacks using a mutex.
type collector struct {
	mu        sync.Mutex // Protect concurrent access
	counts    map[string]int
	fileCount int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{counts: make(map[string]int)}
}

// addDir ensures dir has an entry, so directories without any files
// still appear in the report.
func (c *collector) addDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.counts[dir]; !ok {
		c.counts[dir] = 0
	}
}

// addFile attributes one regular file to its containing directory.
func (c *collector) addFile(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[dir]++
	c.fileCount++
}

// files returns the number of files counted so far.
func (c *collector) files() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount
}

// finalize produces the Report from the collected counts: entries sorted
// byte-wise by absolute path, relative paths and depths derived from the
// root, and recursive totals accumulated up the ancestor chain.
func (c *collector) finalize(root string) *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths := make([]string, 0, len(c.counts))
	for path := range c.counts {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	// Each directory's direct count contributes to every ancestor up to
	// and including the root.
	totals := make(map[string]int, len(c.counts))

	for dir, direct := range c.counts {
		for p := dir; ; p = filepath.Dir(p) {
			totals[p] += direct
			if p == root {
				break
			}
		}
	}

	dirs := make([]DirCount, 0, len(paths))

	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		dirs = append(dirs, DirCount{
			Path:   path,
			Rel:    filepath.ToSlash(rel),
			Depth:  calculateDepth(path, root),
			Direct: c.counts[path],
			Total:  totals[path],
		})
	}

	return &Report{
		Root:       filepath.Base(root),
		Path:       root,
		GrandTotal: int(c.fileCount),
		Dirs:       dirs,
	}
}
