package dirtally

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the reference fixture:
//
//	a.txt
//	sub/b.txt
//	sub/empty/
//	sub/nested/c.txt
//	sub/nested/d.txt
func writeTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	for _, dir := range []string{"sub/empty", "sub/nested"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	for _, file := range []string{"a.txt", "sub/b.txt", "sub/nested/c.txt", "sub/nested/d.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("x"), 0o644))
	}

	return root
}

func TestRunReferenceTree(t *testing.T) {
	root := writeTree(t)

	report, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(root), report.Root)
	assert.Equal(t, root, report.Path)
	assert.Equal(t, 4, report.GrandTotal)

	want := []DirCount{
		{Path: root, Rel: ".", Depth: 0, Direct: 1, Total: 4},
		{Path: filepath.Join(root, "sub"), Rel: "sub", Depth: 1, Direct: 1, Total: 3},
		{Path: filepath.Join(root, "sub", "empty"), Rel: "sub/empty", Depth: 2, Direct: 0, Total: 0},
		{Path: filepath.Join(root, "sub", "nested"), Rel: "sub/nested", Depth: 2, Direct: 2, Total: 2},
	}
	assert.Equal(t, want, report.Dirs)

	children := report.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "sub", children[0].Rel)
}

func TestRunGrandTotalEqualsSumOfDirectCounts(t *testing.T) {
	root := writeTree(t)

	report, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	sum := 0
	for _, dir := range report.Dirs {
		sum += dir.Direct
	}

	assert.Equal(t, report.GrandTotal, sum)
}

func TestRunOrderingStrictlyIncreasing(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{"b/x", "a", "c/y/z", "a/q"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	report, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	for i := 1; i < len(report.Dirs); i++ {
		assert.Less(t, report.Dirs[i-1].Path, report.Dirs[i].Path)
	}
}

func TestRunEmptyDirectoriesAppear(t *testing.T) {
	root := t.TempDir()

	// Only directories, no files at all.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "only", "dirs", "here"), 0o755))

	report, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.GrandTotal)
	require.Len(t, report.Dirs, 4)

	for _, dir := range report.Dirs {
		assert.Zero(t, dir.Direct)
		assert.Zero(t, dir.Total)
	}
}

func TestRunDeterministic(t *testing.T) {
	root := writeTree(t)

	first, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	second, err := Run(context.Background(), Options{Path: root}, nil)
	require.NoError(t, err)

	first.Elapsed = 0
	second.Elapsed = 0
	assert.Equal(t, first, second)
}

func TestRunExcludes(t *testing.T) {
	root := writeTree(t)

	report, err := Run(context.Background(), Options{
		Path:     root,
		Excludes: []string{`.*/nested($|/.*)`},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.GrandTotal)

	for _, dir := range report.Dirs {
		assert.NotEqual(t, "sub/nested", dir.Rel)
	}
}

func TestRunInvalidExcludePattern(t *testing.T) {
	root := t.TempDir()

	_, err := Run(context.Background(), Options{Path: root, Excludes: []string{`*[`}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling exclusion pattern")
}

func TestRunRootNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := Run(context.Background(), Options{Path: missing}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRootNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestRunRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Run(context.Background(), Options{Path: file}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRootNotFound)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRunCancelled(t *testing.T) {
	root := writeTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Path: root}, nil)
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "results"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, "other"), 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty defaults to results", path: "", want: filepath.Join(base, "results")},
		{name: "relative", path: "other", want: filepath.Join(base, "other")},
		{name: "absolute", path: filepath.Join(base, "other"), want: filepath.Join(base, "other")},
		{name: "unclean", path: "other" + string(filepath.Separator) + ".", want: filepath.Join(base, "other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateDepth(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "results")

	tests := []struct {
		path string
		want int
	}{
		{path: root, want: 0},
		{path: filepath.Join(root, "sub"), want: 1},
		{path: filepath.Join(root, "sub", "nested"), want: 2},
		{path: filepath.Join(root, "a", "b", "c"), want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calculateDepth(tt.path, root), "path %q", tt.path)
	}
}
