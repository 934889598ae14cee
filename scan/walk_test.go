package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func rels(t *testing.T, root string) []string {
	t.Helper()
	files, err := List(root)
	require.NoError(t, err)
	out := []string{}
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestWalkExample(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":          "hi",
		"sub/.gitignore": "skip.txt\n",
		"sub/skip.txt":   "x",
		"sub/keep.bin":   "\xff\xfe",
	})
	assert.Equal(t, []string{"a.txt", "sub/keep.bin"}, rels(t, root))
}

func TestWalkHashLineIsPattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "#notes\n",
		"#notes":     "private",
		"a.txt":      "hi",
	})
	assert.Equal(t, []string{"a.txt"}, rels(t, root))
}

func TestWalkOrderFilesBeforeDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b/1.txt":   "1",
		"a/z/2.txt": "2",
		"a/3.txt":   "3",
		"z.txt":     "z",
		"c.txt":     "c",
	})
	assert.Equal(t, []string{"c.txt", "z.txt", "a/3.txt", "a/z/2.txt", "b/1.txt"}, rels(t, root))
}

func TestWalkDotfilesExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".hidden":        "x",
		".git/config":    "x",
		"dir/.env":       "x",
		"dir/index.html": "<p>",
	})
	assert.Equal(t, []string{"dir/index.html"}, rels(t, root))
}

func TestWalkPrunesExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":             "build\n*.log\n",
		"build/out.js":           "x",
		"build/nested/deep.html": "x",
		"app.log":                "x",
		"app.js":                 "x",
	})
	assert.Equal(t, []string{"app.js"}, rels(t, root))
}

// Rules are recomputed per directory: a parent's .gitignore does not
// apply to its children.
func TestWalkRulesNotInherited(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":        "*.log\n",
		"top.log":           "x",
		"sub/nested.log":    "x",
		"sub/.gitignore":    "*.tmp\n",
		"sub/a.tmp":         "x",
		"sub/deeper/b.tmp":  "x",
		"sub/deeper/c.log":  "x",
		"sub/deeper/d.html": "x",
	})
	assert.Equal(t, []string{
		"sub/nested.log",
		"sub/deeper/b.tmp",
		"sub/deeper/c.log",
		"sub/deeper/d.html",
	}, rels(t, root))
}

func TestWalkMissingRoot(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalkRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f": "x"})
	_, err := List(filepath.Join(root, "f"))
	require.Error(t, err)
}

func TestWalkDoesNotFollowDirectoryLinks(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeTree(t, root, map[string]string{"real/a.txt": "a", "file.txt": "f"})
	writeTree(t, other, map[string]string{"b.txt": "b"})
	require.NoError(t, os.Symlink(other, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "file.txt"), filepath.Join(root, "alias.txt")))

	assert.Equal(t, []string{"alias.txt", "file.txt", "real/a.txt"}, rels(t, root))
}

func TestWalkStop(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "1", "b": "2", "c": "3"})
	seen := 0
	err := Walk(root, func(f File) error {
		seen++
		if seen == 2 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestWalkFilePaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"x/y.txt": "y"})
	files, err := List(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "x", "y.txt"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "x"), files[0].Dir)
	assert.Equal(t, "x/y.txt", files[0].Rel)
}
