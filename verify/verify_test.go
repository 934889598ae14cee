package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmeg/sitebundle/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScript(t *testing.T) []byte {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"wrangler.toml":             "name = \"w\"\n[site]\nbucket = \"public\"\n",
		"public/a.txt":              "hi",
		"public/index.html":         "<h1>café \U0001F600</h1>",
		"public/copy.txt":           "hi",
		"public/sub/keep.bin":       "\xff\xfe\x00\x80",
		"workers-site/package.json": `{"name": "w", "main": "index.js"}`,
	}
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
	dst := filepath.Join(root, "dist")
	_, err := builder.Build(filepath.Join(root, "wrangler.toml"), "", "", dst)
	require.NoError(t, err)
	src, err := os.ReadFile(filepath.Join(dst, builder.ScriptName))
	require.NoError(t, err)
	return src
}

func TestScriptRoundTrip(t *testing.T) {
	src := buildScript(t)
	report, err := Script(context.Background(), builder.ScriptName, src)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Entries)
	assert.Equal(t, 3, report.Distinct)
	assert.Equal(t, uint64(2+len("<h1>café \U0001F600</h1>")+4), report.Bytes)
}

func TestScriptDetectsTampering(t *testing.T) {
	src := strings.ReplaceAll(string(buildScript(t)), `"hi"`, `"ho"`)
	_, err := Script(context.Background(), builder.ScriptName, []byte(src))
	var verr *VerifyError
	require.True(t, errors.As(err, &verr), "%v", err)
	require.Len(t, verr.Problems, 2)
	assert.Equal(t, "a.txt", verr.Problems[0].Path)
	assert.Equal(t, "copy.txt", verr.Problems[1].Path)
	assert.Contains(t, verr.Problems[0].Msg, "content hashes to")
}

func TestScriptMissingContent(t *testing.T) {
	src := `
global.__STATIC_CONTENT_MANIFEST = {"a.txt": "0000"}
global.__STATIC_CONTENT = new Map()
`
	_, err := Script(context.Background(), "x.js", []byte(src))
	var verr *VerifyError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "no content", verr.Problems[0].Msg)
}

func TestScriptMissingGlobals(t *testing.T) {
	_, err := Script(context.Background(), "x.js", []byte("var x = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ManifestGlobal)
}

func TestSyntaxError(t *testing.T) {
	err := Syntax("x.js", []byte("global.x = {\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.js:")

	assert.NoError(t, Syntax("ok.js", []byte("const a = [1, 2]\n")))
}

func TestScriptCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Script(ctx, "loop.js", []byte("while (true) {}\n"))
	require.Error(t, err)
}
