package manifest

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bmeg/sitebundle/jsonfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	// sha1("hi")
	assert.Equal(t, "c22b5f9178342609428d6f51b2c5af4c0bde6a42", Hash([]byte("hi")))
	assert.Equal(t, Hash([]byte("hi")), Hash([]byte("hi")))
	assert.Len(t, Hash(nil), 40)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/html", ContentType("index.html"))
	assert.Equal(t, "image/png", ContentType("img/logo.png"))
	assert.Equal(t, "image/png", ContentType("LOGO.PNG"))
	assert.Equal(t, "", ContentType("LICENSE"))
	assert.Equal(t, "", ContentType("sub/.bashrc"))
	assert.Equal(t, "", ContentType("data.nosuchext"))
	assert.Equal(t, "text/plain", ContentType("notes.txt"))
	assert.Equal(t, "text/javascript", ContentType("app.JS"))
	assert.Equal(t, "font/woff2", ContentType("fonts/a.woff2"))
	assert.Equal(t, "text/css", ContentType("dir.with.dots/site.css"))
}

func TestContentTypeTableIsNormalized(t *testing.T) {
	for ext, typ := range contentTypes {
		assert.Equal(t, strings.ToLower(ext), ext)
		assert.True(t, strings.HasPrefix(ext, "."), ext)
		assert.NotContains(t, typ, ";", ext)
	}
}

func TestClassifyText(t *testing.T) {
	r, kind := Classify("a.txt", []byte("héllo\n"))
	assert.Equal(t, KindText, kind)
	assert.Equal(t, "héllo\n", r.Payload)
	assert.Equal(t, Hash([]byte("héllo\n")), r.Hash)
	assert.Equal(t, "text/plain", r.Metadata.ContentType)
}

func TestClassifyBinary(t *testing.T) {
	inputs := [][]byte{
		{0xff, 0xfe},
		{0xc3},             // truncated sequence
		{0xed, 0xa0, 0x80}, // surrogate
		{0xc0, 0xaf},       // overlong
		append([]byte("text then "), 0x80),
	}
	for _, data := range inputs {
		r, kind := Classify("keep.bin", data)
		require.Equal(t, KindBinary, kind, "%x", data)
		decoded, err := base64.StdEncoding.DecodeString(r.Payload)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
		assert.NotContains(t, r.Payload, "\n")
	}
}

func TestClassifyEmptyIsText(t *testing.T) {
	r, kind := Classify("empty.css", nil)
	assert.Equal(t, KindText, kind)
	assert.Equal(t, "", r.Payload)
}

func TestBuilderPartitions(t *testing.T) {
	b := NewBuilder()
	_, err := b.Add("a.txt", []byte("hi"))
	require.NoError(t, err)
	info, err := b.Add("sub/keep.bin", []byte{0xff, 0xfe})
	require.NoError(t, err)
	assert.Equal(t, KindBinary, info.Kind)
	assert.Equal(t, uint64(2), info.Size)

	site := b.Site()
	assert.Equal(t, []string{"a.txt", "sub/keep.bin"}, site.Manifest.Paths())
	require.Len(t, site.Content, 1)
	require.Len(t, site.B64Content, 1)
	assert.Equal(t, Hash([]byte("hi")), site.Content[0].Hash)
	assert.Equal(t, "//4=", site.B64Content[0].Payload)

	sum := site.Summary()
	assert.Equal(t, 2, sum.FileCount)
	assert.Equal(t, uint64(4), sum.TotalSize)
}

func TestBuilderRejectsDuplicatePath(t *testing.T) {
	b := NewBuilder()
	_, err := b.Add("a.txt", []byte("1"))
	require.NoError(t, err)
	_, err = b.Add("a.txt", []byte("2"))
	require.Error(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestSiteJSON(t *testing.T) {
	b := NewBuilder()
	_, _ = b.Add("z.html", []byte("<p>"))
	_, _ = b.Add("a.weird", []byte{0xff})
	site := b.Site()

	m, err := jsonfmt.MarshalString(site.Manifest, jsonfmt.Defaults())
	require.NoError(t, err)
	assert.Equal(t, `{"z.html": "`+Hash([]byte("<p>"))+`", "a.weird": "`+Hash([]byte{0xff})+`"}`, m)

	c, err := jsonfmt.MarshalString(site.Content, jsonfmt.Defaults())
	require.NoError(t, err)
	assert.Equal(t, `[["`+Hash([]byte("<p>"))+`", "<p>", {"Content-Type": "text/html"}]]`, c)

	bc, err := jsonfmt.MarshalString(site.B64Content, jsonfmt.Defaults())
	require.NoError(t, err)
	assert.Equal(t, `[["`+Hash([]byte{0xff})+`", "/w==", {"Content-Type": null}]]`, bc)

	raw, err := json.Marshal(site.Manifest)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"z.html":`)
}
