package manifest

import (
	"fmt"

	"github.com/bmeg/sitebundle/jsonfmt"
)

// ContentTypeKey is the metadata key the worker runtime reads the MIME type from.
const ContentTypeKey = "Content-Type"

type Entry struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// Manifest maps asset paths to content hashes. Entries keep the order they
// were added in so rendered bundles are reproducible.
type Manifest struct {
	entries []Entry
	index   map[string]int
}

func New() *Manifest {
	return &Manifest{index: map[string]int{}}
}

// Add records path. A path can only be added once.
func (m *Manifest) Add(path, hash string) error {
	if _, ok := m.index[path]; ok {
		return fmt.Errorf("duplicate manifest path %s", path)
	}
	m.index[path] = len(m.entries)
	m.entries = append(m.entries, Entry{Path: path, Hash: hash})
	return nil
}

func (m *Manifest) Get(path string) (string, bool) {
	i, ok := m.index[path]
	if !ok {
		return "", false
	}
	return m.entries[i].Hash, true
}

func (m *Manifest) Len() int {
	return len(m.entries)
}

func (m *Manifest) Paths() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Path
	}
	return out
}

// JSONValue renders the manifest as a path -> hash object.
func (m *Manifest) JSONValue() any {
	o := jsonfmt.NewObject()
	for _, e := range m.entries {
		o.Set(e.Path, e.Hash)
	}
	return o
}

func (m *Manifest) MarshalJSON() ([]byte, error) {
	return jsonfmt.Marshal(m.JSONValue(), jsonfmt.Compact())
}

type Metadata struct {
	ContentType string
}

// JSONValue writes an unknown content type as null.
func (md Metadata) JSONValue() any {
	o := jsonfmt.NewObject()
	if md.ContentType == "" {
		o.Set(ContentTypeKey, nil)
	} else {
		o.Set(ContentTypeKey, md.ContentType)
	}
	return o
}

// Record is one embedded asset: its hash, the payload (text, or base64 for
// binary content) and the metadata served with it.
type Record struct {
	Hash     string
	Payload  string
	Metadata Metadata
}

// JSONValue renders the record as a [hash, payload, metadata] triple.
func (r Record) JSONValue() any {
	return []any{r.Hash, r.Payload, r.Metadata.JSONValue()}
}

type Kind int

const (
	KindText Kind = iota
	KindBinary
)

func (k Kind) String() string {
	if k == KindBinary {
		return "binary"
	}
	return "text"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FileInfo describes one bundled file, for summaries.
type FileInfo struct {
	Path        string `json:"path"`
	Hash        string `json:"hash"`
	Size        uint64 `json:"size"`
	Kind        Kind   `json:"kind"`
	ContentType string `json:"contentType,omitempty"`
}

type SummaryRecord struct {
	FileCount   int    `json:"fileCount"`
	TextCount   int    `json:"textCount"`
	BinaryCount int    `json:"binaryCount"`
	TotalSize   uint64 `json:"totalSize"`
}

// Site is everything the site template embeds.
type Site struct {
	Manifest   *Manifest
	Content    []Record
	B64Content []Record
	Files      []FileInfo
}

// Context returns the template fields provided by the site.
func (s *Site) Context() map[string]any {
	return map[string]any{
		"manifest":   s.Manifest,
		"content":    s.Content,
		"b64content": s.B64Content,
	}
}

func (s *Site) Summary() SummaryRecord {
	out := SummaryRecord{
		FileCount:   len(s.Files),
		TextCount:   len(s.Content),
		BinaryCount: len(s.B64Content),
	}
	for _, f := range s.Files {
		out.TotalSize += f.Size
	}
	return out
}
