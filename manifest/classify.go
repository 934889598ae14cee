package manifest

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// Hash returns the lowercase hex SHA-1 of data.
func Hash(data []byte) string {
	h := sha1.Sum(data)
	return fmt.Sprintf("%x", h)
}

// ContentType guesses a MIME type from the extension of name alone,
// ignoring case. It is empty when the extension is unknown.
func ContentType(name string) string {
	base := path.Base(name)
	ext := path.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return contentTypes[strings.ToLower(ext)]
}

// Classify builds the record for a file. Content that is valid UTF-8 is
// text and embedded as is; anything else is binary and embedded as base64.
func Classify(name string, data []byte) (Record, Kind) {
	r := Record{
		Hash:     Hash(data),
		Metadata: Metadata{ContentType: ContentType(name)},
	}
	if utf8.Valid(data) {
		r.Payload = string(data)
		return r, KindText
	}
	r.Payload = base64.StdEncoding.EncodeToString(data)
	return r, KindBinary
}

// Builder accumulates a Site one file at a time.
type Builder struct {
	site *Site
}

func NewBuilder() *Builder {
	return &Builder{site: &Site{
		Manifest:   New(),
		Content:    []Record{},
		B64Content: []Record{},
		Files:      []FileInfo{},
	}}
}

// Add classifies data and records it under the slash separated path rel.
func (b *Builder) Add(rel string, data []byte) (FileInfo, error) {
	r, kind := Classify(rel, data)
	if err := b.site.Manifest.Add(rel, r.Hash); err != nil {
		return FileInfo{}, err
	}
	if kind == KindText {
		b.site.Content = append(b.site.Content, r)
	} else {
		b.site.B64Content = append(b.site.B64Content, r)
	}
	info := FileInfo{
		Path:        rel,
		Hash:        r.Hash,
		Size:        uint64(len(data)),
		Kind:        kind,
		ContentType: r.Metadata.ContentType,
	}
	b.site.Files = append(b.site.Files, info)
	return info, nil
}

func (b *Builder) Len() int {
	return b.site.Manifest.Len()
}

func (b *Builder) Site() *Site {
	return b.site
}
