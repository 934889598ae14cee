package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmeg/sitebundle/jsonfmt"
	"github.com/xeipuuv/gojsonschema"
)

const (
	PackageFile = "package.json"
	MainKey     = "main"
)

//go:embed package.schema.json
var packageSchema string

var packageSchemaLoader = gojsonschema.NewStringLoader(packageSchema)

// Package is the entry point's package.json. Doc keeps the original key
// order.
type Package struct {
	Path string
	Doc  *jsonfmt.Object
}

// LoadPackage reads and validates a package descriptor.
func LoadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Msg: "file not found"}
		}
		return nil, &ConfigError{Path: path, Msg: "unreadable", Err: err}
	}
	return ParsePackage(path, data)
}

// ParsePackage decodes descriptor bytes read from path.
func ParsePackage(path string, data []byte) (*Package, error) {
	v, err := jsonfmt.Decode(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "malformed JSON", Err: err}
	}
	result, err := gojsonschema.Validate(packageSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "schema validation failed during load", Err: err}
	}
	if !result.Valid() {
		msgs := []string{}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, &ConfigError{Path: path, Msg: "invalid package descriptor: " + strings.Join(msgs, "; ")}
	}
	obj, ok := v.(*jsonfmt.Object)
	if !ok {
		return nil, &ConfigError{Path: path, Msg: "package descriptor must be an object"}
	}
	return &Package{Path: path, Doc: obj}, nil
}

func (p *Package) Main() string {
	v, _ := p.Doc.Get(MainKey)
	s, _ := v.(string)
	return s
}

// SetMain points the descriptor at the generated script. An existing main
// key keeps its position.
func (p *Package) SetMain(name string) {
	p.Doc.Set(MainKey, name)
}

// Clone copies the top level of the descriptor.
func (p *Package) Clone() *Package {
	doc := jsonfmt.NewObject()
	for _, m := range p.Doc.Members() {
		doc.Set(m.Key, m.Value)
	}
	return &Package{Path: p.Path, Doc: doc}
}

// JSONValue exposes the descriptor to templates.
func (p *Package) JSONValue() any {
	return p.Doc
}

// Marshal renders the descriptor on one line with the default separators.
func (p *Package) Marshal() ([]byte, error) {
	return jsonfmt.Marshal(p.Doc, jsonfmt.Defaults())
}
