// Package config reads and writes the worker deployment config
// (wrangler.toml) and the entry point's package.json.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmeg/sitebundle/util"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultFile       = "wrangler.toml"
	DefaultEntryPoint = "workers-site"
	SiteKey           = "site"
)

// Site is the bundling section of the config.
type Site struct {
	Bucket     string `toml:"bucket" validate:"required"`
	EntryPoint string `toml:"entry-point"`
}

// Config is a loaded deployment config. Doc holds the whole document so
// fields this tool does not know about are written back unchanged.
type Config struct {
	Path string
	Doc  map[string]any
}

var validate = validator.New()

// Load parses the TOML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Msg: "file not found"}
		}
		return nil, &ConfigError{Path: path, Msg: "unreadable", Err: err}
	}
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Msg: "malformed TOML", Err: err}
	}
	return &Config{Path: path, Doc: doc}, nil
}

// Dir is the project directory relative paths in the config resolve against.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path)
}

// Site decodes and validates the site table. The entry point defaults to
// workers-site.
func (c *Config) Site() (Site, error) {
	raw, ok := c.Doc[SiteKey]
	if !ok {
		return Site{}, &ConfigError{Path: c.Path, Msg: "missing [site] table"}
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return Site{}, &ConfigError{Path: c.Path, Msg: "site must be a table"}
	}
	data, err := toml.Marshal(table)
	if err != nil {
		return Site{}, &ConfigError{Path: c.Path, Msg: "bad [site] table", Err: err}
	}
	var site Site
	if err := toml.Unmarshal(data, &site); err != nil {
		return Site{}, &ConfigError{Path: c.Path, Msg: "bad [site] table", Err: err}
	}
	if err := validate.Struct(site); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			names := []string{}
			for _, fe := range verrs {
				names = append(names, "site."+strings.ToLower(fe.Field())+" is "+fe.Tag())
			}
			return Site{}, &ConfigError{Path: c.Path, Msg: strings.Join(names, ", ")}
		}
		return Site{}, &ConfigError{Path: c.Path, Msg: "invalid [site] table", Err: err}
	}
	if site.EntryPoint == "" {
		site.EntryPoint = DefaultEntryPoint
	}
	return site, nil
}

// ProjectPath resolves name against the project dir. An empty name is
// the default config file.
func ProjectPath(dir, name string) string {
	if name == "" {
		name = DefaultFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Resolve makes p absolute against the project directory.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// WithoutSite returns a shallow copy of the document with the site table
// removed, for the deployed copy of the config.
func (c *Config) WithoutSite() map[string]any {
	out := make(map[string]any, len(c.Doc))
	for k, v := range c.Doc {
		if k != SiteKey {
			out[k] = v
		}
	}
	return out
}

// Marshal renders a document as TOML.
func Marshal(doc map[string]any) ([]byte, error) {
	return toml.Marshal(doc)
}

// Save writes doc to path, replacing any existing file in one rename.
func Save(path string, doc map[string]any) error {
	data, err := Marshal(doc)
	if err != nil {
		return &ConfigError{Path: path, Msg: "cannot encode TOML", Err: err}
	}
	return util.WriteFileAtomic(path, data)
}

// Keys returns the sorted keys of a table.
func Keys(table map[string]any) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
