package scan

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/util"
)

// IgnoreFile is the per-directory exclusion file.
const IgnoreFile = ".gitignore"

// DefaultPattern excludes dotfiles and dot directories everywhere.
const DefaultPattern = ".*"

// RuleSet holds the exclusion patterns that apply to the entries of one
// directory. Rule sets are never inherited by subdirectories.
type RuleSet struct {
	Dir      string
	Patterns []string
}

func DefaultRuleSet(dir string) RuleSet {
	return RuleSet{Dir: dir, Patterns: []string{DefaultPattern}}
}

// ParseIgnore returns one pattern per non-empty line with trailing
// whitespace removed. Every other line is a pattern, including ones that
// start with '#'.
func ParseIgnore(data []byte) []string {
	out := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), len(data)+1)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r\v\f")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// LoadRuleSet builds the rule set for dir: the default pattern plus the
// lines of dir/.gitignore when that file exists.
func LoadRuleSet(dir string) (RuleSet, error) {
	rs := DefaultRuleSet(dir)
	path := filepath.Join(dir, IgnoreFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rs, nil
		}
		return rs, util.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return rs, nil
	}
	data, err := util.ReadFile(path)
	if err != nil {
		return rs, err
	}
	rs.Patterns = append(rs.Patterns, ParseIgnore(data)...)
	logger.Debug("Loaded ignore rules", "dir", dir, "patterns", len(rs.Patterns)-1)
	return rs, nil
}

// Matcher tests bare entry names against a compiled rule set.
type Matcher struct {
	patterns []string
	literals map[string]bool
}

// Matcher compiles the rule set. Patterns are whole-name globs: '*', '?',
// '[...]' and '[!...]'. A pattern that is not a valid glob matches by
// literal equality.
func (rs RuleSet) Matcher() *Matcher {
	m := &Matcher{literals: map[string]bool{}}
	for _, p := range rs.Patterns {
		if doublestar.ValidatePattern(p) {
			m.patterns = append(m.patterns, p)
			continue
		}
		// an unterminated class is a literal '[' in shell globs
		q := strings.ReplaceAll(p, "[", `\[`)
		if doublestar.ValidatePattern(q) {
			m.patterns = append(m.patterns, q)
			continue
		}
		m.literals[p] = true
	}
	return m
}

// Match reports whether name is excluded.
func (m *Matcher) Match(name string) bool {
	if m.literals[name] {
		return true
	}
	for _, p := range m.patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Filter returns the names not excluded by the matcher, keeping order.
func (m *Matcher) Filter(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !m.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// FilterNames applies the rule set of dir to a list of its entry names.
func FilterNames(dir string, names []string) ([]string, error) {
	rs, err := LoadRuleSet(dir)
	if err != nil {
		return nil, err
	}
	return rs.Matcher().Filter(names), nil
}
