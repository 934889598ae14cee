// Package tmpl renders $-placeholder templates, the format the worker site
// template is written in.
//
// A placeholder is $name or ${name:spec}. The spec is a comma separated list
// of key=literal options handed to the template's formatter verb, so
// ${manifest:indent=2} writes the manifest field as JSON indented by two
// spaces. $$ writes a literal dollar sign.
package tmpl

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateError reports a placeholder that cannot be parsed or resolved.
type TemplateError struct {
	Template string
	Line     int
	Col      int
	Name     string
	Msg      string
	Err      error
}

func (e *TemplateError) Error() string {
	loc := fmt.Sprintf("%s:%d:%d", e.Template, e.Line, e.Col)
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("template %s: %s %q", loc, msg, e.Name)
	}
	return fmt.Sprintf("template %s: %s", loc, msg)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

type segment struct {
	text    string
	field   string
	spec    string
	options []Option
	isField bool
	line    int
	col     int
}

// Template is a parsed template bound to one formatter verb.
type Template struct {
	name     string
	verb     string
	segments []segment
}

// DefaultVerb is the formatter used unless SetVerb picks another.
const DefaultVerb = "json"

// Parse splits src into literal text and placeholders. Format specs are
// parsed here so malformed options fail before any value is rendered.
func Parse(name, src string) (*Template, error) {
	t := &Template{name: name, verb: DefaultVerb}
	var lit strings.Builder
	line, col := 1, 1
	advance := func(s string) {
		for _, r := range s {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		if c != '$' {
			j := strings.IndexByte(src[i:], '$')
			if j < 0 {
				j = len(src) - i
			}
			lit.WriteString(src[i : i+j])
			advance(src[i : i+j])
			i += j
			continue
		}
		pl, pc := line, col
		rest := src[i+1:]
		switch {
		case strings.HasPrefix(rest, "$"):
			lit.WriteByte('$')
			advance("$$")
			i += 2
		case len(rest) > 0 && isIdentStart(rest[0]):
			n := 1
			for n < len(rest) && isIdentChar(rest[n]) {
				n++
			}
			flush()
			t.segments = append(t.segments, segment{field: rest[:n], isField: true, line: pl, col: pc})
			advance(src[i : i+1+n])
			i += 1 + n
		case strings.HasPrefix(rest, "{") && strings.IndexByte(rest, '}') > 0:
			end := strings.IndexByte(rest, '}')
			body := rest[1:end]
			field, spec, _ := strings.Cut(body, ":")
			opts, err := ParseSpec(spec)
			if err != nil {
				return nil, &TemplateError{Template: name, Line: pl, Col: pc, Name: field, Msg: "bad format spec", Err: err}
			}
			flush()
			t.segments = append(t.segments, segment{field: field, spec: spec, options: opts, isField: true, line: pl, col: pc})
			advance(src[i : i+2+end])
			i += 2 + end
		default:
			return nil, &TemplateError{Template: name, Line: pl, Col: pc, Msg: "invalid placeholder"}
		}
	}
	flush()
	return t, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// SetVerb selects the registered formatter used for every placeholder.
func (t *Template) SetVerb(verb string) error {
	if _, ok := lookup(verb); !ok {
		return fmt.Errorf("unknown format verb %q", verb)
	}
	t.verb = verb
	return nil
}

// Fields lists the distinct field names referenced by the template, sorted.
func (t *Template) Fields() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range t.segments {
		if s.isField && !seen[s.field] {
			seen[s.field] = true
			out = append(out, s.field)
		}
	}
	sort.Strings(out)
	return out
}

// Execute substitutes every placeholder from ctx. A field missing from ctx
// is an error; nothing is ever substituted with an empty value.
func (t *Template) Execute(ctx map[string]any) (string, error) {
	format, ok := lookup(t.verb)
	if !ok {
		return "", &TemplateError{Template: t.name, Line: 1, Col: 1, Name: t.verb, Msg: "unknown format verb"}
	}
	var out strings.Builder
	for _, s := range t.segments {
		if !s.isField {
			out.WriteString(s.text)
			continue
		}
		value, ok := ctx[s.field]
		if !ok {
			return "", &TemplateError{Template: t.name, Line: s.line, Col: s.col, Name: s.field, Msg: "undefined placeholder"}
		}
		text, err := format(value, s.options)
		if err != nil {
			return "", &TemplateError{Template: t.name, Line: s.line, Col: s.col, Name: s.field, Msg: "format failed", Err: err}
		}
		out.WriteString(text)
	}
	return out.String(), nil
}
