package tmpl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmeg/sitebundle/jsonfmt"
)

// Option is one key=literal pair from a placeholder's format spec. Value is
// nil, bool, int64, float64 or string. A key given without '=' has a nil
// Value.
type Option struct {
	Key   string
	Value any
}

// FormatFunc turns a context value into the text substituted for a
// placeholder.
type FormatFunc func(value any, opts []Option) (string, error)

var formatters = map[string]FormatFunc{
	"json": FormatJSON,
	"raw":  FormatRaw,
}

func lookup(verb string) (FormatFunc, bool) {
	fn, ok := formatters[verb]
	return fn, ok
}

// ParseSpec splits a format spec into options. Empty pieces are skipped, so
// "" and "indent=2," are both fine.
func ParseSpec(spec string) ([]Option, error) {
	out := []Option{}
	if strings.TrimSpace(spec) == "" {
		return out, nil
	}
	for _, piece := range splitSpec(spec) {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		key, lit, hasValue := strings.Cut(piece, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("missing option name in %q", piece)
		}
		opt := Option{Key: key}
		if hasValue {
			v, err := ParseLiteral(lit)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			opt.Value = v
		}
		out = append(out, opt)
	}
	return out, nil
}

// splitSpec splits on commas outside quoted strings, so a separator option
// like item_separator=", " survives.
func splitSpec(spec string) []string {
	out := []string{}
	var quote byte
	start := 0
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case quote == 0 && c == ',':
			out = append(out, spec[start:i])
			start = i + 1
		}
	}
	return append(out, spec[start:])
}

// ParseLiteral reads a scalar literal: a quoted string, an integer, a float,
// or one of True, False, None and their lowercase JSON spellings.
func ParseLiteral(s string) (any, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "None", "null":
		return nil, nil
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	case "":
		return nil, fmt.Errorf("empty literal")
	}
	if q := s[0]; q == '"' || q == '\'' {
		return parseQuoted(s)
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("malformed literal %s", s)
}

func parseQuoted(s string) (string, error) {
	q := s[0]
	if len(s) < 2 || s[len(s)-1] != q {
		return "", fmt.Errorf("unterminated string %s", s)
	}
	if q == '"' {
		out, err := strconv.Unquote(s)
		if err != nil {
			return "", fmt.Errorf("malformed string %s", s)
		}
		return out, nil
	}
	// rewrite 'x' as "x" for strconv
	body := s[1 : len(s)-1]
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body) && body[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(body):
			b.WriteByte(c)
			b.WriteByte(body[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		case c == '\'':
			return "", fmt.Errorf("malformed string %s", s)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	out, err := strconv.Unquote(b.String())
	if err != nil {
		return "", fmt.Errorf("malformed string %s", s)
	}
	return out, nil
}

// JSONOptions maps format spec options onto encoder options. Recognized
// keys are indent, sort_keys, ensure_ascii, item_separator and
// key_separator.
func JSONOptions(opts []Option) (jsonfmt.Options, error) {
	out := jsonfmt.Defaults()
	for _, o := range opts {
		switch o.Key {
		case "indent":
			switch v := o.Value.(type) {
			case nil:
				out.Indent = nil
			case int64:
				out.Indent = jsonfmt.IndentSpaces(int(v))
			case string:
				s := v
				out.Indent = &s
			default:
				return out, fmt.Errorf("indent must be an integer or string, not %v", v)
			}
		case "sort_keys":
			out.SortKeys = truthy(o.Value)
		case "ensure_ascii":
			out.EnsureASCII = truthy(o.Value)
		case "item_separator", "key_separator":
			var sep *string
			switch v := o.Value.(type) {
			case nil:
			case string:
				s := v
				sep = &s
			default:
				return out, fmt.Errorf("%s must be a string, not %v", o.Key, v)
			}
			if o.Key == "item_separator" {
				out.ItemSeparator = sep
			} else {
				out.KeySeparator = sep
			}
		default:
			return out, fmt.Errorf("unsupported option %s", o.Key)
		}
	}
	return out, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

// FormatJSON writes value as JSON.
func FormatJSON(value any, opts []Option) (string, error) {
	o, err := JSONOptions(opts)
	if err != nil {
		return "", err
	}
	return jsonfmt.MarshalString(value, o)
}

// FormatRaw writes strings as they are and other scalars in their plain Go
// form. Objects and arrays are written as compact JSON. It takes no options.
func FormatRaw(value any, opts []Option) (string, error) {
	if len(opts) > 0 {
		return "", fmt.Errorf("unsupported option %s", opts[0].Key)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	}
	return jsonfmt.MarshalString(value, jsonfmt.Compact())
}
