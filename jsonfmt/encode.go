package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Valuer lets a type describe itself as plain JSON data (nil, bool, string,
// numbers, slices, *Object, map[string]any or other Valuers).
type Valuer interface {
	JSONValue() any
}

// Options control the encoder output.
type Options struct {
	// Indent is nil for single line output. Otherwise every nesting level
	// is prefixed by this string on a new line.
	Indent      *string
	SortKeys    bool
	EnsureASCII bool
	// nil selects the default for the indent mode: ", " single line,
	// "," with indentation.
	ItemSeparator *string
	// nil selects ": ".
	KeySeparator *string
}

// Defaults is single line output with ASCII escaping.
func Defaults() Options {
	return Options{EnsureASCII: true}
}

// Compact is the tightest output, used for Go-side marshaling.
func Compact() Options {
	item, key := ",", ":"
	return Options{ItemSeparator: &item, KeySeparator: &key}
}

// IndentSpaces returns an indent string of n spaces. Negative n is treated as zero.
func IndentSpaces(n int) *string {
	if n < 0 {
		n = 0
	}
	s := strings.Repeat(" ", n)
	return &s
}

// Marshal encodes v according to opts.
func Marshal(v any, opts Options) ([]byte, error) {
	e := &encoder{opts: opts}
	e.item = ", "
	if opts.Indent != nil {
		e.item = ","
	}
	if opts.ItemSeparator != nil {
		e.item = *opts.ItemSeparator
	}
	e.key = ": "
	if opts.KeySeparator != nil {
		e.key = *opts.KeySeparator
	}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any, opts Options) (string, error) {
	b, err := Marshal(v, opts)
	return string(b), err
}

type encoder struct {
	buf  bytes.Buffer
	opts Options
	item string
	key  string
}

func (e *encoder) newline(level int) {
	if e.opts.Indent == nil {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < level; i++ {
		e.buf.WriteString(*e.opts.Indent)
	}
}

func (e *encoder) encode(v any, level int) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil
	case Valuer:
		return e.encode(t.JSONValue(), level)
	case bool:
		if t {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
		return nil
	case string:
		e.writeString(t)
		return nil
	case json.Number:
		e.buf.WriteString(t.String())
		return nil
	case float64:
		e.writeFloat(t)
		return nil
	case float32:
		e.writeFloat(float64(t))
		return nil
	case int:
		e.buf.WriteString(strconv.FormatInt(int64(t), 10))
		return nil
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
		return nil
	case *Object:
		if t == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeMembers(t.Members(), level)
	case Object:
		return e.encodeMembers(t.Members(), level)
	case map[string]any:
		members := make([]Member, 0, len(t))
		for k, v := range t {
			members = append(members, Member{Key: k, Value: v})
		}
		// Go maps have no order, so they are always written sorted
		sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		return e.encodeMembers(members, level)
	case []any:
		return e.encodeList(len(t), func(i int) any { return t[i] }, level)
	}
	return e.encodeReflect(v, level)
}

func (e *encoder) encodeReflect(v any, level int) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encode(rv.Elem().Interface(), level)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			e.buf.WriteString("[]")
			return nil
		}
		return e.encodeList(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, level)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("jsonfmt: unsupported map key type %s", rv.Type().Key())
		}
		members := make([]Member, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			members = append(members, Member{Key: iter.Key().String(), Value: iter.Value().Interface()})
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		return e.encodeMembers(members, level)
	case reflect.Bool:
		return e.encode(rv.Bool(), level)
	case reflect.String:
		e.writeString(rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		e.writeFloat(rv.Float())
		return nil
	}
	return fmt.Errorf("jsonfmt: unsupported type %T", v)
}

func (e *encoder) encodeList(n int, at func(int) any, level int) error {
	if n == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	e.newline(level + 1)
	for i := 0; i < n; i++ {
		if i > 0 {
			e.buf.WriteString(e.item)
			e.newline(level + 1)
		}
		if err := e.encode(at(i), level+1); err != nil {
			return err
		}
	}
	e.newline(level)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) encodeMembers(members []Member, level int) error {
	if len(members) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	if e.opts.SortKeys {
		sorted := make([]Member, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		members = sorted
	}
	e.buf.WriteByte('{')
	e.newline(level + 1)
	for i, m := range members {
		if i > 0 {
			e.buf.WriteString(e.item)
			e.newline(level + 1)
		}
		e.writeString(m.Key)
		e.buf.WriteString(e.key)
		if err := e.encode(m.Value, level+1); err != nil {
			return err
		}
	}
	e.newline(level)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) writeFloat(f float64) {
	switch {
	case math.IsNaN(f):
		e.buf.WriteString("NaN")
	case math.IsInf(f, 1):
		e.buf.WriteString("Infinity")
	case math.IsInf(f, -1):
		e.buf.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		e.buf.WriteString(s)
	}
}

const hexDigits = "0123456789abcdef"

func (e *encoder) writeU(r rune) {
	e.buf.WriteString(`\u`)
	e.buf.WriteByte(hexDigits[(r>>12)&0xf])
	e.buf.WriteByte(hexDigits[(r>>8)&0xf])
	e.buf.WriteByte(hexDigits[(r>>4)&0xf])
	e.buf.WriteByte(hexDigits[r&0xf])
}

func (e *encoder) writeString(s string) {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
			continue
		case '\\':
			e.buf.WriteString(`\\`)
			continue
		case '\n':
			e.buf.WriteString(`\n`)
			continue
		case '\r':
			e.buf.WriteString(`\r`)
			continue
		case '\t':
			e.buf.WriteString(`\t`)
			continue
		case '\b':
			e.buf.WriteString(`\b`)
			continue
		case '\f':
			e.buf.WriteString(`\f`)
			continue
		}
		switch {
		case r < 0x20:
			e.writeU(r)
		case r < 0x7f:
			e.buf.WriteByte(byte(r))
		case !e.opts.EnsureASCII:
			// invalid bytes come back as RuneError and are written as U+FFFD
			e.buf.WriteRune(r)
		case r < 0x10000:
			e.writeU(r)
		default:
			r -= 0x10000
			e.writeU(0xd800 | ((r >> 10) & 0x3ff))
			e.writeU(0xdc00 | (r & 0x3ff))
		}
	}
	e.buf.WriteByte('"')
}
