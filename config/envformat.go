package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatEnv substitutes name for every {} and {0} in s. {{ and }} are
// literal braces. A field may carry a conversion (!s, !r, !a) and a string
// format spec such as {:>8} or {0:*^10.3}. Named or other positional fields
// are an error.
func FormatEnv(s, name string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{':
			if strings.HasPrefix(s[i:], "{{") {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("single '{' in format string %q", s)
			}
			out, err := formatField(s[i+1:i+end], name)
			if err != nil {
				return "", fmt.Errorf("%w in %q", err, s)
			}
			b.WriteString(out)
			i += end
		case '}':
			if strings.HasPrefix(s[i:], "}}") {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("single '}' in format string %q", s)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func formatField(field, name string) (string, error) {
	if strings.ContainsRune(field, '{') {
		return "", fmt.Errorf("nested replacement field {%s}", field)
	}
	ref, spec, _ := strings.Cut(field, ":")
	ref, conv, hasConv := strings.Cut(ref, "!")
	if ref != "" && ref != "0" {
		return "", fmt.Errorf("unsupported replacement field {%s}: only {} and {0} are available", field)
	}
	value := name
	if hasConv {
		switch conv {
		case "s":
		case "r":
			value = quoteRepr(name, false)
		case "a":
			value = quoteRepr(name, true)
		default:
			return "", fmt.Errorf("unknown conversion %q in {%s}", conv, field)
		}
	}
	return applyStringSpec(value, spec)
}

// quoteRepr quotes s with single quotes, or double quotes when s holds a
// single quote and no double quote. ascii escapes every non-ASCII rune.
func quoteRepr(s string, ascii bool) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case ascii || !unicode.IsPrint(r):
			switch {
			case r <= 0xff:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// applyStringSpec pads and truncates value per
// [[fill]align][0][width][.precision][s].
func applyStringSpec(value, spec string) (string, error) {
	if spec == "" {
		return value, nil
	}
	rs := []rune(spec)
	pos := 0
	fill, align := ' ', rune(0)
	isAlign := func(r rune) bool { return strings.ContainsRune("<>=^", r) }
	if len(rs) >= 2 && isAlign(rs[1]) {
		fill, align = rs[0], rs[1]
		pos = 2
	} else if len(rs) >= 1 && isAlign(rs[0]) {
		align = rs[0]
		pos = 1
	}
	if pos < len(rs) && strings.ContainsRune("+- ", rs[pos]) {
		return "", fmt.Errorf("sign not allowed in string format specifier %q", spec)
	}
	if pos < len(rs) && rs[pos] == '#' {
		return "", fmt.Errorf("alternate form (#) not allowed in string format specifier %q", spec)
	}
	if pos < len(rs) && rs[pos] == '0' {
		if align == 0 {
			fill = '0'
		}
		pos++
	}
	digits := func() (int, bool, error) {
		start := pos
		for pos < len(rs) && rs[pos] >= '0' && rs[pos] <= '9' {
			pos++
		}
		if start == pos {
			return 0, false, nil
		}
		n, err := strconv.Atoi(string(rs[start:pos]))
		return n, true, err
	}
	width, _, err := digits()
	if err != nil {
		return "", fmt.Errorf("bad width in format specifier %q", spec)
	}
	if pos < len(rs) && (rs[pos] == ',' || rs[pos] == '_') {
		return "", fmt.Errorf("cannot specify '%c' with 's' in %q", rs[pos], spec)
	}
	precision := -1
	if pos < len(rs) && rs[pos] == '.' {
		pos++
		p, ok, err := digits()
		if err != nil || !ok {
			return "", fmt.Errorf("format specifier missing precision in %q", spec)
		}
		precision = p
	}
	switch rest := string(rs[pos:]); rest {
	case "", "s":
	default:
		if utf8.RuneCountInString(rest) == 1 {
			return "", fmt.Errorf("unknown format code '%s' for a string", rest)
		}
		return "", fmt.Errorf("invalid format specifier %q", spec)
	}
	if align == '=' {
		return "", fmt.Errorf("'=' alignment not allowed in string format specifier %q", spec)
	}

	vr := []rune(value)
	if precision >= 0 && precision < len(vr) {
		vr = vr[:precision]
	}
	pad := width - len(vr)
	if pad <= 0 {
		return string(vr), nil
	}
	left := 0
	switch align {
	case '>':
		left = pad
	case '^':
		left = pad / 2
	}
	fillStr := string(fill)
	return strings.Repeat(fillStr, left) + string(vr) + strings.Repeat(fillStr, pad-left), nil
}
