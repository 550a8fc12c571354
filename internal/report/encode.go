// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrUnencodable is returned when a value has no JSON form, either because a
// mapping key is not a scalar or because a float is not finite.
var ErrUnencodable = errors.New("value is not JSON serializable")

const hexDigits = "0123456789abcdef"

type (
	// Field is one key/value pair of an OrderedMap.
	Field struct {
		Key   any
		Value any
	}

	// OrderedMap is a mapping that keeps insertion order when encoded.
	OrderedMap []Field

	// UnencodableError names the offending value.
	UnencodableError struct {
		Reason string
	}

	encoder struct {
		sb     strings.Builder
		indent string
	}
)

// Error implements the error interface.
func (e *UnencodableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnencodable, e.Reason)
}

// Unwrap returns ErrUnencodable for errors.Is() compatibility.
func (e *UnencodableError) Unwrap() error { return ErrUnencodable }

// Marshal encodes v on one line.
//
// Supported values are nil, bool, the integer and float types, json.Number,
// string, []any, OrderedMap and map[string]any (sorted by key). Any other
// value is encoded as its string form.
func Marshal(v any) ([]byte, error) {
	return marshal(v, "")
}

// MarshalIndent encodes v across lines, indenting nested values by indent.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return marshal(v, indent)
}

func marshal(v any, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return []byte(e.sb.String()), nil
}

func (e *encoder) value(v any, depth int) error {
	switch x := v.(type) {
	case nil:
		e.sb.WriteString("null")
	case bool:
		e.sb.WriteString(strconv.FormatBool(x))
	case int:
		e.sb.WriteString(strconv.Itoa(x))
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprint(&e.sb, x)
	case json.Number:
		e.sb.WriteString(x.String())
	case float32:
		return e.float(float64(x))
	case float64:
		return e.float(x)
	case string:
		e.str(x)
	case []any:
		return e.list(x, depth)
	case OrderedMap:
		return e.object(x, depth)
	case map[string]any:
		return e.object(sortedFields(x), depth)
	default:
		e.str(Stringify(x))
	}
	return nil
}

func (e *encoder) float(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &UnencodableError{Reason: fmt.Sprintf("float %v is not finite", f)}
	}
	e.sb.WriteString(formatFloat(f))
	return nil
}

func (e *encoder) list(items []any, depth int) error {
	if len(items) == 0 {
		e.sb.WriteString("[]")
		return nil
	}
	e.sb.WriteByte('[')
	for i, item := range items {
		e.separator(i, depth+1)
		if err := e.value(item, depth+1); err != nil {
			return err
		}
	}
	e.closing(depth)
	e.sb.WriteByte(']')
	return nil
}

func (e *encoder) object(fields OrderedMap, depth int) error {
	if len(fields) == 0 {
		e.sb.WriteString("{}")
		return nil
	}
	e.sb.WriteByte('{')
	for i, f := range fields {
		key, err := keyString(f.Key)
		if err != nil {
			return err
		}
		e.separator(i, depth+1)
		e.str(key)
		e.sb.WriteString(": ")
		if err := e.value(f.Value, depth+1); err != nil {
			return err
		}
	}
	e.closing(depth)
	e.sb.WriteByte('}')
	return nil
}

// separator writes what precedes element i: ", " inline, or ",\n" plus
// indentation when indenting.
func (e *encoder) separator(i, depth int) {
	if e.indent == "" {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		return
	}
	if i > 0 {
		e.sb.WriteByte(',')
	}
	e.sb.WriteByte('\n')
	e.sb.WriteString(strings.Repeat(e.indent, depth))
}

func (e *encoder) closing(depth int) {
	if e.indent == "" {
		return
	}
	e.sb.WriteByte('\n')
	e.sb.WriteString(strings.Repeat(e.indent, depth))
}

// str writes s as a JSON string with every non-ASCII rune escaped.
func (e *encoder) str(s string) {
	e.sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '"':
			e.sb.WriteString(`\"`)
		case r == '\\':
			e.sb.WriteString(`\\`)
		case r == '\n':
			e.sb.WriteString(`\n`)
		case r == '\r':
			e.sb.WriteString(`\r`)
		case r == '\t':
			e.sb.WriteString(`\t`)
		case r == '\b':
			e.sb.WriteString(`\b`)
		case r == '\f':
			e.sb.WriteString(`\f`)
		case r < 0x20 || (r > 0x7f && r <= 0xffff):
			e.u4(r)
		case r > 0xffff:
			r -= 0x10000
			e.u4(0xd800 + (r>>10)&0x3ff)
			e.u4(0xdc00 + r&0x3ff)
		default:
			e.sb.WriteRune(r)
		}
	}
	e.sb.WriteByte('"')
}

func (e *encoder) u4(r rune) {
	e.sb.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		e.sb.WriteByte(hexDigits[(r>>shift)&0xf])
	}
}

// keyString converts a mapping key the way json.dumps does: strings as-is,
// bool/int/float/None as their JSON text.
func keyString(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	case json.Number:
		return x.String(), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", &UnencodableError{Reason: fmt.Sprintf("key %v is not finite", x)}
		}
		return formatFloat(x), nil
	default:
		return "", &UnencodableError{Reason: fmt.Sprintf("keys must be str, int, float, bool or None, not %s", typeName(k))}
	}
}

// formatFloat renders f as the shortest repr, always with a fractional part or
// exponent, switching to exponent form below 1e-4 and from 1e16.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Stringify returns the string form of a value with no JSON representation.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func typeName(v any) string {
	type typeNamer interface{ Type() string }
	if t, ok := v.(typeNamer); ok {
		return t.Type()
	}
	return fmt.Sprintf("%T", v)
}

func sortedFields(m map[string]any) OrderedMap {
	fields := make(OrderedMap, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return fields
}
