// Package codec renders Values as text and reads them back from document
// formats. It is an edge adapter: decisions about what a payload means
// belong to the payload package, and this package only applies each
// format's own rules.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/valu/internal/value"
)

// Mode selects a JSON rendering.
type Mode int

const (
	// Compact emits no insignificant whitespace.
	Compact Mode = iota

	// Indented emits one member per line, tab indented, with "key": value.
	Indented

	// Canonical emits RFC 8785 key order and NFC strings with no
	// insignificant whitespace. Objects are sorted regardless of their
	// own ordering policy.
	Canonical
)

func (m Mode) String() string {
	switch m {
	case Compact:
		return "compact"
	case Indented:
		return "indented"
	case Canonical:
		return "canonical"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// JSON renders v. Undefined renders as null and DateTime as a quoted
// string. Non-finite floats have no JSON form and fail with OUT_OF_RANGE.
func JSON(v value.Value, mode Mode) ([]byte, error) {
	w := &jsonWriter{mode: mode}
	if err := w.write(v, 0); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf  bytes.Buffer
	mode Mode
}

func (w *jsonWriter) write(v value.Value, depth int) error {
	switch val := v.(type) {
	case nil, value.Null, value.Undefined:
		w.buf.WriteString("null")
	case value.Bool:
		if val {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case value.Number:
		if val.IsFloat() {
			f, _ := val.Float64()
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return value.NewOutOfRange("%s has no JSON representation", val)
			}
		}
		w.buf.WriteString(val.String())
	case value.String:
		return w.writeString(string(val))
	case value.DateTime:
		return w.writeString(val.String())
	case *value.Array:
		return w.writeArray(val, depth)
	case *value.Object:
		return w.writeObject(val, depth)
	default:
		return value.NewUnsupportedType(fmt.Sprintf("%T", v))
	}
	return nil
}

func (w *jsonWriter) writeArray(arr *value.Array, depth int) error {
	if arr.Len() == 0 {
		w.buf.WriteString("[]")
		return nil
	}
	w.buf.WriteByte('[')
	for i, elem := range arr.All() {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newline(depth + 1)
		if err := w.write(elem, depth+1); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	w.newline(depth)
	w.buf.WriteByte(']')
	return nil
}

func (w *jsonWriter) writeObject(obj *value.Object, depth int) error {
	if obj.Len() == 0 {
		w.buf.WriteString("{}")
		return nil
	}
	keys := obj.Keys()
	if w.mode == Canonical {
		keys = obj.SortedKeys()
	}

	w.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newline(depth + 1)
		if err := w.writeString(k); err != nil {
			return err
		}
		w.buf.WriteByte(':')
		if w.mode == Indented {
			w.buf.WriteByte(' ')
		}
		elem, _ := obj.Get(k)
		if err := w.write(elem, depth+1); err != nil {
			return fmt.Errorf("object[%q]: %w", k, err)
		}
	}
	w.newline(depth)
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) newline(depth int) {
	if w.mode != Indented {
		return
	}
	w.buf.WriteByte('\n')
	for range depth {
		w.buf.WriteByte('\t')
	}
}

// writeString quotes s without HTML escaping. Canonical mode normalizes to
// NFC and leaves U+2028/U+2029 unescaped as RFC 8785 requires.
func (w *jsonWriter) writeString(s string) error {
	if w.mode == Canonical {
		s = norm.NFC.String(s)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	if w.mode == Canonical {
		out = unescapeLineSeparators(out)
	}
	w.buf.Write(out)
	return nil
}

// unescapeLineSeparators replaces \u2028 and \u2029 escapes with the raw
// characters. An escape preceded by an odd run of backslashes is literal
// text and is kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	backslashes := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c == '\\' && backslashes%2 == 0 && i+5 < len(data) &&
			data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			backslashes = 0
			continue
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		out = append(out, c)
	}
	return out
}
