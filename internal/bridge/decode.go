package bridge

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/roach88/valu/internal/value"
)

// Unmarshaler is implemented by types that read themselves from a Value,
// typically enumerations that call Decoder.Variant.
type Unmarshaler interface {
	UnmarshalValue(d *Decoder, v value.Value) error
}

// Decoder converts Values into native Go values. It is the deserializing
// half of the visitor protocol.
type Decoder struct {
	cfg config
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newConfig(opts)}
}

// FromValue decodes v into target, which must be a non-nil pointer.
func FromValue(v value.Value, target any, opts ...Option) error {
	return NewDecoder(opts...).Decode(v, target)
}

// Decode returns v decoded as a T.
func Decode[T any](v value.Value, opts ...Option) (T, error) {
	var out T
	err := NewDecoder(opts...).Decode(v, &out)
	return out, err
}

// Decode decodes v into target, which must be a non-nil pointer.
// Unmarshaler implementations call it for their payloads.
func (d *Decoder) Decode(v value.Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return value.NewUnsupportedType(fmt.Sprintf("decode target %T (want non-nil pointer)", target))
	}
	return d.decode(v, rv.Elem())
}

func (d *Decoder) decode(v value.Value, rv reflect.Value) error {
	if v == nil {
		v = value.Undefined{}
	}
	t := rv.Type()

	if t == valueType {
		if value.IsUndefined(v) {
			rv.Set(reflect.Zero(t))
			return nil
		}
		rv.Set(reflect.ValueOf(value.Clone(v)))
		return nil
	}
	if t.Implements(valueType) && t.Kind() != reflect.Interface {
		if t.Kind() == reflect.Pointer && value.IsAbsent(v) {
			rv.Set(reflect.Zero(t))
			return nil
		}
		c := reflect.ValueOf(value.Clone(v))
		if !c.Type().AssignableTo(t) {
			return value.NewTypeMismatch(t.String(), actualName(v))
		}
		rv.Set(c)
		return nil
	}

	if t.Kind() == reflect.Pointer {
		if value.IsAbsent(v) {
			rv.Set(reflect.Zero(t))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return d.decode(v, rv.Elem())
	}

	if rv.CanAddr() && reflect.PointerTo(t).Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalValue(d, v)
	}

	switch t {
	case timeType:
		return decodeTime(v, rv)
	case bigIntType:
		return decodeBig(v, rv)
	}

	if rv.CanAddr() && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		s, ok := v.(value.String)
		if !ok {
			return value.NewTypeMismatch("string", actualName(v))
		}
		if err := rv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return value.NewTypeMismatch(t.String(), fmt.Sprintf("string %q (%v)", string(s), err))
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return value.NewUnsupportedType("non-empty interface " + t.String())
		}
		if native := toNative(v); native != nil {
			rv.Set(reflect.ValueOf(native))
		} else {
			rv.Set(reflect.Zero(t))
		}
		return nil
	case reflect.Bool:
		b, ok := v.(value.Bool)
		if !ok {
			return value.NewTypeMismatch("bool", actualName(v))
		}
		rv.SetBool(bool(b))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeInt(v, rv)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decodeUint(v, rv)
	case reflect.Float32, reflect.Float64:
		n, ok := v.(value.Number)
		if !ok {
			return value.NewTypeMismatch("number", actualName(v))
		}
		f, _ := n.Float64()
		if rv.OverflowFloat(f) {
			return value.NewOutOfRange("%s does not fit %s", n, t)
		}
		rv.SetFloat(f)
		return nil
	case reflect.String:
		s, ok := v.(value.String)
		if !ok {
			return value.NewTypeMismatch("string", actualName(v))
		}
		rv.SetString(string(s))
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return value.NewUnsupportedType(t.String() + " (raw bytes)")
		}
		return d.decodeSlice(v, rv)
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return value.NewUnsupportedType(t.String() + " (raw bytes)")
		}
		return d.decodeArray(v, rv)
	case reflect.Map:
		return d.decodeMap(v, rv)
	case reflect.Struct:
		return d.decodeStruct(v, rv)
	default:
		return value.NewUnsupportedType(t.String())
	}
}

func decodeInt(v value.Value, rv reflect.Value) error {
	n, ok := v.(value.Number)
	if !ok {
		return value.NewTypeMismatch("integer", actualName(v))
	}
	if n.IsFloat() {
		return value.NewTypeMismatch("integer", "float")
	}
	i, ok := n.Int64()
	if !ok || rv.OverflowInt(i) {
		return value.NewOutOfRange("%s does not fit %s", n, rv.Type())
	}
	rv.SetInt(i)
	return nil
}

func decodeUint(v value.Value, rv reflect.Value) error {
	n, ok := v.(value.Number)
	if !ok {
		return value.NewTypeMismatch("integer", actualName(v))
	}
	if n.IsFloat() {
		return value.NewTypeMismatch("integer", "float")
	}
	u, ok := n.Uint64()
	if !ok || rv.OverflowUint(u) {
		return value.NewOutOfRange("%s does not fit %s", n, rv.Type())
	}
	rv.SetUint(u)
	return nil
}

func decodeBig(v value.Value, rv reflect.Value) error {
	n, ok := v.(value.Number)
	if !ok {
		return value.NewTypeMismatch("integer", actualName(v))
	}
	if n.IsFloat() {
		return value.NewTypeMismatch("integer", "float")
	}
	b, ok := n.Int128()
	if !ok {
		b, _ = n.Uint128()
	}
	rv.Set(reflect.ValueOf(b).Elem())
	return nil
}

func decodeTime(v value.Value, rv reflect.Value) error {
	switch val := v.(type) {
	case value.DateTime:
		rv.Set(reflect.ValueOf(val.Time()))
		return nil
	case value.String:
		dt, err := value.ParseDateTime(string(val))
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(dt.Time()))
		return nil
	}
	return value.NewTypeMismatch("datetime", actualName(v))
}

func (d *Decoder) decodeSlice(v value.Value, rv reflect.Value) error {
	if value.IsAbsent(v) {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	arr, ok := v.(*value.Array)
	if !ok {
		return value.NewTypeMismatch("array", actualName(v))
	}
	out := reflect.MakeSlice(rv.Type(), arr.Len(), arr.Len())
	for i, elem := range arr.All() {
		if err := d.decode(elem, out.Index(i)); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	rv.Set(out)
	return nil
}

func (d *Decoder) decodeArray(v value.Value, rv reflect.Value) error {
	arr, ok := v.(*value.Array)
	if !ok {
		return value.NewTypeMismatch("array", actualName(v))
	}
	want := rv.Len()
	if arr.Len() < want {
		return value.NewMissingField(fmt.Sprintf("[%d]", arr.Len()))
	}
	if arr.Len() > want {
		return value.NewTypeMismatch(fmt.Sprintf("array of %d", want), fmt.Sprintf("array of %d", arr.Len()))
	}
	for i, elem := range arr.All() {
		if err := d.decode(elem, rv.Index(i)); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	return nil
}

func (d *Decoder) decodeMap(v value.Value, rv reflect.Value) error {
	if value.IsAbsent(v) {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	obj, ok := v.(*value.Object)
	if !ok {
		return value.NewTypeMismatch("object", actualName(v))
	}
	t := rv.Type()
	out := reflect.MakeMapWithSize(t, obj.Len())
	for k, elem := range obj.All() {
		key, err := parseMapKey(k, t.Key())
		if err != nil {
			return err
		}
		ev := reflect.New(t.Elem()).Elem()
		if err := d.decode(elem, ev); err != nil {
			return fmt.Errorf("object[%q]: %w", k, err)
		}
		out.SetMapIndex(key, ev)
	}
	rv.Set(out)
	return nil
}

func parseMapKey(k string, kt reflect.Type) (reflect.Value, error) {
	if reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		kv := reflect.New(kt)
		if err := kv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(k)); err != nil {
			return reflect.Value{}, value.NewTypeMismatch(kt.String()+" key", fmt.Sprintf("%q", k))
		}
		return kv.Elem(), nil
	}
	kv := reflect.New(kt).Elem()
	switch kt.Kind() {
	case reflect.String:
		kv.SetString(k)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(k, 10, 64)
		if err != nil || kv.OverflowInt(i) {
			return reflect.Value{}, value.NewTypeMismatch(kt.String()+" key", fmt.Sprintf("%q", k))
		}
		kv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(k, 10, 64)
		if err != nil || kv.OverflowUint(u) {
			return reflect.Value{}, value.NewTypeMismatch(kt.String()+" key", fmt.Sprintf("%q", k))
		}
		kv.SetUint(u)
	default:
		return reflect.Value{}, value.NewUnsupportedType("map key " + kt.String())
	}
	return kv, nil
}

func (d *Decoder) decodeStruct(v value.Value, rv reflect.Value) error {
	obj, ok := v.(*value.Object)
	if !ok {
		return value.NewTypeMismatch("object", actualName(v))
	}
	for _, f := range structFields(rv.Type()) {
		elem, present := obj.Get(f.name)
		if !present || value.IsUndefined(elem) {
			if f.optional {
				continue
			}
			return value.NewMissingField(f.name)
		}
		if err := d.decode(elem, rv.FieldByIndex(f.index)); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	return nil
}

// toNative converts v into plain Go values for `any` targets.
// Numbers follow the preference order int64, uint64, float64, *big.Int.
func toNative(v value.Value) any {
	switch val := v.(type) {
	case value.Bool:
		return bool(val)
	case value.Number:
		if i, ok := val.Int64(); ok {
			return i
		}
		if u, ok := val.Uint64(); ok {
			return u
		}
		if val.IsFloat() {
			f, _ := val.Float64()
			return f
		}
		b, ok := val.Int128()
		if !ok {
			b, _ = val.Uint128()
		}
		return b
	case value.String:
		return string(val)
	case *value.Array:
		out := make([]any, 0, val.Len())
		for _, elem := range val.All() {
			out = append(out, toNative(elem))
		}
		return out
	case *value.Object:
		out := make(map[string]any, val.Len())
		for k, elem := range val.All() {
			out[k] = toNative(elem)
		}
		return out
	case value.DateTime:
		return val.Time()
	default:
		return nil
	}
}

// actualName names v's shape for TYPE_MISMATCH messages. Float numbers are
// reported as "float" so integer targets explain themselves.
func actualName(v value.Value) string {
	if n, ok := v.(value.Number); ok && n.IsFloat() {
		return "float"
	}
	return value.KindOf(v).String()
}
