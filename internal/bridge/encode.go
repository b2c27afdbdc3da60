package bridge

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/roach88/valu/internal/value"
)

// Marshaler is implemented by types that build their own Value, typically
// enumerations that call the Encoder's variant methods.
type Marshaler interface {
	MarshalValue(e *Encoder) (value.Value, error)
}

// maxDepth bounds recursion so cyclic pointer graphs fail instead of
// overflowing the stack.
const maxDepth = 10000

var (
	valueType           = reflect.TypeFor[value.Value]()
	marshalerType       = reflect.TypeFor[Marshaler]()
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	timeType            = reflect.TypeFor[time.Time]()
	bigIntType          = reflect.TypeFor[big.Int]()
)

// Encoder converts native Go values into Values. It is the serializing half
// of the visitor protocol.
type Encoder struct {
	cfg   config
	depth int
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// ToValue converts x into a Value.
func ToValue(x any, opts ...Option) (value.Value, error) {
	return NewEncoder(opts...).Encode(x)
}

// Encode converts x into a Value. Marshaler implementations call it for
// their payloads.
func (e *Encoder) Encode(x any) (value.Value, error) {
	if x == nil {
		return value.Null{}, nil
	}
	return e.encode(reflect.ValueOf(x))
}

func (e *Encoder) encode(rv reflect.Value) (value.Value, error) {
	if !rv.IsValid() {
		return value.Null{}, nil
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxDepth {
		return nil, value.NewUnsupportedType(fmt.Sprintf("%s nested deeper than %d (cyclic?)", rv.Type(), maxDepth))
	}

	t := rv.Type()

	if t.Implements(valueType) {
		switch {
		case t == valueType && rv.IsNil():
			return value.Undefined{}, nil
		case isNilRef(rv):
			return value.Null{}, nil
		}
		return value.Clone(rv.Interface().(value.Value)), nil
	}
	if t.Implements(marshalerType) {
		if isNilRef(rv) {
			return value.Null{}, nil
		}
		return rv.Interface().(Marshaler).MarshalValue(e)
	}
	if reflect.PointerTo(t).Implements(marshalerType) {
		if rv.CanAddr() {
			return rv.Addr().Interface().(Marshaler).MarshalValue(e)
		}
		// map values, interface contents and by-value arguments
		p := reflect.New(t)
		p.Elem().Set(rv)
		return p.Interface().(Marshaler).MarshalValue(e)
	}

	switch t {
	case timeType:
		tm := rv.Interface().(time.Time)
		dt, ok := value.NewZoned(tm)
		if !ok {
			return nil, value.NewOutOfRange("time %s outside supported years", tm)
		}
		return dt, nil
	case bigIntType:
		b := rv.Interface().(big.Int)
		return encodeBig(&b)
	case reflect.PointerTo(bigIntType):
		if rv.IsNil() {
			return value.Null{}, nil
		}
		return encodeBig(rv.Interface().(*big.Int))
	}

	if t.Implements(textMarshalerType) && !isNilRef(rv) {
		return encodeText(rv.Interface().(encoding.TextMarshaler))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.IntNumber(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.UintNumber(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.FloatNumber(rv.Float()), nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.Null{}, nil
		}
		return e.encode(rv.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil, value.NewUnsupportedType(t.String() + " (raw bytes)")
		}
		if rv.IsNil() {
			return value.Null{}, nil
		}
		return e.encodeSeq(rv)
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil, value.NewUnsupportedType(t.String() + " (raw bytes)")
		}
		return e.encodeSeq(rv)
	case reflect.Map:
		if rv.IsNil() {
			return value.Null{}, nil
		}
		return e.encodeMap(rv)
	case reflect.Struct:
		return e.encodeStruct(rv)
	default:
		return nil, value.NewUnsupportedType(t.String())
	}
}

func (e *Encoder) encodeSeq(rv reflect.Value) (value.Value, error) {
	arr := value.NewArray(rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := e.encode(rv.Index(i))
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		arr.Push(elem)
	}
	return arr, nil
}

func (e *Encoder) encodeMap(rv reflect.Value) (value.Value, error) {
	obj := value.NewObject(value.SortedOrder)
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return nil, err
		}
		elem, err := e.encode(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", key, err)
		}
		obj.Insert(key, elem)
	}
	return obj, nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Type().Implements(textMarshalerType) {
		if isNilRef(k) {
			return "", nil
		}
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", fmt.Errorf("map key: %w", err)
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", value.NewUnsupportedType("map key " + k.Type().String())
}

func (e *Encoder) encodeStruct(rv reflect.Value) (value.Value, error) {
	obj := value.NewObject(e.cfg.ordering)
	for _, f := range structFields(rv.Type()) {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		elem, err := e.encode(fv)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
		obj.Insert(f.name, elem)
	}
	return obj, nil
}

func encodeBig(b *big.Int) (value.Value, error) {
	n, err := value.BigNumber(b)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func encodeText(m encoding.TextMarshaler) (value.Value, error) {
	b, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return value.String(b), nil
}

// isNilRef reports whether rv is a nil pointer, interface, map or slice.
func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
