package value

import (
	"fmt"
	"math/big"
	"time"
)

// From converts a built-in Go value into a Value.
//
// Accepted: nil, Value, bool, every integer and float width, *big.Int,
// string, time.Time, []Value, []any, map[string]Value and map[string]any
// (maps become SortedOrder objects since Go maps carry no order).
// Values reachable from x are deep-copied, never shared.
// Anything else fails with UNSUPPORTED_TYPE; use the bridge package for
// structs and arbitrary collections.
func From(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return Clone(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return IntNumber(v), nil
	case int8:
		return IntNumber(v), nil
	case int16:
		return IntNumber(v), nil
	case int32:
		return IntNumber(v), nil
	case int64:
		return IntNumber(v), nil
	case uint:
		return UintNumber(v), nil
	case uint8:
		return UintNumber(v), nil
	case uint16:
		return UintNumber(v), nil
	case uint32:
		return UintNumber(v), nil
	case uint64:
		return UintNumber(v), nil
	case float32:
		return FloatNumber(v), nil
	case float64:
		return FloatNumber(v), nil
	case *big.Int:
		n, err := BigNumber(v)
		if err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return String(v), nil
	case time.Time:
		dt, ok := NewZoned(v)
		if !ok {
			return nil, NewOutOfRange("time %s outside years %d..%d", v, minYear, maxYear)
		}
		return dt, nil
	case []Value:
		arr := NewArray(len(v))
		for _, elem := range v {
			arr.Push(Clone(elem))
		}
		return arr, nil
	case []any:
		arr := NewArray(len(v))
		for i, elem := range v {
			ev, err := From(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.Push(ev)
		}
		return arr, nil
	case map[string]Value:
		obj := NewObject(SortedOrder)
		for k, elem := range v {
			obj.Insert(k, Clone(elem))
		}
		return obj, nil
	case map[string]any:
		obj := NewObject(SortedOrder)
		for k, elem := range v {
			ev, err := From(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj.Insert(k, ev)
		}
		return obj, nil
	default:
		return nil, NewUnsupportedType(fmt.Sprintf("%T", x))
	}
}

// MustFrom is like From but panics on error. Intended for literals in tests
// and examples.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}
