package codec

import (
	"fmt"
	"math/big"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/valu/internal/value"
)

// FromCUE evaluates CUE source and converts the result. Every reachable
// regular field must be concrete; definitions, hidden and optional fields
// are skipped. Struct fields keep their declaration order.
func FromCUE(src []byte, filename string) (value.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, value.NewParseError(-1, "cue: %v", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, value.NewParseError(-1, "cue: %v", err)
	}
	return fromCUE(v)
}

func fromCUE(v cue.Value) (value.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return value.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case cue.IntKind:
		i, err := v.Int(new(big.Int))
		if err != nil {
			return nil, err
		}
		return value.BigNumber(i)
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, value.NewOutOfRange("cue float %v: %v", v, err)
		}
		return value.FloatNumber(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case cue.BytesKind:
		return nil, value.NewUnsupportedType("cue bytes (raw bytes)")
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		arr := value.NewArray(0)
		for i := 0; iter.Next(); i++ {
			elem, err := fromCUE(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.Push(elem)
		}
		return arr, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		obj := value.NewObject(value.InsertionOrder)
		for iter.Next() {
			name := iter.Selector().Unquoted()
			elem, err := fromCUE(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", name, err)
			}
			obj.Insert(name, elem)
		}
		return obj, nil
	}
	return nil, value.NewUnsupportedType(fmt.Sprintf("cue kind %v", v.Kind()))
}
