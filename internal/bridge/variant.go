package bridge

import (
	"fmt"

	"github.com/roach88/valu/internal/value"
)

// VariantKind is the payload shape of one enumeration variant.
type VariantKind int

const (
	UnitVariant VariantKind = iota
	NewtypeVariant
	TupleVariant
	StructVariant
)

func (k VariantKind) String() string {
	switch k {
	case UnitVariant:
		return "unit"
	case NewtypeVariant:
		return "newtype"
	case TupleVariant:
		return "tuple"
	case StructVariant:
		return "struct"
	default:
		return fmt.Sprintf("variant(%d)", int(k))
	}
}

// Variant declares one case of an enumeration for Decoder.Variant.
type Variant struct {
	Name string
	Kind VariantKind
}

func Unit(name string) Variant    { return Variant{Name: name, Kind: UnitVariant} }
func Newtype(name string) Variant { return Variant{Name: name, Kind: NewtypeVariant} }
func Tuple(name string) Variant   { return Variant{Name: name, Kind: TupleVariant} }
func Struct(name string) Variant  { return Variant{Name: name, Kind: StructVariant} }

// Field is one named payload entry of a struct variant.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for Field{Name: name, Value: v}.
func F(name string, v any) Field { return Field{Name: name, Value: v} }

// UnitVariant encodes a payload-less variant as its bare name.
func (e *Encoder) UnitVariant(name string) value.Value {
	return value.String(name)
}

// NewtypeVariant encodes {name: payload}.
func (e *Encoder) NewtypeVariant(name string, payload any) (value.Value, error) {
	inner, err := e.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", name, err)
	}
	return e.wrapVariant(name, inner), nil
}

// TupleVariant encodes {name: [fields...]}.
func (e *Encoder) TupleVariant(name string, fields ...any) (value.Value, error) {
	arr := value.NewArray(len(fields))
	for i, f := range fields {
		inner, err := e.Encode(f)
		if err != nil {
			return nil, fmt.Errorf("variant %q: array[%d]: %w", name, i, err)
		}
		arr.Push(inner)
	}
	return e.wrapVariant(name, arr), nil
}

// StructVariant encodes {name: {field: value, ...}} with fields in the
// Encoder's configured ordering.
func (e *Encoder) StructVariant(name string, fields ...Field) (value.Value, error) {
	obj := value.NewObject(e.cfg.ordering)
	for _, f := range fields {
		inner, err := e.Encode(f.Value)
		if err != nil {
			return nil, fmt.Errorf("variant %q: field %q: %w", name, f.Name, err)
		}
		obj.Insert(f.Name, inner)
	}
	return e.wrapVariant(name, obj), nil
}

func (e *Encoder) wrapVariant(name string, payload value.Value) value.Value {
	obj := value.NewObject(e.cfg.ordering)
	obj.Insert(name, payload)
	return obj
}

// VariantAccess gives an Unmarshaler the selected variant and its payload.
type VariantAccess struct {
	d       *Decoder
	variant Variant
	payload value.Value
}

// Variant identifies which of variants v holds. Unit variants appear as a
// bare string (or a single-key object with a null payload); all others as a
// single-key object mapping the variant name to its payload.
func (d *Decoder) Variant(v value.Value, variants ...Variant) (*VariantAccess, error) {
	switch val := v.(type) {
	case value.String:
		vr, err := lookupVariant(string(val), variants)
		if err != nil {
			return nil, err
		}
		if vr.Kind != UnitVariant {
			return nil, value.NewTypeMismatch(vr.Kind.String()+" variant payload", "string")
		}
		return &VariantAccess{d: d, variant: vr, payload: value.Undefined{}}, nil
	case *value.Object:
		if val.Len() != 1 {
			return nil, value.NewInvalidVariant("enum object must have exactly one key, got %d", val.Len())
		}
		name := val.Keys()[0]
		vr, err := lookupVariant(name, variants)
		if err != nil {
			return nil, err
		}
		payload, _ := val.Get(name)
		if vr.Kind == UnitVariant && !value.IsAbsent(payload) {
			return nil, value.NewTypeMismatch("unit variant", value.KindOf(payload).String())
		}
		return &VariantAccess{d: d, variant: vr, payload: payload}, nil
	case *value.Array:
		return nil, value.NewInvalidVariant("array-encoded enums are not supported")
	default:
		return nil, value.NewTypeMismatch("enum", value.KindOf(v).String())
	}
}

func lookupVariant(name string, variants []Variant) (Variant, error) {
	for _, vr := range variants {
		if vr.Name == name {
			return vr, nil
		}
	}
	return Variant{}, value.NewInvalidVariant("unknown variant %q", name)
}

// Name returns the selected variant's name.
func (a *VariantAccess) Name() string { return a.variant.Name }

// Kind returns the selected variant's payload shape.
func (a *VariantAccess) Kind() VariantKind { return a.variant.Kind }

// Newtype decodes the single payload into target.
func (a *VariantAccess) Newtype(target any) error {
	if err := a.expect(NewtypeVariant); err != nil {
		return err
	}
	if err := a.d.Decode(a.payload, target); err != nil {
		return fmt.Errorf("variant %q: %w", a.variant.Name, err)
	}
	return nil
}

// Tuple decodes the payload elements positionally into targets. Too few
// elements is MISSING_FIELD; too many is TYPE_MISMATCH.
func (a *VariantAccess) Tuple(targets ...any) error {
	if err := a.expect(TupleVariant); err != nil {
		return err
	}
	arr, ok := a.payload.(*value.Array)
	if !ok {
		return value.NewTypeMismatch("array", value.KindOf(a.payload).String())
	}
	if arr.Len() < len(targets) {
		return value.NewMissingField(fmt.Sprintf("%s[%d]", a.variant.Name, arr.Len()))
	}
	if arr.Len() > len(targets) {
		return value.NewTypeMismatch(
			fmt.Sprintf("%d elements", len(targets)),
			fmt.Sprintf("%d elements", arr.Len()),
		)
	}
	for i, elem := range arr.All() {
		if err := a.d.Decode(elem, targets[i]); err != nil {
			return fmt.Errorf("variant %q: array[%d]: %w", a.variant.Name, i, err)
		}
	}
	return nil
}

// Struct decodes the payload object into target, a pointer to a struct or
// map.
func (a *VariantAccess) Struct(target any) error {
	if err := a.expect(StructVariant); err != nil {
		return err
	}
	if _, ok := a.payload.(*value.Object); !ok {
		return value.NewTypeMismatch("object", value.KindOf(a.payload).String())
	}
	if err := a.d.Decode(a.payload, target); err != nil {
		return fmt.Errorf("variant %q: %w", a.variant.Name, err)
	}
	return nil
}

func (a *VariantAccess) expect(kind VariantKind) error {
	if a.variant.Kind != kind {
		return value.NewTypeMismatch(kind.String()+" variant", a.variant.Kind.String()+" variant")
	}
	return nil
}
