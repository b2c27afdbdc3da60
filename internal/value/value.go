package value

import "strconv"

// Kind identifies a Value variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindDateTime
)

var kindNames = [...]string{
	KindNull:      "null",
	KindUndefined: "undefined",
	KindBool:      "bool",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
	KindDateTime:  "datetime",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a sealed interface over the fixed set of variants.
// Only Null, Undefined, Bool, Number, String, *Array, *Object and DateTime
// implement it.
type Value interface {
	Kind() Kind
	value() // Sealed - only these types implement it
}

// Null is the explicit absence of meaning.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) value()     {}

// Undefined is the absence of initialization. It is distinct from Null.
type Undefined struct{}

func (Undefined) Kind() Kind { return KindUndefined }
func (Undefined) value()     {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) value()     {}

func (Number) Kind() Kind   { return KindNumber }
func (Number) value()       {}
func (String) Kind() Kind   { return KindString }
func (String) value()       {}
func (*Array) Kind() Kind   { return KindArray }
func (*Array) value()       {}
func (*Object) Kind() Kind  { return KindObject }
func (*Object) value()      {}
func (DateTime) Kind() Kind { return KindDateTime }
func (DateTime) value()     {}

// KindOf returns the kind of v. A nil interface reports KindUndefined.
func KindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}

// IsNull reports whether v is Null.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// IsUndefined reports whether v is Undefined (or a nil interface).
func IsUndefined(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Undefined)
	return ok
}

// IsAbsent reports whether v is either Null or Undefined.
func IsAbsent(v Value) bool {
	return IsNull(v) || IsUndefined(v)
}

// Clone returns a deep copy of v. Scalars are returned as-is since they are
// immutable; composites are copied recursively.
func Clone(v Value) Value {
	switch val := v.(type) {
	case nil:
		return Undefined{}
	case *Array:
		return val.Clone()
	case *Object:
		return val.Clone()
	case Number:
		return val.clone()
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal.
//
// Numbers compare by canonical magnitude (5 from uint8 equals 5 from int64).
// Objects compare key sets and values; ordering policy is ignored.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return IsUndefined(a) && IsUndefined(b)
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Equal(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Array:
		bv, ok := b.(*Array)
		return ok && av.equal(bv)
	case *Object:
		bv, ok := b.(*Object)
		return ok && av.equal(bv)
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av.Equal(bv)
	default:
		return false
	}
}

// AsBool returns the boolean held by v.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// AsNumber returns the Number held by v.
func AsNumber(v Value) (Number, bool) {
	n, ok := v.(Number)
	return n, ok
}

// AsString returns the string held by v.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsArray returns the Array held by v.
func AsArray(v Value) (*Array, bool) {
	a, ok := v.(*Array)
	return a, ok && a != nil
}

// AsObject returns the Object held by v.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// AsDateTime returns the DateTime held by v.
func AsDateTime(v Value) (DateTime, bool) {
	d, ok := v.(DateTime)
	return d, ok
}
