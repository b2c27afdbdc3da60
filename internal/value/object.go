package value

import (
	"iter"
	"slices"
	"unicode/utf16"
)

// Ordering selects how an Object orders its keys. It is fixed at
// construction.
type Ordering uint8

const (
	// InsertionOrder iterates keys in first-insertion order. Updating an
	// existing key keeps its position.
	InsertionOrder Ordering = iota

	// SortedOrder iterates keys in RFC 8785 order (UTF-16 code units).
	SortedOrder
)

func (o Ordering) String() string {
	if o == SortedOrder {
		return "sorted"
	}
	return "insertion"
}

// Object maps unique string keys to Values.
// Both orderings share insert/get/remove semantics; only iteration differs.
type Object struct {
	order Ordering
	keys  []string
	m     map[string]Value
}

// NewObject creates an empty Object with the given ordering.
func NewObject(order Ordering) *Object {
	return &Object{order: order, m: make(map[string]Value)}
}

// Pair is a key/value pair for literal Object construction.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand for Pair.
// Example: Obj(P("name", String("cart")), P("count", IntNumber(5)))
func P(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// Obj creates an insertion-ordered Object from pairs. Later duplicates
// overwrite earlier values in place.
func Obj(pairs ...Pair) *Object {
	return objFromPairs(InsertionOrder, pairs)
}

// SortedObj creates a key-sorted Object from pairs.
func SortedObj(pairs ...Pair) *Object {
	return objFromPairs(SortedOrder, pairs)
}

func objFromPairs(order Ordering, pairs []Pair) *Object {
	obj := NewObject(order)
	for _, p := range pairs {
		obj.Insert(p.Key, p.Value)
	}
	return obj
}

// Ordering returns the ordering chosen at construction.
func (o *Object) Ordering() Ordering { return o.order }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Insert stores v under key. It returns the previous value and true if the
// key already existed.
func (o *Object) Insert(key string, v Value) (Value, bool) {
	v = orUndefined(v)
	if o.m == nil {
		o.m = make(map[string]Value)
	}
	if old, ok := o.m[key]; ok {
		o.m[key] = v
		return old, true
	}
	o.m[key] = v
	if o.order == SortedOrder {
		i, _ := slices.BinarySearchFunc(o.keys, key, compareKeysRFC8785)
		o.keys = slices.Insert(o.keys, i, key)
	} else {
		o.keys = append(o.keys, key)
	}
	return nil, false
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Contains reports whether key is present.
func (o *Object) Contains(key string) bool {
	_, ok := o.m[key]
	return ok
}

// Remove deletes key and returns its value.
func (o *Object) Remove(key string) (Value, bool) {
	v, ok := o.m[key]
	if !ok {
		return nil, false
	}
	delete(o.m, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
	return v, true
}

// Keys returns the keys in iteration order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Values returns the values in key iteration order.
func (o *Object) Values() []Value {
	out := make([]Value, len(o.keys))
	for i, k := range o.keys {
		out[i] = o.m[k]
	}
	return out
}

// All iterates key/value pairs in iteration order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.m[k]) {
				return
			}
		}
	}
}

// SortedKeys returns keys in RFC 8785 order regardless of the Object's
// own ordering.
func (o *Object) SortedKeys() []string {
	keys := slices.Clone(o.keys)
	if o.order != SortedOrder {
		slices.SortFunc(keys, compareKeysRFC8785)
	}
	return keys
}

// Clone returns a deep copy with the same ordering.
func (o *Object) Clone() *Object {
	out := &Object{
		order: o.order,
		keys:  slices.Clone(o.keys),
		m:     make(map[string]Value, len(o.m)),
	}
	for k, v := range o.m {
		out.m[k] = Clone(v)
	}
	return out
}

// Reorder returns a deep copy of v in which every Object, at any depth,
// uses the given ordering.
func Reorder(v Value, order Ordering) Value {
	switch val := v.(type) {
	case *Array:
		out := NewArray(val.Len())
		for _, elem := range val.items {
			out.Push(Reorder(elem, order))
		}
		return out
	case *Object:
		out := NewObject(order)
		for _, k := range val.keys {
			out.Insert(k, Reorder(val.m[k], order))
		}
		return out
	}
	return Clone(v)
}

func (o *Object) equal(b *Object) bool {
	if o == nil || b == nil {
		return o == b
	}
	if len(o.m) != len(b.m) {
		return false
	}
	for k, v := range o.m {
		bv, ok := b.m[k]
		if !ok || !Equal(v, bv) {
			return false
		}
	}
	return true
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
// Go's default string comparison uses UTF-8 which produces DIFFERENT order
// for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// If all compared units are equal, shorter string comes first
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
