package value

import "iter"

// Array is an ordered sequence of Values. Every operation preserves
// insertion order.
type Array struct {
	items []Value
}

// NewArray creates an empty Array with room for capacity elements.
func NewArray(capacity int) *Array {
	return &Array{items: make([]Value, 0, capacity)}
}

// Arr creates an Array holding vals in order.
// Example: Arr(IntNumber(1), String("two"), Null{})
func Arr(vals ...Value) *Array {
	a := NewArray(len(vals))
	for _, v := range vals {
		a.Push(v)
	}
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Push appends v. A nil Value is stored as Undefined.
func (a *Array) Push(v Value) {
	a.items = append(a.items, orUndefined(v))
}

// Pop removes and returns the last element.
func (a *Array) Pop() (Value, bool) {
	if len(a.items) == 0 {
		return nil, false
	}
	last := a.items[len(a.items)-1]
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
	return last, true
}

// Get returns the element at i.
func (a *Array) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Set replaces the element at i. It reports false if i is out of bounds.
func (a *Array) Set(i int, v Value) bool {
	if i < 0 || i >= len(a.items) {
		return false
	}
	a.items[i] = orUndefined(v)
	return true
}

// Insert places v at i, shifting later elements. i == Len() appends.
func (a *Array) Insert(i int, v Value) bool {
	if i < 0 || i > len(a.items) {
		return false
	}
	a.items = append(a.items, nil)
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = orUndefined(v)
	return true
}

// Remove deletes and returns the element at i, shifting later elements.
func (a *Array) Remove(i int) (Value, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	v := a.items[i]
	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
	return v, true
}

// Values returns a shallow copy of the elements.
func (a *Array) Values() []Value {
	out := make([]Value, len(a.items))
	copy(out, a.items)
	return out
}

// All iterates index/element pairs in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	out := NewArray(len(a.items))
	for _, v := range a.items {
		out.items = append(out.items, Clone(v))
	}
	return out
}

func (a *Array) equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if !Equal(a.items[i], b.items[i]) {
			return false
		}
	}
	return true
}

func orUndefined(v Value) Value {
	if v == nil {
		return Undefined{}
	}
	return v
}
