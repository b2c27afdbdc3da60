package bridge

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/valu/internal/value"
)

type address struct {
	Street string `value:"street"`
	Zip    string `value:"zip,omitempty"`
}

type person struct {
	Name     string            `value:"name"`
	Age      uint8             `value:"age"`
	Tags     []string          `value:"tags"`
	Scores   map[string]int    `value:"scores"`
	Home     *address          `value:"home"`
	Secret   string            `value:"-"`
	Nickname string            `value:"nickname,optional"`
	Extra    value.Value       `value:"extra"`
	Labels   map[string]string `value:"labels,omitempty"`
}

func TestToValuePrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Null{}},
		{"bool", true, value.Bool(true)},
		{"int8", int8(-3), value.IntNumber(-3)},
		{"uint64 max", uint64(math.MaxUint64), value.UintNumber(uint64(math.MaxUint64))},
		{"float32", float32(1.5), value.FloatNumber(1.5)},
		{"string", "hi", value.String("hi")},
		{"nil pointer", (*int)(nil), value.Null{}},
		{"nil slice", []int(nil), value.Null{}},
		{"empty slice", []int{}, value.Arr()},
		{"nil map", map[string]int(nil), value.Null{}},
		{"array", [2]string{"a", "b"}, value.Arr(value.String("a"), value.String("b"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToValue(tt.in)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestToValueStructFieldOrder(t *testing.T) {
	p := person{
		Name:   "Ada",
		Age:    36,
		Tags:   []string{"math"},
		Scores: map[string]int{"z": 1, "a": 2},
		Home:   &address{Street: "Main"},
		Secret: "hidden",
	}

	v, err := ToValue(p)
	require.NoError(t, err)
	obj, ok := v.(*value.Object)
	require.True(t, ok)

	assert.Equal(t, value.InsertionOrder, obj.Ordering())
	assert.Equal(t, []string{"name", "age", "tags", "scores", "home", "nickname", "extra"}, obj.Keys())

	scores, _ := obj.Get("scores")
	assert.Equal(t, value.SortedOrder, scores.(*value.Object).Ordering(), "Go maps encode sorted")
	assert.Equal(t, []string{"a", "z"}, scores.(*value.Object).Keys())

	home, _ := obj.Get("home")
	assert.Equal(t, []string{"street"}, home.(*value.Object).Keys(), "omitempty drops zip")

	extra, _ := obj.Get("extra")
	assert.Equal(t, value.Undefined{}, extra, "nil Value field encodes as undefined")
}

func TestToValueWithSortedOrdering(t *testing.T) {
	v, err := ToValue(address{Street: "Main", Zip: "12345"}, WithOrdering(value.SortedOrder))
	require.NoError(t, err)
	assert.Equal(t, []string{"street", "zip"}, v.(*value.Object).Keys())

	type reversed struct {
		Z int
		A int
	}
	v, err = ToValue(reversed{}, WithOrdering(value.SortedOrder))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z"}, v.(*value.Object).Keys())
}

func TestToValueEmbeddedStructFlattens(t *testing.T) {
	type Base struct {
		ID   int
		Kind string
	}
	type derived struct {
		Base
		Kind string
	}

	v, err := ToValue(derived{Base: Base{ID: 7, Kind: "inner"}, Kind: "outer"})
	require.NoError(t, err)
	obj := v.(*value.Object)
	assert.Equal(t, []string{"Kind", "ID"}, obj.Keys())
	kind, _ := obj.Get("Kind")
	assert.Equal(t, value.String("outer"), kind)
}

func TestToValueRichTypes(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	ts := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	huge, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)

	type record struct {
		ID   uuid.UUID
		At   time.Time
		Big  *big.Int
		Keys map[uuid.UUID]bool
	}

	v, err := ToValue(record{ID: id, At: ts, Big: huge, Keys: map[uuid.UUID]bool{id: true}})
	require.NoError(t, err)
	obj := v.(*value.Object)

	got, _ := obj.Get("ID")
	assert.Equal(t, value.String(id.String()), got)

	at, _ := obj.Get("At")
	dt, ok := at.(value.DateTime)
	require.True(t, ok)
	assert.Equal(t, value.ZonedKind, dt.CalendarKind())
	assert.True(t, ts.Equal(dt.Time()))

	b, _ := obj.Get("Big")
	n := b.(value.Number)
	i128, ok := n.Int128()
	require.True(t, ok)
	assert.Equal(t, 0, huge.Cmp(i128))

	keys, _ := obj.Get("Keys")
	assert.True(t, keys.(*value.Object).Contains(id.String()))
}

func TestToValueUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"byte slice", []byte("raw")},
		{"byte array", [4]byte{1, 2, 3, 4}},
		{"nested bytes", struct{ Data []byte }{Data: []byte{1}}},
		{"chan", make(chan int)},
		{"func", func() {}},
		{"complex", complex(1, 2)},
		{"bool map key", map[bool]int{true: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToValue(tt.in)
			require.Error(t, err)
			assert.True(t, value.IsUnsupportedType(err), "got %v", err)
		})
	}
}

func TestToValueBigIntOutOfRange(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 130)
	_, err := ToValue(tooBig)
	require.Error(t, err)
	assert.True(t, value.IsOutOfRange(err))
}

func TestToValueErrorCarriesPath(t *testing.T) {
	type holder struct {
		Items []any `value:"items"`
	}
	_, err := ToValue(holder{Items: []any{1, []byte{2}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "items": array[1]:`)
	assert.True(t, value.IsUnsupportedType(err))
}

func TestToValueClonesValues(t *testing.T) {
	inner := value.Arr(value.IntNumber(1))
	v, err := ToValue(struct{ V *value.Array }{V: inner})
	require.NoError(t, err)

	inner.Push(value.IntNumber(2))
	got, _ := v.(*value.Object).Get("V")
	assert.Equal(t, 1, got.(*value.Array).Len())
}
