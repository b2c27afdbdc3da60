package bridge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/valu/internal/value"
)

// command is a hand-written enumeration over the four variant shapes.
type command struct {
	kind string
	text string
	x, y int
	a    int
	b    string
}

var commandVariants = []Variant{
	Unit("Quit"),
	Newtype("Write"),
	Tuple("Tuple"),
	Struct("Struct"),
}

func (c command) MarshalValue(e *Encoder) (value.Value, error) {
	switch c.kind {
	case "Quit":
		return e.UnitVariant("Quit"), nil
	case "Write":
		return e.NewtypeVariant("Write", c.text)
	case "Tuple":
		return e.TupleVariant("Tuple", c.x, c.y)
	case "Struct":
		return e.StructVariant("Struct", F("a", c.a), F("b", c.b))
	}
	return nil, fmt.Errorf("unknown command %q", c.kind)
}

func (c *command) UnmarshalValue(d *Decoder, v value.Value) error {
	acc, err := d.Variant(v, commandVariants...)
	if err != nil {
		return err
	}
	*c = command{kind: acc.Name()}
	switch acc.Name() {
	case "Write":
		return acc.Newtype(&c.text)
	case "Tuple":
		return acc.Tuple(&c.x, &c.y)
	case "Struct":
		var body struct {
			A int    `value:"a"`
			B string `value:"b"`
		}
		if err := acc.Struct(&body); err != nil {
			return err
		}
		c.a, c.b = body.A, body.B
	}
	return nil
}

func TestVariantEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   command
		want value.Value
	}{
		{
			name: "unit",
			in:   command{kind: "Quit"},
			want: value.String("Quit"),
		},
		{
			name: "newtype",
			in:   command{kind: "Write", text: "hello"},
			want: value.Obj(value.P("Write", value.String("hello"))),
		},
		{
			name: "tuple",
			in:   command{kind: "Tuple", x: 1, y: 2},
			want: value.Obj(value.P("Tuple", value.Arr(value.IntNumber(1), value.IntNumber(2)))),
		},
		{
			name: "struct",
			in:   command{kind: "Struct", a: 1, b: "x"},
			want: value.Obj(value.P("Struct", value.Obj(
				value.P("a", value.IntNumber(1)),
				value.P("b", value.String("x")),
			))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToValue(tt.in)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %#v", got)

			back, err := Decode[command](got)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestStructVariantFieldOrder(t *testing.T) {
	v, err := ToValue(command{kind: "Struct", a: 1, b: "x"})
	require.NoError(t, err)
	payload, _ := v.(*value.Object).Get("Struct")
	assert.Equal(t, []string{"a", "b"}, payload.(*value.Object).Keys())
}

func TestVariantInsideCollections(t *testing.T) {
	in := []command{{kind: "Quit"}, {kind: "Tuple", x: 3, y: 4}}
	v, err := ToValue(in)
	require.NoError(t, err)

	out, err := Decode[[]command](v)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// signal implements both halves of the protocol on the pointer receiver.
type signal struct {
	name string
	code int
}

func (s *signal) MarshalValue(e *Encoder) (value.Value, error) {
	if s.name == "Stop" {
		return e.UnitVariant("Stop"), nil
	}
	return e.NewtypeVariant("Kill", s.code)
}

func (s *signal) UnmarshalValue(d *Decoder, v value.Value) error {
	acc, err := d.Variant(v, Unit("Stop"), Newtype("Kill"))
	if err != nil {
		return err
	}
	*s = signal{name: acc.Name()}
	if acc.Name() == "Kill" {
		return acc.Newtype(&s.code)
	}
	return nil
}

func TestPointerReceiverMarshalerByValue(t *testing.T) {
	stop := value.String("Stop")
	kill := value.Obj(value.P("Kill", value.IntNumber(9)))

	v, err := ToValue(signal{name: "Stop"})
	require.NoError(t, err)
	assert.True(t, value.Equal(stop, v), "got %#v", v)

	back, err := Decode[signal](v)
	require.NoError(t, err)
	assert.Equal(t, signal{name: "Stop"}, back)

	byName := map[string]signal{"a": {name: "Stop"}, "b": {name: "Kill", code: 9}}
	v, err = ToValue(byName)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Obj(value.P("a", stop), value.P("b", kill)), v), "got %#v", v)

	decoded, err := Decode[map[string]signal](v)
	require.NoError(t, err)
	assert.Equal(t, byName, decoded)

	v, err = ToValue([]any{signal{name: "Kill", code: 9}, 1})
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Arr(kill, value.IntNumber(1)), v), "got %#v", v)
}

func TestUnitVariantAcceptsNullPayload(t *testing.T) {
	got, err := Decode[command](value.Obj(value.P("Quit", value.Null{})))
	require.NoError(t, err)
	assert.Equal(t, command{kind: "Quit"}, got)
}

func TestVariantDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    value.Value
		check func(error) bool
	}{
		{
			name:  "array-style enum",
			in:    value.Arr(value.String("Tuple"), value.Arr(value.IntNumber(1), value.IntNumber(2))),
			check: value.IsInvalidVariant,
		},
		{
			name:  "unknown bare name",
			in:    value.String("Jump"),
			check: value.IsInvalidVariant,
		},
		{
			name:  "unknown object key",
			in:    value.Obj(value.P("Jump", value.Null{})),
			check: value.IsInvalidVariant,
		},
		{
			name:  "two keys",
			in:    value.Obj(value.P("Quit", value.Null{}), value.P("Write", value.String("x"))),
			check: value.IsInvalidVariant,
		},
		{
			name:  "bare name for tuple variant",
			in:    value.String("Tuple"),
			check: value.IsTypeMismatch,
		},
		{
			name:  "unit with payload",
			in:    value.Obj(value.P("Quit", value.IntNumber(1))),
			check: value.IsTypeMismatch,
		},
		{
			name:  "tuple payload not array",
			in:    value.Obj(value.P("Tuple", value.IntNumber(1))),
			check: value.IsTypeMismatch,
		},
		{
			name:  "tuple too short",
			in:    value.Obj(value.P("Tuple", value.Arr(value.IntNumber(1)))),
			check: value.IsMissingField,
		},
		{
			name:  "tuple too long",
			in:    value.Obj(value.P("Tuple", value.Arr(value.IntNumber(1), value.IntNumber(2), value.IntNumber(3)))),
			check: value.IsTypeMismatch,
		},
		{
			name:  "struct missing field",
			in:    value.Obj(value.P("Struct", value.Obj(value.P("a", value.IntNumber(1))))),
			check: value.IsMissingField,
		},
		{
			name:  "struct payload not object",
			in:    value.Obj(value.P("Struct", value.Arr())),
			check: value.IsTypeMismatch,
		},
		{
			name:  "number",
			in:    value.IntNumber(7),
			check: value.IsTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[command](tt.in)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

func TestVariantAccessKindGuards(t *testing.T) {
	d := NewDecoder()
	acc, err := d.Variant(value.Obj(value.P("Write", value.String("x"))), commandVariants...)
	require.NoError(t, err)
	assert.Equal(t, "Write", acc.Name())
	assert.Equal(t, NewtypeVariant, acc.Kind())

	var a, b int
	err = acc.Tuple(&a, &b)
	require.Error(t, err)
	assert.True(t, value.IsTypeMismatch(err))
}

func TestVariantKindString(t *testing.T) {
	assert.Equal(t, "unit", UnitVariant.String())
	assert.Equal(t, "struct", StructVariant.String())
	assert.Equal(t, "variant(9)", VariantKind(9).String())
}
