package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Signed is satisfied by every native signed integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is satisfied by every native unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is satisfied by every native floating-point type.
type Float interface {
	~float32 | ~float64
}

type numSlot uint8

const (
	slotInt   numSlot = iota // fits int64
	slotUint                 // above MaxInt64, fits uint64
	slotBig                  // outside both 64-bit forms, inside 128-bit range
	slotFloat                // float64
)

var (
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Number holds any integer up to 128 bits or a float64 in one canonical slot.
//
// The slot is chosen by magnitude, not by the native type the value came
// from: Number from uint8(5) and Number from int64(5) are identical.
// The zero Number is integer 0.
type Number struct {
	slot numSlot
	i    int64
	u    uint64
	f    float64
	b    *big.Int // slotBig only; never mutated after construction
}

// IntNumber creates a Number from any signed integer.
func IntNumber[T Signed](v T) Number {
	return Number{slot: slotInt, i: int64(v)}
}

// UintNumber creates a Number from any unsigned integer.
func UintNumber[T Unsigned](v T) Number {
	u := uint64(v)
	if u <= math.MaxInt64 {
		return Number{slot: slotInt, i: int64(u)}
	}
	return Number{slot: slotUint, u: u}
}

// FloatNumber creates a Number from any float.
func FloatNumber[T Float](v T) Number {
	return Number{slot: slotFloat, f: float64(v)}
}

// BigNumber creates a Number from an arbitrary-precision integer.
// Values outside [-2^127, 2^128-1] fail with OUT_OF_RANGE.
func BigNumber(b *big.Int) (Number, error) {
	if b == nil {
		return Number{}, NewUnsupportedType("nil *big.Int")
	}
	switch {
	case b.IsInt64():
		return Number{slot: slotInt, i: b.Int64()}, nil
	case b.IsUint64():
		return Number{slot: slotUint, u: b.Uint64()}, nil
	case b.Cmp(minInt128) < 0 || b.Cmp(maxUint128) > 0:
		return Number{}, NewOutOfRange("integer %s exceeds 128 bits", b.String())
	default:
		return Number{slot: slotBig, b: new(big.Int).Set(b)}, nil
	}
}

// ParseNumber parses a decimal integer or floating-point literal.
//
// Width preference: int64, then uint64, then float64, then 128-bit.
// Literals without '.', 'e' or 'E' are integers and never become floats;
// they try int64, uint64 and finally the 128-bit slot. Literals with a
// fraction or exponent are float64. Anything that no slot can hold fails
// with OUT_OF_RANGE; malformed text fails with PARSE_ERROR.
func ParseNumber(s string) (Number, error) {
	isInt, err := scanNumber(s)
	if err != nil {
		return Number{}, err
	}

	if !isInt {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if math.IsInf(f, 0) {
				return Number{}, NewOutOfRange("float literal %s overflows float64", s)
			}
			return Number{}, NewParseError(0, "invalid float literal %q", s)
		}
		return Number{slot: slotFloat, f: f}, nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number{slot: slotInt, i: i}, nil
	}
	if u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64); err == nil {
		return UintNumber(u), nil
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Number{}, NewParseError(0, "invalid integer literal %q", s)
	}
	return BigNumber(b)
}

// scanNumber validates numeric literal syntax:
// [+-]? digits* ('.' digits*)? ([eE] [+-]? digits+)? with at least one
// mantissa digit. It reports whether the literal is integer-shaped.
func scanNumber(s string) (isInt bool, err error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	isInt = true
	if i < len(s) && s[i] == '.' {
		isInt = false
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false, NewParseError(i, "expected digit in number literal %q", s)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		isInt = false
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false, NewParseError(i, "expected exponent digits in number literal %q", s)
		}
	}
	if i != len(s) {
		return false, NewParseError(i, "unexpected character %q in number literal", s[i])
	}
	return isInt, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (n Number) clone() Number {
	if n.slot == slotBig {
		n.b = new(big.Int).Set(n.b)
	}
	return n
}

// IsInteger reports whether the canonical slot is an integer slot.
func (n Number) IsInteger() bool { return n.slot != slotFloat }

// IsFloat reports whether the canonical slot is float64.
func (n Number) IsFloat() bool { return n.slot == slotFloat }

// IsPositive reports whether n > 0.
func (n Number) IsPositive() bool { return n.sign() > 0 }

// IsNegative reports whether n < 0.
func (n Number) IsNegative() bool { return n.sign() < 0 }

// IsZero reports whether n == 0.
func (n Number) IsZero() bool { return n.sign() == 0 && !n.isNaN() }

func (n Number) isNaN() bool { return n.slot == slotFloat && math.IsNaN(n.f) }

func (n Number) sign() int {
	switch n.slot {
	case slotInt:
		switch {
		case n.i > 0:
			return 1
		case n.i < 0:
			return -1
		}
		return 0
	case slotUint:
		return 1
	case slotBig:
		return n.b.Sign()
	default:
		switch {
		case n.f > 0:
			return 1
		case n.f < 0:
			return -1
		}
		return 0
	}
}

// Int64 returns n as int64 if it is an integer in range.
func (n Number) Int64() (int64, bool) {
	if n.slot != slotInt {
		return 0, false
	}
	return n.i, true
}

func (n Number) intIn(lo, hi int64) (int64, bool) {
	v, ok := n.Int64()
	if !ok || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// Int8 returns n as int8 if it is an integer in range.
func (n Number) Int8() (int8, bool) {
	v, ok := n.intIn(math.MinInt8, math.MaxInt8)
	return int8(v), ok
}

// Int16 returns n as int16 if it is an integer in range.
func (n Number) Int16() (int16, bool) {
	v, ok := n.intIn(math.MinInt16, math.MaxInt16)
	return int16(v), ok
}

// Int32 returns n as int32 if it is an integer in range.
func (n Number) Int32() (int32, bool) {
	v, ok := n.intIn(math.MinInt32, math.MaxInt32)
	return int32(v), ok
}

// Int returns n as int if it is an integer in range.
func (n Number) Int() (int, bool) {
	v, ok := n.intIn(math.MinInt, math.MaxInt)
	return int(v), ok
}

// Uint64 returns n as uint64 if it is a non-negative integer in range.
func (n Number) Uint64() (uint64, bool) {
	switch n.slot {
	case slotInt:
		if n.i < 0 {
			return 0, false
		}
		return uint64(n.i), true
	case slotUint:
		return n.u, true
	}
	return 0, false
}

func (n Number) uintIn(hi uint64) (uint64, bool) {
	v, ok := n.Uint64()
	if !ok || v > hi {
		return 0, false
	}
	return v, true
}

// Uint8 returns n as uint8 if it is an integer in range.
func (n Number) Uint8() (uint8, bool) {
	v, ok := n.uintIn(math.MaxUint8)
	return uint8(v), ok
}

// Uint16 returns n as uint16 if it is an integer in range.
func (n Number) Uint16() (uint16, bool) {
	v, ok := n.uintIn(math.MaxUint16)
	return uint16(v), ok
}

// Uint32 returns n as uint32 if it is an integer in range.
func (n Number) Uint32() (uint32, bool) {
	v, ok := n.uintIn(math.MaxUint32)
	return uint32(v), ok
}

// Uint returns n as uint if it is an integer in range.
func (n Number) Uint() (uint, bool) {
	v, ok := n.uintIn(math.MaxUint)
	return uint(v), ok
}

// Int128 returns n as a new *big.Int if it is an integer within the signed
// 128-bit range.
func (n Number) Int128() (*big.Int, bool) {
	b, ok := n.bigInt()
	if !ok || b.Cmp(minInt128) < 0 || b.Cmp(maxInt128) > 0 {
		return nil, false
	}
	return b, true
}

// Uint128 returns n as a new *big.Int if it is an integer within the unsigned
// 128-bit range.
func (n Number) Uint128() (*big.Int, bool) {
	b, ok := n.bigInt()
	if !ok || b.Sign() < 0 {
		return nil, false
	}
	return b, true
}

func (n Number) bigInt() (*big.Int, bool) {
	switch n.slot {
	case slotInt:
		return big.NewInt(n.i), true
	case slotUint:
		return new(big.Int).SetUint64(n.u), true
	case slotBig:
		return new(big.Int).Set(n.b), true
	}
	return nil, false
}

// Float64 returns n as float64. Integers are widened, so the ok result is
// always true; integers beyond 2^53 round to the nearest float.
func (n Number) Float64() (float64, bool) {
	switch n.slot {
	case slotInt:
		return float64(n.i), true
	case slotUint:
		return float64(n.u), true
	case slotBig:
		f, _ := new(big.Float).SetInt(n.b).Float64()
		return f, true
	}
	return n.f, true
}

// Float32 returns n as float32 unless its finite magnitude exceeds float32.
func (n Number) Float32() (float32, bool) {
	f, _ := n.Float64()
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}

// TruncInt64 returns n as int64, truncating any fractional part of a float.
// It fails for non-finite floats and magnitudes outside int64.
func (n Number) TruncInt64() (int64, bool) {
	if n.slot != slotFloat {
		return n.Int64()
	}
	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return 0, false
	}
	t := math.Trunc(n.f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// Decimal returns the exact decimal reading of n.
// Floats use their shortest round-tripping decimal form.
func (n Number) Decimal() *apd.Decimal {
	switch n.slot {
	case slotInt:
		return apd.New(n.i, 0)
	case slotUint:
		d, _, _ := apd.NewFromString(strconv.FormatUint(n.u, 10))
		return d
	case slotBig:
		d, _, _ := apd.NewFromString(n.b.String())
		return d
	}
	switch {
	case math.IsNaN(n.f):
		return &apd.Decimal{Form: apd.NaN}
	case math.IsInf(n.f, 0):
		return &apd.Decimal{Form: apd.Infinite, Negative: n.f < 0}
	}
	d, err := new(apd.Decimal).SetFloat64(n.f)
	if err != nil {
		return apd.New(0, 0)
	}
	return d
}

// Cmp compares canonical magnitudes: -1 if n < o, 0 if equal, +1 if n > o.
// NaN sorts before every other number and equals itself.
func (n Number) Cmp(o Number) int {
	switch {
	case n.isNaN() && o.isNaN():
		return 0
	case n.isNaN():
		return -1
	case o.isNaN():
		return 1
	}
	if n.slot == slotInt && o.slot == slotInt {
		return cmpOrdered(n.i, o.i)
	}
	if n.slot == slotFloat && o.slot == slotFloat {
		return cmpOrdered(n.f, o.f)
	}
	if n.slot == slotFloat && math.IsInf(n.f, 0) {
		if n.f > 0 {
			return 1
		}
		return -1
	}
	if o.slot == slotFloat && math.IsInf(o.f, 0) {
		if o.f > 0 {
			return -1
		}
		return 1
	}
	return n.Decimal().Cmp(o.Decimal())
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports whether n and o have the same canonical magnitude.
func (n Number) Equal(o Number) bool { return n.Cmp(o) == 0 }

// String returns the shortest text form of n. Floats always carry a '.' or
// an exponent so that the text parses back as a float.
func (n Number) String() string {
	switch n.slot {
	case slotInt:
		return strconv.FormatInt(n.i, 10)
	case slotUint:
		return strconv.FormatUint(n.u, 10)
	case slotBig:
		return n.b.String()
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'f' && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
