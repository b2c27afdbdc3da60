package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		y     int
		m     time.Month
		d     int
		valid bool
	}{
		{"ordinary", 2024, time.June, 15, true},
		{"leap day", 2024, time.February, 29, true},
		{"not leap", 2023, time.February, 29, false},
		{"month 13", 2024, 13, 1, false},
		{"month 0", 2024, 0, 1, false},
		{"day 0", 2024, time.May, 0, false},
		{"day 32", 2024, time.May, 32, false},
		{"year 0", 0, time.May, 1, false},
		{"year 10000", 10000, time.May, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NewDate(tt.y, tt.m, tt.d)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestNewTimeRejectsInvalid(t *testing.T) {
	_, ok := NewTime(23, 59, 59, 999999999)
	assert.True(t, ok)
	_, ok = NewTime(24, 0, 0, 0)
	assert.False(t, ok)
	_, ok = NewTime(0, 60, 0, 0)
	assert.False(t, ok)
	_, ok = NewTime(0, 0, 0, int(time.Second))
	assert.False(t, ok)
}

func TestDateTimeAccessorsByKind(t *testing.T) {
	date, _ := NewDate(2024, time.March, 9)
	y, ok := date.Year()
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	_, ok = date.Hour()
	assert.False(t, ok)
	_, ok = date.Offset()
	assert.False(t, ok)

	tod, _ := NewTime(13, 45, 30, 0)
	h, ok := tod.Hour()
	require.True(t, ok)
	assert.Equal(t, 13, h)
	_, ok = tod.Year()
	assert.False(t, ok)

	zone := time.FixedZone("BRT", -3*3600)
	zoned, ok := NewZoned(time.Date(2024, 1, 2, 3, 4, 5, 6, zone))
	require.True(t, ok)
	off, ok := zoned.Offset()
	require.True(t, ok)
	assert.Equal(t, -3*3600, off)
	m, _ := zoned.Month()
	assert.Equal(t, 1, m)
	ns, _ := zoned.Nanosecond()
	assert.Equal(t, 6, ns)

	dp, ok := zoned.DatePart()
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", dp.String())
	tp, ok := zoned.TimePart()
	require.True(t, ok)
	assert.Equal(t, "03:04:05.000000006", tp.String())
}

func TestDateTimeAddReturnsNewValue(t *testing.T) {
	date, _ := NewDate(2024, time.January, 31)

	next, ok := date.AddDays(1)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", next.String())
	assert.Equal(t, "2024-01-31", date.String(), "receiver unchanged")

	feb, ok := date.AddMonths(1)
	require.True(t, ok)
	assert.Equal(t, "2024-02-29", feb.String(), "clamped to month end")

	back, ok := date.AddMonths(-13)
	require.True(t, ok)
	assert.Equal(t, "2022-12-31", back.String())

	yr, ok := feb.AddYears(1)
	require.True(t, ok)
	assert.Equal(t, "2025-02-28", yr.String())

	plus, ok := date.Add(36 * time.Hour)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", plus.String(), "dates move by whole days")
}

func TestDateTimeAddOutOfRange(t *testing.T) {
	date, _ := NewDate(9999, time.December, 31)
	_, ok := date.AddDays(1)
	assert.False(t, ok)

	first, _ := NewDate(1, time.January, 1)
	_, ok = first.AddMonths(-1)
	assert.False(t, ok)

	tod, _ := NewTime(1, 0, 0, 0)
	_, ok = tod.AddDays(1)
	assert.False(t, ok, "time of day has no calendar")
}

func TestTimeOfDayWraps(t *testing.T) {
	tod, _ := NewTime(23, 30, 0, 0)

	later, ok := tod.Add(time.Hour)
	require.True(t, ok)
	assert.Equal(t, "00:30:00", later.String())

	earlier, ok := tod.Add(-24*time.Hour - time.Minute)
	require.True(t, ok)
	assert.Equal(t, "23:29:00", earlier.String())
}

func TestDateTimeSub(t *testing.T) {
	a, _ := NewTime(10, 0, 0, 0)
	b, _ := NewTime(8, 30, 0, 0)
	d, ok := a.Sub(b)
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)

	date, _ := NewDate(2024, 1, 1)
	_, ok = a.Sub(date)
	assert.False(t, ok)
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		kind DateTimeKind
		out  string
	}{
		{"2024-06-01", DateKind, "2024-06-01"},
		{"08:15:00", TimeKind, "08:15:00"},
		{"08:15:00.25", TimeKind, "08:15:00.25"},
		{"2024-06-01T08:15:00Z", ZonedKind, "2024-06-01T08:15:00Z"},
		{"2024-06-01T08:15:00.5+02:00", ZonedKind, "2024-06-01T08:15:00.5+02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDateTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.CalendarKind())
			assert.Equal(t, tt.out, d.String())
		})
	}

	_, err := ParseDateTime("2024-13-01")
	assert.True(t, IsParseError(err))
}

func TestDateTimeEqual(t *testing.T) {
	utc, _ := NewZoned(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	plusOne, _ := NewZoned(time.Date(2024, 1, 1, 13, 0, 0, 0, time.FixedZone("", 3600)))
	assert.True(t, utc.Equal(plusOne), "same instant")

	date, _ := NewDate(2024, 1, 1)
	assert.False(t, Equal(date, utc))
}
