package value

import "time"

// DateTimeKind says which calendar shape a DateTime holds.
type DateTimeKind uint8

const (
	// DateKind is a calendar date without time of day.
	DateKind DateTimeKind = iota
	// TimeKind is a time of day without date or zone.
	TimeKind
	// ZonedKind is an instant with a zone or fixed offset.
	ZonedKind
)

func (k DateTimeKind) String() string {
	switch k {
	case DateKind:
		return "date"
	case TimeKind:
		return "time"
	default:
		return "zoned"
	}
}

const (
	minYear = 1
	maxYear = 9999

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05.999999999"
	day        = 24 * time.Hour
)

// DateTime is exactly one of a date, a time of day, or a zoned instant.
// It is immutable; arithmetic returns a new DateTime and reports false
// rather than producing an invalid value.
type DateTime struct {
	kind DateTimeKind
	t    time.Time
}

// NewDate creates a calendar date. It reports false for components that do
// not name a real date (month 13, February 30) or years outside 1..9999.
func NewDate(year int, month time.Month, dayOfMonth int) (DateTime, bool) {
	if year < minYear || year > maxYear || month < time.January || month > time.December {
		return DateTime{}, false
	}
	if dayOfMonth < 1 || dayOfMonth > daysIn(year, month) {
		return DateTime{}, false
	}
	return DateTime{kind: DateKind, t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}, true
}

// NewTime creates a time of day.
func NewTime(hour, minute, sec, nsec int) (DateTime, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || sec < 0 || sec > 59 || nsec < 0 || nsec >= int(time.Second) {
		return DateTime{}, false
	}
	return DateTime{kind: TimeKind, t: time.Date(minYear, time.January, 1, hour, minute, sec, nsec, time.UTC)}, true
}

// NewZoned creates a zoned instant from t, keeping its location.
func NewZoned(t time.Time) (DateTime, bool) {
	if !inRange(t) {
		return DateTime{}, false
	}
	return DateTime{kind: ZonedKind, t: t}, true
}

// ParseDateTime parses an RFC 3339 timestamp, an ISO date (2006-01-02) or a
// time of day (15:04:05 with optional fraction).
func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		if dt, ok := NewZoned(t); ok {
			return dt, nil
		}
		return DateTime{}, NewOutOfRange("timestamp %q outside years %d..%d", s, minYear, maxYear)
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		if dt, ok := NewDate(t.Year(), t.Month(), t.Day()); ok {
			return dt, nil
		}
		return DateTime{}, NewOutOfRange("date %q outside years %d..%d", s, minYear, maxYear)
	}
	if t, err := time.Parse(timeLayout, s); err == nil {
		dt, _ := NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
		return dt, nil
	}
	return DateTime{}, NewParseError(0, "unrecognized date/time %q", s)
}

// CalendarKind returns which shape d holds.
func (d DateTime) CalendarKind() DateTimeKind { return d.kind }

// Time returns the underlying time.Time. Dates are midnight UTC; times of
// day are on 0001-01-01 UTC.
func (d DateTime) Time() time.Time { return d.t }

func (d DateTime) hasDate() bool { return d.kind != TimeKind }
func (d DateTime) hasTime() bool { return d.kind != DateKind }

// Year returns the year for dates and zoned instants.
func (d DateTime) Year() (int, bool) { return d.t.Year(), d.hasDate() }

// Month returns the month (1-12) for dates and zoned instants.
func (d DateTime) Month() (int, bool) { return int(d.t.Month()), d.hasDate() }

// Day returns the day of month for dates and zoned instants.
func (d DateTime) Day() (int, bool) { return d.t.Day(), d.hasDate() }

// Hour returns the hour for times of day and zoned instants.
func (d DateTime) Hour() (int, bool) { return d.t.Hour(), d.hasTime() }

// Minute returns the minute for times of day and zoned instants.
func (d DateTime) Minute() (int, bool) { return d.t.Minute(), d.hasTime() }

// Second returns the second for times of day and zoned instants.
func (d DateTime) Second() (int, bool) { return d.t.Second(), d.hasTime() }

// Nanosecond returns the nanosecond for times of day and zoned instants.
func (d DateTime) Nanosecond() (int, bool) { return d.t.Nanosecond(), d.hasTime() }

// Offset returns the zone offset in seconds east of UTC for zoned instants.
func (d DateTime) Offset() (int, bool) {
	if d.kind != ZonedKind {
		return 0, false
	}
	_, off := d.t.Zone()
	return off, true
}

// DatePart returns the calendar date of a date or zoned instant.
func (d DateTime) DatePart() (DateTime, bool) {
	if !d.hasDate() {
		return DateTime{}, false
	}
	return NewDate(d.t.Year(), d.t.Month(), d.t.Day())
}

// TimePart returns the time of day of a time or zoned instant.
func (d DateTime) TimePart() (DateTime, bool) {
	if !d.hasTime() {
		return DateTime{}, false
	}
	return NewTime(d.t.Hour(), d.t.Minute(), d.t.Second(), d.t.Nanosecond())
}

// Add returns d shifted by dur. Dates move by whole days (the remainder is
// dropped); times of day wrap around midnight.
func (d DateTime) Add(dur time.Duration) (DateTime, bool) {
	switch d.kind {
	case DateKind:
		return d.AddDays(int(dur / day))
	case TimeKind:
		nanos := (nanosOfDay(d.t) + dur) % day
		if nanos < 0 {
			nanos += day
		}
		return DateTime{kind: TimeKind, t: time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC).Add(nanos)}, true
	default:
		return d.checked(d.t.Add(dur))
	}
}

// AddDays returns d moved by n calendar days. Times of day have no calendar
// and report false.
func (d DateTime) AddDays(n int) (DateTime, bool) {
	if !d.hasDate() {
		return DateTime{}, false
	}
	return d.checked(d.t.AddDate(0, 0, n))
}

// AddMonths returns d moved by n months, clamping the day to the last day
// of the target month (Jan 31 + 1 month = Feb 28/29).
func (d DateTime) AddMonths(n int) (DateTime, bool) {
	if !d.hasDate() {
		return DateTime{}, false
	}
	y, m, dd := d.t.Date()
	total := int(m) - 1 + n
	ny := y + floorDiv(total, 12)
	nm := time.Month(total - floorDiv(total, 12)*12 + 1)
	if ny < minYear || ny > maxYear {
		return DateTime{}, false
	}
	nd := min(dd, daysIn(ny, nm))
	return d.checked(time.Date(ny, nm, nd, d.t.Hour(), d.t.Minute(), d.t.Second(), d.t.Nanosecond(), d.t.Location()))
}

// AddYears returns d moved by n years with the same clamping as AddMonths.
func (d DateTime) AddYears(n int) (DateTime, bool) {
	return d.AddMonths(n * 12)
}

// Sub returns d - o for two values of the same kind.
func (d DateTime) Sub(o DateTime) (time.Duration, bool) {
	if d.kind != o.kind {
		return 0, false
	}
	if d.kind == TimeKind {
		return nanosOfDay(d.t) - nanosOfDay(o.t), true
	}
	return d.t.Sub(o.t), true
}

// Equal reports whether d and o have the same kind and denote the same
// date, time of day or instant.
func (d DateTime) Equal(o DateTime) bool {
	return d.kind == o.kind && d.t.Equal(o.t)
}

// String formats dates as 2006-01-02, times as 15:04:05[.fraction] and
// zoned instants as RFC 3339.
func (d DateTime) String() string {
	switch d.kind {
	case DateKind:
		return d.t.Format(dateLayout)
	case TimeKind:
		return d.t.Format(timeLayout)
	default:
		return d.t.Format(time.RFC3339Nano)
	}
}

func (d DateTime) checked(t time.Time) (DateTime, bool) {
	if !inRange(t) {
		return DateTime{}, false
	}
	return DateTime{kind: d.kind, t: t}, true
}

func inRange(t time.Time) bool {
	return t.Year() >= minYear && t.Year() <= maxYear
}

func nanosOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
