// Package daterange implements the date-range values used by filtered tables.
//
// A range is either dynamic, i.e. one of a fixed set of relative tags such as "now-1h" that is
// re-evaluated whenever it is read, or static, i.e. an explicit inclusive from/to pair. The same
// shape exists in two instantiations: DateRange carries calendar instants and is what callers
// work with, Serialized carries epoch seconds and is what gets persisted or sent over the wire.
package daterange

import (
	"fmt"
	"time"
)

// Tag is a symbolic, relative date range.
type Tag string

const (
	LastHour    Tag = "now-1h"
	Last2Hours  Tag = "now-2h"
	Last4Hours  Tag = "now-4h"
	Last8Hours  Tag = "now-8h"
	Last12Hours Tag = "now-12h"
	Last24Hours Tag = "now-24h"
	Last2Days   Tag = "now-2d"
	Last5Days   Tag = "now-5d"
	Last7Days   Tag = "now-7d"
	Last14Days  Tag = "now-14d"
	LastMonth   Tag = "now-1M"
	noTag       Tag = ""
)

// rangeSeparator joins the bounds of a static range in its textual form, e.g. "2023-01-01T00:00:00Z..2023-01-02T00:00:00Z".
const rangeSeparator = ".."

// Tags lists every tag accepted by ParseTag, shortest window first.
var Tags = []Tag{
	LastHour, Last2Hours, Last4Hours, Last8Hours, Last12Hours, Last24Hours,
	Last2Days, Last5Days, Last7Days, Last14Days, LastMonth,
}

// Seconds is an instant expressed as whole seconds since the Unix epoch.
type Seconds int64

// Time converts s to a UTC calendar instant.
func (s Seconds) Time() time.Time {
	return time.Unix(int64(s), 0).UTC()
}

// SecondsOf truncates t to whole seconds since the Unix epoch.
func SecondsOf(t time.Time) Seconds {
	return Seconds(t.Unix())
}

// Instant is the set of types a Range can be bounded by.
type Instant interface {
	time.Time | Seconds
}

// Range is a tagged variant: exactly one of tag or the from/to pair is meaningful.
// The zero value is a static range with zero bounds.
type Range[T Instant] struct {
	tag  Tag
	from T
	to   T
}

type (
	DateRange  = Range[time.Time]
	Serialized = Range[Seconds]
)

// Dynamic returns a range that resolves against the current time whenever it is read.
func Dynamic[T Instant](tag Tag) Range[T] {
	return Range[T]{tag: tag}
}

// Static returns a range with explicit bounds.
func Static[T Instant](from, to T) Range[T] {
	return Range[T]{from: from, to: to}
}

func (r Range[T]) IsDynamic() bool {
	return r.tag != noTag
}

// Tag returns the symbolic tag of a dynamic range, or "" for a static one.
func (r Range[T]) Tag() Tag {
	return r.tag
}

// Bounds returns the from/to pair of a static range. Both values are zero for a dynamic range.
func (r Range[T]) Bounds() (from T, to T) {
	return r.from, r.to
}

// Equal compares two ranges; calendar instants are compared with time.Time.Equal.
func (r Range[T]) Equal(other Range[T]) bool {
	if r.tag != other.tag {
		return false
	}
	if r.IsDynamic() {
		return true
	}
	return sameInstant(r.from, other.from) && sameInstant(r.to, other.to)
}

func (r Range[T]) String() string {
	if r.IsDynamic() {
		return string(r.tag)
	}
	return fmt.Sprintf("%s%s%s", formatInstant(r.from), rangeSeparator, formatInstant(r.to))
}

// Parse converts a serialized range into calendar instants. Tags pass through unchanged.
func Parse(r Serialized) DateRange {
	if r.IsDynamic() {
		return Dynamic[time.Time](r.tag)
	}
	return Static(r.from.Time(), r.to.Time())
}

// Stringify converts a range into its serialized form, truncating bounds to whole seconds.
// Tags pass through unchanged.
func Stringify(r DateRange) Serialized {
	if r.IsDynamic() {
		return Dynamic[Seconds](r.tag)
	}
	return Static(SecondsOf(r.from), SecondsOf(r.to))
}

func toSeconds[T Instant](v T) Seconds {
	switch x := any(v).(type) {
	case time.Time:
		return SecondsOf(x)
	case Seconds:
		return x
	}
	return 0
}

func fromSeconds[T Instant](s Seconds) T {
	var out T
	switch p := any(&out).(type) {
	case *time.Time:
		*p = s.Time()
	case *Seconds:
		*p = s
	}
	return out
}

func sameInstant[T Instant](a, b T) bool {
	if x, ok := any(a).(time.Time); ok {
		return x.Equal(any(b).(time.Time))
	}
	return any(a) == any(b)
}

func formatInstant[T Instant](v T) string {
	if x, ok := any(v).(time.Time); ok {
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(int64(any(v).(Seconds)))
}
