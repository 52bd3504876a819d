package core

import (
	"fmt"
	"strconv"
	"time"
)

const (
	Monthly   View = "monthly"
	Quarterly View = "quarterly"
	Yearly    View = "yearly"
)

// View selects the granularity of period buckets.
type View string

// ParseView maps user input to a View.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case Monthly, Quarterly, Yearly:
		return v, nil
	case "":
		return Monthly, nil
	default:
		return "", NewValidationError("view", fmt.Sprintf("unknown view %q", s))
	}
}

// Quarter returns 1..4 for the calendar quarter of t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// BucketKey derives the sortable bucket key of t for the given view.
// Keys are zero padded so lexical order is chronological order.
func BucketKey(view View, t time.Time) string {
	switch view {
	case Yearly:
		return fmt.Sprintf("%04d", t.Year())
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", t.Year(), Quarter(t))
	default:
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	}
}

// BucketLabel renders a bucket key in its short chart form:
// "Jan '24", "Q1 '24" or "2024".
func BucketLabel(view View, key string) string {
	if len(key) < 4 {
		return key
	}
	year := key[:4]
	switch view {
	case Yearly:
		return year
	case Quarterly:
		if len(key) < 7 {
			return key
		}
		return fmt.Sprintf("%s '%s", key[5:], year[2:])
	default:
		if len(key) < 7 {
			return key
		}
		m, err := strconv.Atoi(key[5:7])
		if err != nil || m < 1 || m > 12 {
			return key
		}
		return fmt.Sprintf("%s '%s", time.Month(m).String()[:3], year[2:])
	}
}

// InPeriod reports whether t falls in the same bucket as ref.
func InPeriod(view View, t, ref time.Time) bool {
	return BucketKey(view, t) == BucketKey(view, ref)
}

// Shift moves a reference date by steps periods of the view, anchored at day 1.
func Shift(view View, ref time.Time, steps int) time.Time {
	y, m := ref.Year(), ref.Month()
	switch view {
	case Yearly:
		return time.Date(y+steps, m, 1, 0, 0, 0, 0, ref.Location())
	case Quarterly:
		return time.Date(y, m+time.Month(3*steps), 1, 0, 0, 0, 0, ref.Location())
	default:
		return time.Date(y, m+time.Month(steps), 1, 0, 0, 0, 0, ref.Location())
	}
}

// PeriodLabel is the long title of the period containing ref:
// "January 2024", "Q1 2024" or "2024".
func PeriodLabel(view View, ref time.Time) string {
	switch view {
	case Yearly:
		return strconv.Itoa(ref.Year())
	case Quarterly:
		return fmt.Sprintf("Q%d %d", Quarter(ref), ref.Year())
	default:
		return ref.Format("January 2006")
	}
}

// Range is an inclusive instant interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, both ends included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// DayRange spans from the first instant of start's day through
// 23:59:59.999 of end's day.
func DayRange(start, end time.Time) Range {
	return Range{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		End:   endOfDay(end.Year(), end.Month(), end.Day(), end.Location()),
	}
}

// ViewRange is the calendar month, quarter or year containing ref.
func ViewRange(view View, ref time.Time) Range {
	loc := ref.Location()
	y := ref.Year()
	switch view {
	case Yearly:
		return Range{Start: time.Date(y, 1, 1, 0, 0, 0, 0, loc), End: endOfDay(y, 12, 31, loc)}
	case Quarterly:
		first := time.Month((Quarter(ref)-1)*3 + 1)
		// day 0 of the following month is the last day of the quarter
		return Range{Start: time.Date(y, first, 1, 0, 0, 0, 0, loc), End: endOfDay(y, first+3, 0, loc)}
	default:
		m := ref.Month()
		return Range{Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: endOfDay(y, m+1, 0, loc)}
	}
}

// ReviewPeriod names a relative period used by the financial review.
type ReviewPeriod string

const (
	ThisQuarter ReviewPeriod = "this-quarter"
	LastQuarter ReviewPeriod = "last-quarter"
	ThisYear    ReviewPeriod = "this-year"
	LastYear    ReviewPeriod = "last-year"
)

// ReviewPeriods lists the review periods in display order.
var ReviewPeriods = []ReviewPeriod{ThisQuarter, LastQuarter, ThisYear, LastYear}

// RangeFor resolves a review period relative to now.
// Last quarter from Q1 rolls back to Q4 of the previous year.
func RangeFor(period ReviewPeriod, now time.Time) (Range, error) {
	switch period {
	case ThisQuarter:
		return ViewRange(Quarterly, now), nil
	case LastQuarter:
		return ViewRange(Quarterly, Shift(Quarterly, now, -1)), nil
	case ThisYear:
		return ViewRange(Yearly, now), nil
	case LastYear:
		return ViewRange(Yearly, Shift(Yearly, now, -1)), nil
	default:
		return Range{}, NewValidationError("period", fmt.Sprintf("unknown review period %q", period))
	}
}
