/*
Package schedule is the scheduling conflict and approval engine.

PURPOSE:
  Decides whether a proposed assignment or leave can coexist with everything
  already on an employee's calendar, what approval status a record starts
  in, who may approve/cancel/edit it, and how multi-day requests expand into
  per-day records. It validates and classifies; it never places or
  optimizes work on its own.

KEY CONCEPTS IN THIS FILE (clock.go):
  - Date:      A calendar day (no time component, UTC)
  - ClockTime: A minute-precision time of day
  - Overlaps:  Half-open interval intersection
  - Two working-hours formulas that intentionally disagree (see below)

THE TWO HOURS FORMULAS:
  WorkingHours deducts exactly the portion of the 12:00-13:00 lunch window
  that falls inside the worked span. ReportHours deducts a flat hour from
  any span of 4h or more, whether or not it touches noon. Both are observed
  by external consumers (calendar views vs. report exports), so they are
  kept as two named functions and must not be unified.

SEE ALSO:
  - conflict.go: Uses Overlaps for collision detection
  - approval.go: Uses Date weekday/holiday checks for escalation
*/
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - calendar day
// =============================================================================

type Date struct {
	t time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// DateOf truncates a time.Time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Time() time.Time        { return d.t }
func (d Date) String() string         { return d.t.Format("2006-01-02") }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Before(o Date) bool     { return d.t.Before(o.t) }
func (d Date) After(o Date) bool      { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool      { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }

// IsWeekend reports whether d falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Within reports whether d lies in the inclusive range [from, to].
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// DaysInclusive counts the days in [from, to], both ends included.
// Returns 0 if to is before from.
func DaysInclusive(from, to Date) int {
	if to.Before(from) {
		return 0
	}
	return int(to.t.Sub(from.t).Hours()/24) + 1
}

// DatesInclusive enumerates every day in [from, to].
func DatesInclusive(from, to Date) []Date {
	var out []Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// HolidayCalendar is the engine's holiday lookup boundary. Implementations
// are external (store-backed, fixture maps in tests).
type HolidayCalendar interface {
	IsHoliday(date Date) bool
	HolidayName(date Date) (string, bool)
}

// =============================================================================
// CLOCK TIME - minute-precision time of day
// =============================================================================

// ClockTime is minutes since midnight. The zero value is 00:00, so optional
// times are represented as *ClockTime.
type ClockTime int

const (
	// LunchStart/LunchEnd bound the deductible lunch window.
	LunchStart ClockTime = 12 * 60
	LunchEnd   ClockTime = 13 * 60

	// StandardDayStart/StandardDayEnd define the standard full working day.
	// A request with exactly these bounds is eligible for multi-day
	// expansion, and anything outside them is overtime.
	StandardDayStart ClockTime = 8 * 60
	StandardDayEnd   ClockTime = 17 * 60

	// EndOfDay marks the exclusive upper bound of a full-day occupancy.
	EndOfDay ClockTime = 24 * 60
)

// NewClockTime builds a ClockTime from hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses "15:04" (also tolerating a trailing ":05" seconds
// component, which some stored records carry).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return NewClockTime(t.Hour(), t.Minute()), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Ptr is a convenience for optional time fields.
func (c ClockTime) Ptr() *ClockTime { return &c }

// =============================================================================
// INTERVALS AND HOURS
// =============================================================================

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect.
func Overlaps(startA, endA, startB, endB ClockTime) bool {
	return startA < endB && endA > startB
}

// WorkingHours returns the hours worked in [start, end), deducting only the
// portion of the 12:00-13:00 lunch window that the span actually covers.
// A 12:30-17:00 span loses 30 minutes, not a full hour.
func WorkingHours(start, end ClockTime) decimal.Decimal {
	if end <= start {
		return decimal.Zero
	}
	minutes := int(end - start)
	if start < LunchEnd && end > LunchStart {
		overlapStart := start
		if overlapStart < LunchStart {
			overlapStart = LunchStart
		}
		overlapEnd := end
		if overlapEnd > LunchEnd {
			overlapEnd = LunchEnd
		}
		minutes -= int(overlapEnd - overlapStart)
	}
	return minutesToHours(minutes)
}

// ReportHours returns the hours used by reporting aggregates: a flat one
// hour deducted from any span of four hours or more, regardless of whether
// the span includes noon. This diverges from WorkingHours on purpose; both
// formulas are externally observed and must stay distinct.
func ReportHours(start, end ClockTime) decimal.Decimal {
	if end <= start {
		return decimal.Zero
	}
	minutes := int(end - start)
	if minutes >= 4*60 {
		minutes -= 60
		if minutes < 0 {
			minutes = 0
		}
	}
	return minutesToHours(minutes)
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}
