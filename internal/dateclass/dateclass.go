// Package dateclass maps timestamps to the relative section labels used by
// the picker ("June", "Last month", "Last week", "Recent").
package dateclass

import (
	"errors"
	"fmt"
	"time"
)

// LabelKind is one of the four label categories.
type LabelKind int

const (
	MonthName LabelKind = iota
	LastMonth
	LastWeek
	Recent
)

func (k LabelKind) String() string {
	switch k {
	case MonthName:
		return "month"
	case LastMonth:
		return "last-month"
	case LastWeek:
		return "last-week"
	case Recent:
		return "recent"
	default:
		return fmt.Sprintf("LabelKind(%d)", int(k))
	}
}

// Label is a classified date. Month is only meaningful for MonthName.
type Label struct {
	Kind  LabelKind
	Month time.Month
}

// Resolver turns labels into display strings for one locale.
type Resolver interface {
	LastMonth() string
	LastWeek() string
	Recent() string
	Month(m time.Month) string
}

// Format returns the display text of l.
func (l Label) Format(r Resolver) string {
	switch l.Kind {
	case MonthName:
		return r.Month(l.Month)
	case LastMonth:
		return r.LastMonth()
	case LastWeek:
		return r.LastWeek()
	default:
		return r.Recent()
	}
}

// Classify labels t against three boundaries, checked in priority order:
// before lastMonth is a month name, before lastWeek is "last month",
// before recent is "last week", anything else is recent.
//
// Classify accepts any boundary triple. Use NewBoundaries to reject triples
// that are not strictly increasing.
func Classify(t, lastMonth, lastWeek, recent time.Time) Label {
	switch {
	case t.Before(lastMonth):
		return Label{Kind: MonthName, Month: t.Month()}
	case t.Before(lastWeek):
		return Label{Kind: LastMonth}
	case t.Before(recent):
		return Label{Kind: LastWeek}
	default:
		return Label{Kind: Recent}
	}
}

// ErrUnorderedBoundaries is returned when boundaries are not strictly increasing.
var ErrUnorderedBoundaries = errors.New("date boundaries must satisfy lastMonth < lastWeek < recent")

// Boundaries is a validated boundary triple.
type Boundaries struct {
	lastMonth time.Time
	lastWeek  time.Time
	recent    time.Time
}

// NewBoundaries validates and returns a boundary triple.
func NewBoundaries(lastMonth, lastWeek, recent time.Time) (Boundaries, error) {
	if !lastMonth.Before(lastWeek) || !lastWeek.Before(recent) {
		return Boundaries{}, fmt.Errorf("%w (got %s, %s, %s)", ErrUnorderedBoundaries,
			lastMonth.Format(time.RFC3339), lastWeek.Format(time.RFC3339), recent.Format(time.RFC3339))
	}
	return Boundaries{lastMonth: lastMonth, lastWeek: lastWeek, recent: recent}, nil
}

// BoundariesAt computes the picker's default boundaries relative to now: the
// first day of the previous calendar month, midnight seven days ago, and now
// itself. All three are in now's location.
func BoundariesAt(now time.Time) Boundaries {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	// Day 1 of the current month minus one month never overflows.
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	lastWeek := today.AddDate(0, 0, -7)
	return Boundaries{lastMonth: lastMonth, lastWeek: lastWeek, recent: now}
}

// LastMonth returns the lower bound of the "last month" bucket.
func (b Boundaries) LastMonth() time.Time { return b.lastMonth }

// LastWeek returns the lower bound of the "last week" bucket.
func (b Boundaries) LastWeek() time.Time { return b.lastWeek }

// Recent returns the lower bound of the "recent" bucket.
func (b Boundaries) Recent() time.Time { return b.recent }

// Classify labels t against b.
func (b Boundaries) Classify(t time.Time) Label {
	return Classify(t, b.lastMonth, b.lastWeek, b.recent)
}
