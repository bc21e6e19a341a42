package entity

import (
	"fmt"
	"time"

	"qtholidays-service/pkg/utils"
)

// Period selects which records a summary covers
type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod defaults to the current month when s is empty
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodMonth, nil
	case PeriodMonth, PeriodYear, PeriodAll:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidRecord, s)
	}
}

// Since returns the creation-time lower bound for the period, in now's
// location, or nil when unbounded.
func (p Period) Since(now time.Time) *time.Time {
	var start time.Time
	switch p {
	case PeriodMonth:
		start = utils.StartOfMonth(now)
	case PeriodYear:
		start = utils.StartOfYear(now)
	default:
		return nil
	}
	return &start
}
