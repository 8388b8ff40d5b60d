package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity civil date (payroll never cares about clock time)
// =============================================================================

type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. A malformed date is a contract
// violation by the caller, so this is one of the few hard errors.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the inclusive day count between two dates.
// DaysBetween(Mar 1, Mar 3) == 3.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours()/24) + 1
}

// MaxDate and MinDate pick the later/earlier of two dates.
func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// =============================================================================
// PAY PERIOD - One calendar month of payroll
// =============================================================================

// PayPeriod identifies the calendar month a payroll run covers.
// All proration and per-day rates are anchored to this month's actual
// length - never a fixed 30-day convention.
type PayPeriod struct {
	Month time.Month
	Year  int
}

func NewPayPeriod(month time.Month, year int) PayPeriod {
	return PayPeriod{Month: month, Year: year}
}

// Valid reports whether the period identifies a real calendar month.
func (p PayPeriod) Valid() bool {
	return p.Month >= time.January && p.Month <= time.December && p.Year >= 1900 && p.Year <= 2200
}

// Start returns the first day of the month.
func (p PayPeriod) Start() Date { return NewDate(p.Year, p.Month, 1) }

// End returns the last day of the month.
func (p PayPeriod) End() Date {
	t := time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Date{Time: t}
}

// TotalDays returns the number of days in the calendar month.
func (p PayPeriod) TotalDays() int { return p.End().Day() }

// Next returns the following month's period.
func (p PayPeriod) Next() PayPeriod {
	if p.Month == time.December {
		return PayPeriod{Month: time.January, Year: p.Year + 1}
	}
	return PayPeriod{Month: p.Month + 1, Year: p.Year}
}

// Previous returns the preceding month's period.
func (p PayPeriod) Previous() PayPeriod {
	if p.Month == time.January {
		return PayPeriod{Month: time.December, Year: p.Year - 1}
	}
	return PayPeriod{Month: p.Month - 1, Year: p.Year}
}

func (p PayPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// =============================================================================
// FINANCIAL YEAR - Indian fiscal calendar (April to March)
// =============================================================================

// FinancialYear returns the starting year of the Indian financial year
// containing this period. FY 2024-25 runs April 2024 through March 2025
// and is reported as 2024.
func (p PayPeriod) FinancialYear() int {
	if p.Month >= time.April {
		return p.Year
	}
	return p.Year - 1
}

// RemainingMonthsInFY returns how many months remain in the financial
// year, counting the period's own month. Used by the TDS projection:
// March always returns 1, April always returns 12.
func (p PayPeriod) RemainingMonthsInFY() int {
	if p.Month >= time.April {
		return 12 - int(p.Month-time.April)
	}
	return int(time.March-p.Month) + 1
}
