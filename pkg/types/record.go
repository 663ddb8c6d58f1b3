package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate reports a date that is malformed or does not exist in the
// Gregorian calendar.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Record is one diary entry.
type Record struct {
	Date
	Note string `json:"note"`
}

// daysInMonth holds month lengths for a common year; index 0 is unused.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// Validate returns ErrInvalidDate unless d names an existing day with a
// positive year.
func (d Date) Validate() error {
	if d.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	last := daysInMonth[d.Month]
	if d.Month == 2 && IsLeapYear(d.Year) {
		last = 29
	}
	if d.Day < 1 || d.Day > last {
		return fmt.Errorf("%w: day %d of %d.%d", ErrInvalidDate, d.Day, d.Month, d.Year)
	}
	return nil
}

// String renders the date as day.month.year without padding.
func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Day, d.Month, d.Year)
}

// Compare orders dates chronologically, returning -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseDate reads a "d.m.yyyy" date. Trailing whitespace is ignored; any
// other trailing text makes the date invalid.
func ParseDate(s string) (Date, error) {
	s = strings.TrimRight(s, " \t\r\n")
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not day.month.year", ErrInvalidDate, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimLeft(p, " \t"))
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q is not day.month.year", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	d := Date{Day: nums[0], Month: nums[1], Year: nums[2]}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}
