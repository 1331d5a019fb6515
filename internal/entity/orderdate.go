package domain

import (
	"fmt"
	"time"
)

const isoFriday = 5

// OrderDate is a calendar date; time-of-day is irrelevant beyond date
// identity.
type OrderDate struct {
	t time.Time
}

func OrderDateFromTime(t time.Time) OrderDate {
	return OrderDate{t: t}
}

// ParseOrderDate accepts "2006-01-02" or "2006-01-02 15:04:05".
func ParseOrderDate(s string) (OrderDate, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return OrderDate{t: t}, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return OrderDate{}, fmt.Errorf("invalid date %q: expected 2006-01-02 or 2006-01-02 15:04:05", s)
	}
	return OrderDate{t: t}, nil
}

func Today() OrderDate {
	return OrderDate{t: time.Now()}
}

func (d OrderDate) Time() time.Time { return d.t }

// DayOfWeek returns the ISO-8601 weekday number, Monday=1 .. Sunday=7.
func (d OrderDate) DayOfWeek() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d OrderDate) IsFriday() bool {
	return d.DayOfWeek() == isoFriday
}

func (d OrderDate) DayName() string {
	return d.t.Weekday().String()
}

func (d OrderDate) Equals(other OrderDate) bool {
	y1, m1, d1 := d.t.Date()
	y2, m2, d2 := other.t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d OrderDate) Format() string {
	return d.t.Format("2006-01-02")
}

func (d OrderDate) String() string {
	return d.Format()
}
