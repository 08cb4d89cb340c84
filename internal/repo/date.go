package repo

import (
	"fmt"
	"time"
)

const (
	isoLayout  = "2006-01-02"
	pathLayout = "2006/01/02"
)

// A calendar date identifying a package-repository snapshot.
//
// Dates are parsed once from ISO-8601 input and never mutated afterwards.
type Date struct {
	t time.Time
}

// Parses an ISO-8601 date (e.g., "2024-01-15").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return Date{t: t}, nil
}

// Returns the date in ISO-8601 form, as it appears in registry tags.
func (d Date) String() string {
	return d.t.Format(isoLayout)
}

// Returns the date in the archive repository's path convention (YYYY/MM/DD).
func (d Date) Path() string {
	return d.t.Format(pathLayout)
}
