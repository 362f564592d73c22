package cohort

import (
	"fmt"
	"time"
)

// Criteria captures the inclusion rules for one cohort project: admissions
// inside a date window, restricted to adults by default. Projects edit these
// (or pass flags) rather than the filter code.
type Criteria struct {
	StartDate  time.Time
	EndDate    time.Time
	MinimumAge float64
}

// The template window and adult age cutoff. Intended to be overridden per
// project.
func DefaultCriteria() Criteria {
	return Criteria{
		StartDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		MinimumAge: 18,
	}
}

func (c Criteria) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("cohort criteria need both a start date and an end date")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("cohort end date %s is before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if c.MinimumAge < 0 {
		return fmt.Errorf("cohort minimum age must not be negative, got %f", c.MinimumAge)
	}

	return nil
}

// Contains reports whether an admission timestamp falls inside the window.
// Both endpoints are inclusive, and the end date covers its entire day, so
// an admission at 23:00 on the end date still qualifies.
func (c Criteria) Contains(t time.Time) bool {
	if t.Before(c.StartDate) {
		return false
	}

	dayAfterEnd := time.Date(c.EndDate.Year(), c.EndDate.Month(), c.EndDate.Day(), 0, 0, 0, 0, c.EndDate.Location()).AddDate(0, 0, 1)

	return t.Before(dayAfterEnd)
}
