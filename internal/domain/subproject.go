package domain

import (
	"fmt"
	"time"
)

// SubProject is a named date range grouping tasks within a project.
// StartDate and EndDate are inclusive calendar days.
type SubProject struct {
	ID          string
	ProjectID   string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Color       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the date-range invariant.
func (s *SubProject) Validate() error {
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("sub-project %q: end date %s before start date %s",
			s.Title, FormatDay(s.EndDate), FormatDay(s.StartDate))
	}
	return nil
}

// Contains reports whether the given day falls inside the inclusive range.
func (s *SubProject) Contains(day time.Time) bool {
	d := DayOf(day)
	return !d.Before(DayOf(s.StartDate)) && !d.After(DayOf(s.EndDate))
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func (s *SubProject) Overlaps(o *SubProject) bool {
	return !DayOf(s.EndDate).Before(DayOf(o.StartDate)) &&
		!DayOf(o.EndDate).Before(DayOf(s.StartDate))
}

func (s *SubProject) Clone() *SubProject {
	c := *s
	return &c
}
