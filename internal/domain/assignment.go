package domain

import "time"

// Assignment is a time-bounded trainer-to-user pairing.
// A nil EndDate marks the active assignment; a user has at most one.
type Assignment struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	InstructorID int64      `json:"instructorId"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

// Active reports whether the assignment is still open.
func (a *Assignment) Active() bool {
	return a.EndDate == nil
}

// DateOnly truncates t to midnight UTC, the granularity of assignment dates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
