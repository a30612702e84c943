package domain

// UserMonthlyStat is one precomputed row of per-user activity.
// MonthYear is formatted as YYYY-MM.
type UserMonthlyStat struct {
	MonthYear       string `json:"month_year"`
	RoutinesStarted int    `json:"routines_started"`
	FollowupsCount  int    `json:"followups_count"`
}

// InstructorMonthlyStat is one precomputed row of per-instructor activity.
type InstructorMonthlyStat struct {
	MonthYear      string `json:"month_year"`
	NewAssignments int    `json:"new_assignments"`
	FollowupsCount int    `json:"followups_count"`
}
