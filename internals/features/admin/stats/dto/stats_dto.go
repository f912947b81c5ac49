package dto

// Totals is scanned from a single row of sub-selects.
type Totals struct {
	TotalUsers          int64 `json:"total_users"`
	TotalStudents       int64 `json:"total_students"`
	TotalTrainers       int64 `json:"total_trainers"`
	TotalChallenges     int64 `json:"total_challenges"`
	TotalSubmissions    int64 `json:"total_submissions"`
	PendingReservations int64 `json:"pending_reservations"`
	UpcomingEvents      int64 `json:"upcoming_events"`
}

type PoleCount struct {
	Pole  string `json:"pole"`
	Count int64  `json:"count"`
}

type StatsResponse struct {
	Totals
	UsersByPole []PoleCount `json:"users_by_pole"`
}
