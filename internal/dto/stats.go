package dto

// DashboardStats summarises troupe activity for the home dashboard.
type DashboardStats struct {
	TotalMembers        int `json:"totalMembers"`
	TotalShows          int `json:"totalShows"`
	RecentAttendance    int `json:"recentAttendance"`
	ActiveNotifications int `json:"activeNotifications"`
}

// Performer is one entry of the attendance leaderboard.
type Performer struct {
	MemberID   string `json:"memberId"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// PerformanceStats ranks members by attendance percentage.
type PerformanceStats struct {
	TotalMembers      int         `json:"totalMembers"`
	AverageAttendance int         `json:"averageAttendance"`
	TopPerformers     []Performer `json:"topPerformers"`
	LowPerformers     []Performer `json:"lowPerformers"`
}

// MemberAttendanceSummary breaks down one member's attendance history.
type MemberAttendanceSummary struct {
	MemberID   string `json:"memberId"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Replaced   int    `json:"replaced"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}
