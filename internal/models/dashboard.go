package models

// TodayAttendance summarises today's presence across departments.
type TodayAttendance struct {
	Present    int `json:"present"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// DashboardStats is the payload for the dashboard stats endpoint.
type DashboardStats struct {
	TotalStudents    int             `json:"totalStudents"`
	TotalTeachers    int             `json:"totalTeachers"`
	TotalDepartments int             `json:"totalDepartments"`
	TodayAttendance  TodayAttendance `json:"todayAttendance"`
}
