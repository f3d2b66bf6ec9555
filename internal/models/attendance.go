package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is one worker's presence on one day.
type Attendance struct {
	ID         string           `db:"id" json:"id"`
	Name       string           `db:"name" json:"name"`
	Type       MemberType       `db:"type" json:"type"`
	Date       string           `db:"date" json:"date"`
	Attendance AttendanceStatus `db:"attendance" json:"attendance"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceFilter defines query filters. Year and Month are only consulted
// when the date window is incomplete.
type AttendanceFilter struct {
	Name      string
	StartDate string
	EndDate   string
	Year      string
	Month     string
}
