package dto

import "github.com/noah-isme/farm-register-api/internal/models"

// CreateMemberRequest registers a farm worker.
type CreateMemberRequest struct {
	Name string            `json:"name" validate:"required"`
	Type models.MemberType `json:"type" validate:"required,oneof=Permanent Temporary"`
}

// CreateAttendanceRequest records one worker's presence for a day.
type CreateAttendanceRequest struct {
	Name       string                  `json:"name" validate:"required"`
	Type       models.MemberType       `json:"type" validate:"required,oneof=Permanent Temporary"`
	Date       string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Attendance models.AttendanceStatus `json:"attendance" validate:"required,oneof=Present Absent"`
}

// BulkAttendanceRequest records several entries in one call.
type BulkAttendanceRequest struct {
	Records []CreateAttendanceRequest `json:"records" validate:"required,min=1,dive"`
}

// CreateUserRequest is used by admins to provision accounts.
type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	FullName string          `json:"full_name" validate:"required"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role" validate:"required,oneof=ADMIN FORECASTER"`
}
