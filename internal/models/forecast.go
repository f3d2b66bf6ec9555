package models

import "time"

// ForecastRequest is a forecaster's labour plan for one field on one day.
type ForecastRequest struct {
	ID          string    `db:"id" json:"id"`
	Date        string    `db:"date" json:"date"`
	FieldNumber string    `db:"field_number" json:"field_number"`
	Area        string    `db:"area" json:"area"`
	Crop        string    `db:"crop" json:"crop"`
	Operations  string    `db:"operations" json:"operations"`
	Men         int       `db:"men" json:"men"`
	Women       int       `db:"women" json:"women"`
	Total       int       `db:"total" json:"total"`
	Forecaster  string    `db:"forecaster" json:"forecaster"`
	SubmittedBy string    `db:"submitted_by" json:"submitted_by"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Status returns the label used in exported sheets.
func (f ForecastRequest) Status() string {
	if f.IsApproved {
		return "Approved"
	}
	return "Pending"
}

// ForecastFilter restricts the register listing to a date window. Both bounds
// must be set for the window to apply.
type ForecastFilter struct {
	StartDate string
	EndDate   string
}

// HasRange reports whether both bounds are present.
func (f ForecastFilter) HasRange() bool {
	return f.StartDate != "" && f.EndDate != ""
}
