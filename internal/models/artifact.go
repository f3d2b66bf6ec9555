package models

import "time"

// ApprovedCSV is the immutable CSV snapshot produced when a forecast is approved.
type ApprovedCSV struct {
	ID         string    `db:"id" json:"id"`
	ForecastID string    `db:"forecast_id" json:"forecast_id"`
	CSVData    string    `db:"csv_data" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ApprovedCSVSummary is the listing projection of an artifact. FieldNumber is
// empty when the source forecast no longer exists.
type ApprovedCSVSummary struct {
	ID          string    `db:"id" json:"id"`
	ForecastID  string    `db:"forecast_id" json:"forecast_id"`
	FieldNumber string    `db:"field_number" json:"field_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
