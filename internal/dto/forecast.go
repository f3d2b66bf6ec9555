package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxHeadcount is the largest count an INTEGER column holds.
const MaxHeadcount = math.MaxInt32

// Headcount is a worker count that accepts either a JSON number or a numeric
// string such as "3".
type Headcount int

// UnmarshalJSON implements json.Unmarshaler.
func (h *Headcount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) {
		return fmt.Errorf("headcount %s is not a whole number", string(data))
	}
	if f > MaxHeadcount || f < math.MinInt32 {
		return fmt.Errorf("headcount %s is out of range", string(data))
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("headcount %s is not a whole number", string(data))
	}
	*h = Headcount(f)
	return nil
}

// SubmitForecastRequest is the payload a forecaster posts. Any total sent by
// the client is ignored.
type SubmitForecastRequest struct {
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	FieldNumber string     `json:"fieldNumber" validate:"required"`
	Area        string     `json:"area" validate:"required"`
	Crop        string     `json:"crop" validate:"required"`
	Operations  string     `json:"operations" validate:"required"`
	Men         *Headcount `json:"men" validate:"required,min=0,max=2147483647"`
	Women       *Headcount `json:"women" validate:"required,min=0,max=2147483647"`
	Forecaster  string     `json:"forecaster" validate:"required"`
}

// UpdateForecastRequest edits a stored forecast. Only the fields present are
// changed; the stored total and approval flag are never touched.
type UpdateForecastRequest struct {
	Date        *string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FieldNumber *string    `json:"fieldNumber" validate:"omitempty,min=1"`
	Area        *string    `json:"area" validate:"omitempty,min=1"`
	Crop        *string    `json:"crop" validate:"omitempty,min=1"`
	Operations  *string    `json:"operations" validate:"omitempty,min=1"`
	Men         *Headcount `json:"men" validate:"omitempty,min=0,max=2147483647"`
	Women       *Headcount `json:"women" validate:"omitempty,min=0,max=2147483647"`
	Forecaster  *string    `json:"forecaster" validate:"omitempty,min=1"`
}

// Empty reports whether the request carries no field to change.
func (r UpdateForecastRequest) Empty() bool {
	return r.Date == nil && r.FieldNumber == nil && r.Area == nil && r.Crop == nil &&
		r.Operations == nil && r.Men == nil && r.Women == nil && r.Forecaster == nil
}

// ExportFormat selects the renderer for register exports.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered register export.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
