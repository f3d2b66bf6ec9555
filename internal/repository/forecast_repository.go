package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/farm-register-api/internal/models"
)

const forecastColumns = `id, date, field_number, area, crop, operations, men, women, total, forecaster, submitted_by, is_approved, created_at, updated_at`

// ForecastRepository persists forecast requests.
type ForecastRepository struct {
	db *sqlx.DB
}

// NewForecastRepository constructs the repository.
func NewForecastRepository(db *sqlx.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

// Create inserts a forecast request.
func (r *ForecastRepository) Create(ctx context.Context, forecast *models.ForecastRequest) error {
	if forecast.ID == "" {
		forecast.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if forecast.CreatedAt.IsZero() {
		forecast.CreatedAt = now
	}
	forecast.UpdatedAt = now

	const query = `INSERT INTO forecasts (` + forecastColumns + `) VALUES (:id, :date, :field_number, :area, :crop, :operations, :men, :women, :total, :forecaster, :submitted_by, :is_approved, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, forecast); err != nil {
		return fmt.Errorf("create forecast: %w", err)
	}
	return nil
}

// GetByID fetches a forecast. sql.ErrNoRows is returned untouched.
func (r *ForecastRepository) GetByID(ctx context.Context, id string) (*models.ForecastRequest, error) {
	const query = `SELECT ` + forecastColumns + ` FROM forecasts WHERE id = $1`
	var forecast models.ForecastRequest
	if err := r.db.GetContext(ctx, &forecast, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get forecast: %w", err)
	}
	return &forecast, nil
}

// List returns forecasts ordered by date descending, restricted to the
// filter's window when both bounds are present.
func (r *ForecastRepository) List(ctx context.Context, filter models.ForecastFilter) ([]models.ForecastRequest, error) {
	query := `SELECT ` + forecastColumns + ` FROM forecasts`
	var args []interface{}
	if filter.HasRange() {
		query += ` WHERE date >= $1 AND date <= $2`
		args = append(args, filter.StartDate, filter.EndDate)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	forecasts := make([]models.ForecastRequest, 0)
	if err := r.db.SelectContext(ctx, &forecasts, query, args...); err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	return forecasts, nil
}

// SetApproval stores the approval flag and returns the updated row.
func (r *ForecastRepository) SetApproval(ctx context.Context, id string, approved bool) (*models.ForecastRequest, error) {
	const query = `UPDATE forecasts SET is_approved = $2, updated_at = $3 WHERE id = $1 RETURNING ` + forecastColumns
	var forecast models.ForecastRequest
	if err := r.db.GetContext(ctx, &forecast, query, id, approved, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("set forecast approval: %w", err)
	}
	return &forecast, nil
}

// Update stores the editable columns of forecast and returns the stored row.
// total, is_approved and submitted_by are left as they are.
func (r *ForecastRepository) Update(ctx context.Context, forecast *models.ForecastRequest) (*models.ForecastRequest, error) {
	const query = `UPDATE forecasts SET date = $2, field_number = $3, area = $4, crop = $5, operations = $6, men = $7, women = $8, forecaster = $9, updated_at = $10 WHERE id = $1 RETURNING ` + forecastColumns
	var updated models.ForecastRequest
	err := r.db.GetContext(ctx, &updated, query,
		forecast.ID, forecast.Date, forecast.FieldNumber, forecast.Area, forecast.Crop,
		forecast.Operations, forecast.Men, forecast.Women, forecast.Forecaster, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update forecast: %w", err)
	}
	return &updated, nil
}

// Delete removes a forecast. sql.ErrNoRows is returned when nothing matched.
func (r *ForecastRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forecasts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete forecast: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete forecast rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
