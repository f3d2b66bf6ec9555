package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farm-register-api/internal/models"
)

var forecastRowColumns = []string{"id", "date", "field_number", "area", "crop", "operations", "men", "women", "total", "forecaster", "submitted_by", "is_approved", "created_at", "updated_at"}

func TestForecastCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	mock.ExpectExec("INSERT INTO forecasts").WillReturnResult(sqlmock.NewResult(0, 1))

	forecast := &models.ForecastRequest{Date: "2024-05-01", FieldNumber: "F12", Men: 3, Women: 2, Total: 5}
	require.NoError(t, repo.Create(context.Background(), forecast))
	assert.NotEmpty(t, forecast.ID)
	assert.False(t, forecast.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastListWithoutRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM forecasts ORDER BY date DESC, created_at DESC")).
		WillReturnRows(sqlmock.NewRows(forecastRowColumns).
			AddRow("f1", "2024-05-02", "F1", "1ha", "Rice", "Weeding", 1, 1, 2, "Bob", "u1", false, now, now))

	items, err := repo.List(context.Background(), models.ForecastFilter{StartDate: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "F1", items[0].FieldNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastListWithRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM forecasts WHERE date >= $1 AND date <= $2 ORDER BY date DESC")).
		WithArgs("2024-05-01", "2024-05-31").
		WillReturnRows(sqlmock.NewRows(forecastRowColumns))

	items, err := repo.List(context.Background(), models.ForecastFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastSetApproval(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE forecasts SET is_approved = $2, updated_at = $3 WHERE id = $1 RETURNING")).
		WithArgs("f1", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(forecastRowColumns).
			AddRow("f1", "2024-05-01", "F12", "2ha", "Rice", "Sowing", 3, 2, 5, "Alice", "u1", true, now, now))

	forecast, err := repo.SetApproval(context.Background(), "f1", true)
	require.NoError(t, err)
	assert.True(t, forecast.IsApproved)
	assert.Equal(t, 5, forecast.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM forecasts WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastUpdateKeepsTotal(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE forecasts SET date = $2, field_number = $3, area = $4, crop = $5, operations = $6, men = $7, women = $8, forecaster = $9, updated_at = $10 WHERE id = $1 RETURNING")).
		WithArgs("f1", "2024-05-02", "F1", "1ha", "Rice", "Weeding", 4, 1, "Bob", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(forecastRowColumns).
			AddRow("f1", "2024-05-02", "F1", "1ha", "Rice", "Weeding", 4, 1, 2, "Bob", "u1", true, now, now))

	updated, err := repo.Update(context.Background(), &models.ForecastRequest{
		ID: "f1", Date: "2024-05-02", FieldNumber: "F1", Area: "1ha", Crop: "Rice", Operations: "Weeding",
		Men: 4, Women: 1, Total: 99, Forecaster: "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Total)
	assert.True(t, updated.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewForecastRepository(db)

	mock.ExpectQuery("UPDATE forecasts").WillReturnRows(sqlmock.NewRows(forecastRowColumns))

	_, err := repo.Update(context.Background(), &models.ForecastRequest{ID: "missing"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
