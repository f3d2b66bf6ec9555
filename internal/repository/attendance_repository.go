package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/farm-register-api/internal/models"
)

const (
	attendanceColumns = `id, name, type, date, attendance, created_at`
	insertAttendance  = `INSERT INTO attendance (` + attendanceColumns + `) VALUES (:id, :name, :type, :date, :attendance, :created_at)`
)

// AttendanceRepository persists daily attendance entries.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts one entry.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	prepareAttendance(record, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertAttendance, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// CreateBatch inserts every entry with one multi-row INSERT.
func (r *AttendanceRepository) CreateBatch(ctx context.Context, records []models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range records {
		prepareAttendance(&records[i], now)
	}
	if _, err := r.db.NamedExecContext(ctx, insertAttendance, records); err != nil {
		return fmt.Errorf("create attendance batch: %w", err)
	}
	return nil
}

// List returns entries matching the filter, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + attendanceColumns + ` FROM attendance WHERE 1=1`)

	var args []interface{}
	if filter.Name != "" {
		args = append(args, filter.Name)
		fmt.Fprintf(&query, " AND name = $%d", len(args))
	}

	switch {
	case filter.StartDate != "" && filter.EndDate != "":
		args = append(args, filter.StartDate, filter.EndDate)
		fmt.Fprintf(&query, " AND date >= $%d AND date <= $%d", len(args)-1, len(args))
	case filter.Year != "" && filter.Month != "":
		args = append(args, fmt.Sprintf("%s-%s-%%", filter.Year, padMonth(filter.Month)))
		fmt.Fprintf(&query, " AND date LIKE $%d", len(args))
	case filter.Year != "":
		args = append(args, filter.Year+"-%")
		fmt.Fprintf(&query, " AND date LIKE $%d", len(args))
	case filter.Month != "":
		args = append(args, "%-"+padMonth(filter.Month)+"-%")
		fmt.Fprintf(&query, " AND date LIKE $%d", len(args))
	}
	query.WriteString(" ORDER BY date DESC, created_at DESC")

	records := make([]models.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// Delete removes an entry. sql.ErrNoRows is returned when nothing matched.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendance rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func prepareAttendance(record *models.Attendance, now time.Time) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
}

func padMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}
