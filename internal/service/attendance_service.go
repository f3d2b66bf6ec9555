package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type attendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	CreateBatch(ctx context.Context, records []models.Attendance) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error)
	Delete(ctx context.Context, id string) error
}

// AttendanceService manages daily attendance entries.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	return &AttendanceService{repo: repo, validator: validate}
}

// List returns entries matching filter, newest date first. An empty filter
// returns every entry.
func (s *AttendanceService) List(ctx context.Context, actor *models.JWTClaims, filter models.AttendanceFilter) ([]models.Attendance, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance records")
	}
	return records, nil
}

// Create stores one entry.
func (s *AttendanceService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	record := attendanceFromRequest(req)
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	return &record, nil
}

// CreateBulk stores every entry in one insert. Nothing is stored when any
// entry is invalid.
func (s *AttendanceService) CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkAttendanceRequest) ([]models.Attendance, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk attendance payload")
	}
	records := make([]models.Attendance, 0, len(req.Records))
	for _, item := range req.Records {
		records = append(records, attendanceFromRequest(item))
	}
	if err := s.repo.CreateBatch(ctx, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark bulk attendance")
	}
	return records, nil
}

// Delete removes an entry.
func (s *AttendanceService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return err
	}
	if err := requireID(id, "attendance record"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete record")
	}
	return nil
}

func attendanceFromRequest(req dto.CreateAttendanceRequest) models.Attendance {
	return models.Attendance{
		Name:       req.Name,
		Type:       req.Type,
		Date:       req.Date,
		Attendance: req.Attendance,
	}
}
