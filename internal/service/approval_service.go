package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
	"github.com/noah-isme/farm-register-api/pkg/export"
)

type approvalForecastRepository interface {
	GetByID(ctx context.Context, id string) (*models.ForecastRequest, error)
	SetApproval(ctx context.Context, id string, approved bool) (*models.ForecastRequest, error)
}

type artifactWriter interface {
	Create(ctx context.Context, artifact *models.ApprovedCSV) error
}

type notificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// ApprovalService records admin decisions on forecasts. Approving stores a CSV
// snapshot and notifies the submitter; declining only clears the flag. The
// writes are independent, so a later failure leaves earlier writes in place.
type ApprovalService struct {
	forecasts     approvalForecastRepository
	artifacts     artifactWriter
	notifications notificationWriter
	cache         *CacheService
	metrics       *MetricsService
	csv           *export.CSVExporter
	logger        *zap.Logger
}

// NewApprovalService constructs an ApprovalService.
func NewApprovalService(forecasts approvalForecastRepository, artifacts artifactWriter, notifications notificationWriter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		forecasts:     forecasts,
		artifacts:     artifacts,
		notifications: notifications,
		cache:         cache,
		metrics:       metrics,
		csv:           export.NewCSVExporter(),
		logger:        logger,
	}
}

// SetApproval stores approve on the forecast and, when approving, runs the
// artifact and notification steps. Approving an already approved forecast
// runs those steps again.
func (s *ApprovalService) SetApproval(ctx context.Context, actor *models.JWTClaims, id string, approve bool) (*models.ForecastRequest, error) {
	if err := authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id, "forecast"); err != nil {
		return nil, err
	}

	if _, err := s.forecasts.GetByID(ctx, id); err != nil {
		return nil, forecastLookupError(err)
	}

	updated, err := s.forecasts.SetApproval(ctx, id, approve)
	if err != nil {
		return nil, forecastLookupError(err)
	}
	s.metrics.ApprovalDecided(approve)
	s.cache.Invalidate(ctx, forecastCachePattern)

	if !approve {
		return updated, nil
	}

	data, err := s.csv.Render(forecastDataset(*updated))
	if err != nil {
		s.partial(updated.ID, "render_csv", err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render approval csv")
	}

	artifact := &models.ApprovedCSV{ForecastID: updated.ID, CSVData: string(data)}
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		s.partial(updated.ID, "store_artifact", err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "forecast approved but csv could not be stored")
	}
	s.metrics.ArtifactCreated()

	forecastID := updated.ID
	if err := s.notifications.Create(ctx, &models.Notification{
		UserID:     updated.SubmittedBy,
		ForecastID: &forecastID,
		Message:    approvedMessage(updated),
	}); err != nil {
		s.partial(updated.ID, "notify_submitter", err)
		return updated, nil
	}
	s.metrics.NotificationsCreated("approved", 1)

	return updated, nil
}

func (s *ApprovalService) partial(forecastID, stage string, err error) {
	s.metrics.PartialCompletion(stage)
	s.logger.Warn("approval partially completed",
		zap.String("forecast_id", forecastID),
		zap.String("stage", stage),
		zap.Error(err))
}

func forecastLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "forecast not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load forecast")
}
