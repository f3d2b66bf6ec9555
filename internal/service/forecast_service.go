package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
	"github.com/noah-isme/farm-register-api/pkg/export"
)

const forecastCachePattern = "forecasts:*"

var forecastHeaders = []string{"Date", "Field Number", "Area", "Crop", "Operations", "Men", "Women", "Total", "Forecaster", "Status"}

type forecastRepository interface {
	Create(ctx context.Context, forecast *models.ForecastRequest) error
	GetByID(ctx context.Context, id string) (*models.ForecastRequest, error)
	List(ctx context.Context, filter models.ForecastFilter) ([]models.ForecastRequest, error)
	Update(ctx context.Context, forecast *models.ForecastRequest) (*models.ForecastRequest, error)
	Delete(ctx context.Context, id string) error
}

type adminDirectory interface {
	ListActiveIDsByRole(ctx context.Context, role models.UserRole) ([]string, error)
}

type notificationBatchWriter interface {
	CreateBatch(ctx context.Context, items []models.Notification) error
}

// ForecastConfig tunes ForecastService.
type ForecastConfig struct {
	CacheTTL time.Duration
}

// ForecastService accepts forecast submissions and serves the forecast register.
type ForecastService struct {
	repo          forecastRepository
	admins        adminDirectory
	notifications notificationBatchWriter
	cache         *CacheService
	metrics       *MetricsService
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	validator     *validator.Validate
	logger        *zap.Logger
	config        ForecastConfig
}

// NewForecastService constructs a ForecastService.
func NewForecastService(repo forecastRepository, admins adminDirectory, notifications notificationBatchWriter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ForecastConfig) *ForecastService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{
		repo:          repo,
		admins:        admins,
		notifications: notifications,
		cache:         cache,
		metrics:       metrics,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		validator:     validate,
		logger:        logger,
		config:        cfg,
	}
}

// Submit stores a new forecast and notifies every active admin. A failed
// fan-out is logged and does not undo the stored forecast.
func (s *ForecastService) Submit(ctx context.Context, actor *models.JWTClaims, req dto.SubmitForecastRequest) (*models.ForecastRequest, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid forecast payload")
	}

	men, women := int(*req.Men), int(*req.Women)
	if men+women > dto.MaxHeadcount {
		return nil, appErrors.Clone(appErrors.ErrValidation, "total headcount is too large")
	}
	forecast := &models.ForecastRequest{
		Date:        req.Date,
		FieldNumber: req.FieldNumber,
		Area:        req.Area,
		Crop:        req.Crop,
		Operations:  req.Operations,
		Men:         men,
		Women:       women,
		Total:       men + women,
		Forecaster:  req.Forecaster,
		SubmittedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, forecast); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save forecast")
	}
	s.metrics.ForecastSubmitted()
	s.cache.Invalidate(ctx, forecastCachePattern)

	s.notifyAdmins(ctx, forecast)
	return forecast, nil
}

func (s *ForecastService) notifyAdmins(ctx context.Context, forecast *models.ForecastRequest) {
	adminIDs, err := s.admins.ListActiveIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.partial(forecast.ID, "admin_lookup", err)
		return
	}
	if len(adminIDs) == 0 {
		return
	}

	forecastID := forecast.ID
	message := approvalRequestMessage(forecast)
	items := make([]models.Notification, 0, len(adminIDs))
	for _, id := range adminIDs {
		items = append(items, models.Notification{UserID: id, ForecastID: &forecastID, Message: message})
	}
	if err := s.notifications.CreateBatch(ctx, items); err != nil {
		s.partial(forecast.ID, "admin_fanout", err)
		return
	}
	s.metrics.NotificationsCreated("approval_request", len(items))
}

func (s *ForecastService) partial(forecastID, stage string, err error) {
	s.metrics.PartialCompletion(stage)
	s.logger.Warn("forecast stored without admin notifications",
		zap.String("forecast_id", forecastID),
		zap.String("stage", stage),
		zap.Error(err))
}

// List returns the register ordered by date descending. The window applies
// only when both bounds are set.
func (s *ForecastService) List(ctx context.Context, actor *models.JWTClaims, filter models.ForecastFilter) ([]models.ForecastRequest, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}

	key := forecastCacheKey(filter)
	var cached []models.ForecastRequest
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	forecasts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list forecasts")
	}
	s.cache.Set(ctx, key, forecasts, s.config.CacheTTL)
	return forecasts, nil
}

// Update edits the fields present in req. The stored total is kept as it was
// computed at submission, and the approval flag is unchanged.
func (s *ForecastService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateForecastRequest) (*models.ForecastRequest, error) {
	if err := authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id, "forecast"); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid forecast payload")
	}

	forecast, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, forecastLookupError(err)
	}
	for _, field := range []struct {
		value *string
		dest  *string
	}{
		{req.Date, &forecast.Date},
		{req.FieldNumber, &forecast.FieldNumber},
		{req.Area, &forecast.Area},
		{req.Crop, &forecast.Crop},
		{req.Operations, &forecast.Operations},
		{req.Forecaster, &forecast.Forecaster},
	} {
		if field.value == nil {
			continue
		}
		if strings.TrimSpace(*field.value) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "fields cannot be blank")
		}
		*field.dest = *field.value
	}
	if req.Men != nil {
		forecast.Men = int(*req.Men)
	}
	if req.Women != nil {
		forecast.Women = int(*req.Women)
	}

	updated, err := s.repo.Update(ctx, forecast)
	if err != nil {
		return nil, forecastLookupError(err)
	}
	s.cache.Invalidate(ctx, forecastCachePattern)
	return updated, nil
}

// Delete removes a forecast. Notifications and artifacts that reference it are kept.
func (s *ForecastService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if err := authorize(actor, models.RoleAdmin); err != nil {
		return err
	}
	if err := requireID(id, "forecast"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "forecast not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete forecast")
	}
	s.cache.Invalidate(ctx, forecastCachePattern)
	return nil
}

// Export renders the register as CSV or PDF.
func (s *ForecastService) Export(ctx context.Context, actor *models.JWTClaims, filter models.ForecastFilter, format dto.ExportFormat) (*dto.ExportResult, error) {
	if format == "" {
		format = dto.ExportFormatCSV
	}
	if format != dto.ExportFormatCSV && format != dto.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	forecasts, err := s.List(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	dataset := forecastDataset(forecasts...)

	switch format {
	case dto.ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Forecast Register")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &dto.ExportResult{Filename: "forecast_register.pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &dto.ExportResult{Filename: "forecast_register.csv", ContentType: "text/csv", Data: data}, nil
	}
}

func forecastCacheKey(filter models.ForecastFilter) string {
	if !filter.HasRange() {
		return "forecasts:list:all"
	}
	return fmt.Sprintf("forecasts:list:%s:%s", filter.StartDate, filter.EndDate)
}

func forecastDataset(forecasts ...models.ForecastRequest) export.Dataset {
	dataset := export.Dataset{Headers: forecastHeaders}
	for _, f := range forecasts {
		dataset.AddRow(
			f.Date,
			f.FieldNumber,
			f.Area,
			f.Crop,
			f.Operations,
			strconv.Itoa(f.Men),
			strconv.Itoa(f.Women),
			strconv.Itoa(f.Total),
			f.Forecaster,
			f.Status(),
		)
	}
	return dataset
}

func approvalRequestMessage(f *models.ForecastRequest) string {
	return fmt.Sprintf("New request from %s (Field %s) needs approval", f.Forecaster, f.FieldNumber)
}

func approvedMessage(f *models.ForecastRequest) string {
	return fmt.Sprintf("Your request for Field %s was approved", f.FieldNumber)
}
