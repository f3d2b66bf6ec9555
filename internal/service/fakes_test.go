package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

var (
	adminActor      = &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	forecasterActor = &models.JWTClaims{UserID: "forecaster-1", Role: models.RoleForecaster}
	errStore        = errors.New("store unavailable")
)

type forecastRepoFake struct {
	items     map[string]*models.ForecastRequest
	seq       int
	getCalls  int
	listCalls int
	createErr error
	setErr    error
}

func newForecastRepoFake() *forecastRepoFake {
	return &forecastRepoFake{items: map[string]*models.ForecastRequest{}}
}

func (f *forecastRepoFake) Create(ctx context.Context, forecast *models.ForecastRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	forecast.ID = uuid.NewString()
	forecast.CreatedAt = time.Now()
	stored := *forecast
	f.items[forecast.ID] = &stored
	return nil
}

func (f *forecastRepoFake) GetByID(ctx context.Context, id string) (*models.ForecastRequest, error) {
	f.getCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *item
	return &copied, nil
}

func (f *forecastRepoFake) List(ctx context.Context, filter models.ForecastFilter) ([]models.ForecastRequest, error) {
	f.listCalls++
	out := make([]models.ForecastRequest, 0, len(f.items))
	for _, item := range f.items {
		if filter.HasRange() && (item.Date < filter.StartDate || item.Date > filter.EndDate) {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *forecastRepoFake) SetApproval(ctx context.Context, id string, approved bool) (*models.ForecastRequest, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.IsApproved = approved
	copied := *item
	return &copied, nil
}

func (f *forecastRepoFake) Update(ctx context.Context, forecast *models.ForecastRequest) (*models.ForecastRequest, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}
	item, ok := f.items[forecast.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	total, approved, submittedBy := item.Total, item.IsApproved, item.SubmittedBy
	*item = *forecast
	item.Total, item.IsApproved, item.SubmittedBy = total, approved, submittedBy
	item.UpdatedAt = time.Now()
	copied := *item
	return &copied, nil
}

func (f *forecastRepoFake) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type adminDirectoryFake struct {
	ids []string
	err error
}

func (f adminDirectoryFake) ListActiveIDsByRole(ctx context.Context, role models.UserRole) ([]string, error) {
	if role != models.RoleAdmin {
		return nil, nil
	}
	return f.ids, f.err
}

type notificationRepoFake struct {
	items      []models.Notification
	batchCalls int
	createErr  error
	batchErr   error
}

func (f *notificationRepoFake) Create(ctx context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(n)
	return nil
}

func (f *notificationRepoFake) CreateBatch(ctx context.Context, items []models.Notification) error {
	f.batchCalls++
	if f.batchErr != nil {
		return f.batchErr
	}
	for i := range items {
		f.add(&items[i])
	}
	return nil
}

func (f *notificationRepoFake) add(n *models.Notification) {
	n.ID = "n" + strconv.Itoa(len(f.items)+1)
	n.CreatedAt = time.Now().Add(time.Duration(len(f.items)) * time.Millisecond)
	f.items = append(f.items, *n)
}

func (f *notificationRepoFake) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	out := make([]models.Notification, 0)
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *notificationRepoFake) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var changed int64
	for i := range f.items {
		if f.items[i].UserID == userID && !f.items[i].Read {
			f.items[i].Read = true
			changed++
		}
	}
	return changed, nil
}

func (f *notificationRepoFake) forUser(userID string) []models.Notification {
	items, _ := f.ListByUser(context.Background(), userID)
	return items
}

type artifactRepoFake struct {
	items     []models.ApprovedCSV
	createErr error
}

func (f *artifactRepoFake) Create(ctx context.Context, artifact *models.ApprovedCSV) error {
	if f.createErr != nil {
		return f.createErr
	}
	artifact.ID = uuid.NewString()
	artifact.CreatedAt = time.Now()
	f.items = append(f.items, *artifact)
	return nil
}

func (f *artifactRepoFake) List(ctx context.Context) ([]models.ApprovedCSVSummary, error) {
	out := make([]models.ApprovedCSVSummary, 0, len(f.items))
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, models.ApprovedCSVSummary{ID: f.items[i].ID, ForecastID: f.items[i].ForecastID, CreatedAt: f.items[i].CreatedAt})
	}
	return out, nil
}

func (f *artifactRepoFake) GetByID(ctx context.Context, id string) (*models.ApprovedCSV, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			copied := f.items[i]
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

type cacheRepoFake struct {
	values      map[string]interface{}
	invalidated []string
}

func newCacheRepoFake() *cacheRepoFake {
	return &cacheRepoFake{values: map[string]interface{}{}}
}

func (f *cacheRepoFake) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := f.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if out, ok := dest.(*[]models.ForecastRequest); ok {
		*out = value.([]models.ForecastRequest)
	}
	return nil
}

func (f *cacheRepoFake) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *cacheRepoFake) DeleteByPattern(ctx context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	f.values = map[string]interface{}{}
	return nil
}
