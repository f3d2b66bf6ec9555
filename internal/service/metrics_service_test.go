package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/forecasts", http.StatusCreated, 10*time.Millisecond)
	m.ForecastSubmitted()
	m.ApprovalDecided(true)
	m.ApprovalDecided(false)
	m.NotificationsCreated("approval_request", 3)
	m.NotificationsCreated("approved", 0)
	m.PartialCompletion("store_artifact")
	m.RecordCacheLookup(true, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="POST",path="/api/v1/forecasts",status="201"} 1`)
	assert.Contains(t, body, "farm_forecasts_submitted_total 1")
	assert.Contains(t, body, `farm_approval_decisions_total{decision="declined"} 1`)
	assert.Contains(t, body, `farm_notifications_created_total{kind="approval_request"} 3`)
	assert.NotContains(t, body, `kind="approved"`)
	assert.Contains(t, body, `farm_partial_completions_total{stage="store_artifact"} 1`)
	assert.Contains(t, body, `cache_lookups_total{result="hit"} 1`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ForecastSubmitted()
		m.ApprovalDecided(true)
		m.PartialCompletion("x")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
