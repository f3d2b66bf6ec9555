package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farm-register-api/internal/models"
)

type mockNotificationService struct {
	marked bool
}

func (m *mockNotificationService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Notification, error) {
	return []models.Notification{{ID: "n-1", UserID: actor.UserID, Message: "hello"}}, nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, actor *models.JWTClaims) (int64, error) {
	m.marked = true
	return 2, nil
}

func TestNotificationHandlerMarkAllRead(t *testing.T) {
	svc := &mockNotificationService{}
	h := NewNotificationHandler(svc)

	c, w := newTestContext(http.MethodPut, "/notifications/mark-read", "")
	h.MarkAllRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.marked)
}
