package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type staticValidator map[string]*models.JWTClaims

func (v staticValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := v[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func newProtectedRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator := staticValidator{
		"admin-token":      {UserID: "a1", Role: models.RoleAdmin},
		"forecaster-token": {UserID: "f1", Role: models.RoleForecaster},
	}
	router := gin.New()
	router.Use(JWT(validator))
	router.PUT("/forecasts/:id/approve", RequireRoles(roles...), func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAndRoleGate(t *testing.T) {
	router := newProtectedRouter(models.RoleAdmin)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "forecaster", header: "Bearer forecaster-token", want: http.StatusForbidden},
		{name: "admin", header: "Bearer admin-token", want: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/forecasts/f1/approve", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/approved-artifacts", nil)

	RequireRoles(models.RoleAdmin)(c)

	if !c.IsAborted() || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected aborted 401, got %d", rec.Code)
	}
}

type recordingObserver struct {
	path   string
	status int
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.path = path
	r.status = status
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/approved-artifacts/:id/download", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/approved-artifacts/abc/download", nil))
	if observer.path != "/approved-artifacts/:id/download" || observer.status != http.StatusOK {
		t.Fatalf("unexpected observation: %+v", observer)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if observer.path != "unmatched" || observer.status != http.StatusNotFound {
		t.Fatalf("unexpected observation for unmatched route: %+v", observer)
	}
}
