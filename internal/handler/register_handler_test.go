package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type mockMemberService struct {
	created *dto.CreateMemberRequest
	err     error
}

func (m *mockMemberService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Member, error) {
	return []models.Member{{ID: "m-1", Name: "Ama", Type: models.MemberPermanent}}, m.err
}

func (m *mockMemberService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateMemberRequest) (*models.Member, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Member{ID: "m-2", Name: req.Name, Type: req.Type}, nil
}

type mockAttendanceService struct {
	filter    models.AttendanceFilter
	bulk      dto.BulkAttendanceRequest
	deletedID string
	err       error
}

func (m *mockAttendanceService) List(ctx context.Context, actor *models.JWTClaims, filter models.AttendanceFilter) ([]models.Attendance, error) {
	m.filter = filter
	return []models.Attendance{}, m.err
}

func (m *mockAttendanceService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	return &models.Attendance{ID: "a-1", Name: req.Name}, m.err
}

func (m *mockAttendanceService) CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkAttendanceRequest) ([]models.Attendance, error) {
	m.bulk = req
	return make([]models.Attendance, len(req.Records)), m.err
}

func (m *mockAttendanceService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	m.deletedID = id
	return m.err
}

func TestRegisterHandlerCreateMemberConflict(t *testing.T) {
	members := &mockMemberService{err: appErrors.Clone(appErrors.ErrConflict, "member already exists")}
	h := NewRegisterHandler(members, &mockAttendanceService{})

	c, w := newTestContext(http.MethodPost, "/members", `{"name":"Ama","type":"Permanent"}`)
	h.CreateMember(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, members.created)
	assert.Equal(t, "Ama", members.created.Name)
}

func TestRegisterHandlerListMembers(t *testing.T) {
	h := NewRegisterHandler(&mockMemberService{}, &mockAttendanceService{})

	c, w := newTestContext(http.MethodGet, "/members", "")
	h.ListMembers(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Ama"`)
}

func TestRegisterHandlerFilterAttendance(t *testing.T) {
	attendance := &mockAttendanceService{}
	h := NewRegisterHandler(&mockMemberService{}, attendance)

	c, w := newTestContext(http.MethodGet, "/attendance/filter?name=Ama&year=2024&month=5", "")
	h.FilterAttendance(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AttendanceFilter{Name: "Ama", Year: "2024", Month: "5"}, attendance.filter)
}

func TestRegisterHandlerBulkAttendanceBindsArray(t *testing.T) {
	attendance := &mockAttendanceService{}
	h := NewRegisterHandler(&mockMemberService{}, attendance)

	body := `[{"name":"Ama","type":"Permanent","date":"2024-05-01","attendance":"Present"},{"name":"Kofi","type":"Temporary","date":"2024-05-01","attendance":"Absent"}]`
	c, w := newTestContext(http.MethodPost, "/attendance/bulk", body)
	h.BulkAttendance(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, attendance.bulk.Records, 2)
	assert.Equal(t, "Kofi", attendance.bulk.Records[1].Name)
}

func TestRegisterHandlerBulkAttendanceRejectsObject(t *testing.T) {
	h := NewRegisterHandler(&mockMemberService{}, &mockAttendanceService{})

	c, w := newTestContext(http.MethodPost, "/attendance/bulk", `{"name":"Ama"}`)
	h.BulkAttendance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w))
}

func TestRegisterHandlerDeleteAttendance(t *testing.T) {
	attendance := &mockAttendanceService{}
	h := NewRegisterHandler(&mockMemberService{}, attendance)

	c, w := newTestContext(http.MethodDelete, "/attendance/a-7", "")
	c.Params = gin.Params{{Key: "id", Value: "a-7"}}
	h.DeleteAttendance(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a-7", attendance.deletedID)
}
