package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	"github.com/noah-isme/farm-register-api/pkg/response"
)

type memberService interface {
	List(ctx context.Context, actor *models.JWTClaims) ([]models.Member, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateMemberRequest) (*models.Member, error)
}

type attendanceService interface {
	List(ctx context.Context, actor *models.JWTClaims, filter models.AttendanceFilter) ([]models.Attendance, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateAttendanceRequest) (*models.Attendance, error)
	CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkAttendanceRequest) ([]models.Attendance, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

// RegisterHandler exposes the member and attendance registers.
type RegisterHandler struct {
	members    memberService
	attendance attendanceService
}

// NewRegisterHandler constructs a RegisterHandler.
func NewRegisterHandler(members memberService, attendance attendanceService) *RegisterHandler {
	return &RegisterHandler{members: members, attendance: attendance}
}

// ListMembers godoc
// @Summary List members
// @Tags Registers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /members [get]
func (h *RegisterHandler) ListMembers(c *gin.Context) {
	items, err := h.members.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateMember godoc
// @Summary Add a member
// @Tags Registers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateMemberRequest true "Member"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members [post]
func (h *RegisterHandler) CreateMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid member payload"))
		return
	}
	member, err := h.members.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// ListAttendance godoc
// @Summary List attendance
// @Tags Registers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *RegisterHandler) ListAttendance(c *gin.Context) {
	h.listAttendance(c, models.AttendanceFilter{})
}

// FilterAttendance godoc
// @Summary Filter attendance
// @Description A complete date window wins over year and month.
// @Tags Registers
// @Produce json
// @Security BearerAuth
// @Param name query string false "Member name"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param year query string false "YYYY"
// @Param month query string false "1-12"
// @Success 200 {object} response.Envelope
// @Router /attendance/filter [get]
func (h *RegisterHandler) FilterAttendance(c *gin.Context) {
	h.listAttendance(c, models.AttendanceFilter{
		Name:      c.Query("name"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Year:      c.Query("year"),
		Month:     c.Query("month"),
	})
}

func (h *RegisterHandler) listAttendance(c *gin.Context, filter models.AttendanceFilter) {
	items, err := h.attendance.List(c.Request.Context(), claimsFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateAttendance godoc
// @Summary Record attendance
// @Tags Registers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAttendanceRequest true "Attendance"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *RegisterHandler) CreateAttendance(c *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// BulkAttendance godoc
// @Summary Record attendance for several members
// @Tags Registers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body []dto.CreateAttendanceRequest true "Attendance entries"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance/bulk [post]
func (h *RegisterHandler) BulkAttendance(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req.Records); err != nil {
		response.Error(c, invalidBody(err, "invalid bulk attendance payload"))
		return
	}
	records, err := h.attendance.CreateBulk(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, records)
}

// DeleteAttendance godoc
// @Summary Delete an attendance entry
// @Tags Registers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [delete]
func (h *RegisterHandler) DeleteAttendance(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "record deleted")
}
