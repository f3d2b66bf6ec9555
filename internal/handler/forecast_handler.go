package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	"github.com/noah-isme/farm-register-api/pkg/response"
)

type forecastService interface {
	Submit(ctx context.Context, actor *models.JWTClaims, req dto.SubmitForecastRequest) (*models.ForecastRequest, error)
	List(ctx context.Context, actor *models.JWTClaims, filter models.ForecastFilter) ([]models.ForecastRequest, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateForecastRequest) (*models.ForecastRequest, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	Export(ctx context.Context, actor *models.JWTClaims, filter models.ForecastFilter, format dto.ExportFormat) (*dto.ExportResult, error)
}

type approvalService interface {
	SetApproval(ctx context.Context, actor *models.JWTClaims, id string, approve bool) (*models.ForecastRequest, error)
}

// ForecastHandler exposes forecast submission, register and approval endpoints.
type ForecastHandler struct {
	forecasts forecastService
	approvals approvalService
}

// NewForecastHandler constructs a ForecastHandler.
func NewForecastHandler(forecasts forecastService, approvals approvalService) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts, approvals: approvals}
}

// Submit godoc
// @Summary Submit a forecast request
// @Description Stores the request and notifies every admin. Any client total is ignored.
// @Tags Forecasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubmitForecastRequest true "Forecast"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forecasts [post]
func (h *ForecastHandler) Submit(c *gin.Context) {
	var req dto.SubmitForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid forecast payload"))
		return
	}

	forecast, err := h.forecasts.Submit(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, forecast)
}

// List godoc
// @Summary List forecast requests
// @Tags Forecasts
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD, applied with endDate"
// @Param endDate query string false "YYYY-MM-DD, applied with startDate"
// @Success 200 {object} response.Envelope
// @Router /forecasts [get]
func (h *ForecastHandler) List(c *gin.Context) {
	items, err := h.forecasts.List(c.Request.Context(), claimsFromContext(c), forecastFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Export godoc
// @Summary Export the forecast register
// @Tags Forecasts
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /forecasts/export [get]
func (h *ForecastHandler) Export(c *gin.Context) {
	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportFormatCSV)))
	result, err := h.forecasts.Export(c.Request.Context(), claimsFromContext(c), forecastFilter(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}

// Approve godoc
// @Summary Approve a forecast request
// @Description Sets the approval flag, stores a CSV snapshot and notifies the submitter.
// @Tags Forecasts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Forecast ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forecasts/{id}/approve [put]
func (h *ForecastHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Decline godoc
// @Summary Decline a forecast request
// @Tags Forecasts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Forecast ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forecasts/{id}/decline [put]
func (h *ForecastHandler) Decline(c *gin.Context) {
	h.decide(c, false)
}

func (h *ForecastHandler) decide(c *gin.Context, approve bool) {
	forecast, err := h.approvals.SetApproval(c.Request.Context(), claimsFromContext(c), c.Param("id"), approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, forecast, nil)
}

// Update godoc
// @Summary Edit a forecast request
// @Description Changes only the fields sent. The stored total and approval flag stay as they are.
// @Tags Forecasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Forecast ID"
// @Param payload body dto.UpdateForecastRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forecasts/{id} [put]
func (h *ForecastHandler) Update(c *gin.Context) {
	var req dto.UpdateForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid forecast payload"))
		return
	}

	forecast, err := h.forecasts.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, forecast, nil)
}

// Delete godoc
// @Summary Delete a forecast request
// @Tags Forecasts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Forecast ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forecasts/{id} [delete]
func (h *ForecastHandler) Delete(c *gin.Context) {
	if err := h.forecasts.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "forecast deleted")
}

func forecastFilter(c *gin.Context) models.ForecastFilter {
	return models.ForecastFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}
