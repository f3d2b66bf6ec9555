package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	"github.com/noah-isme/farm-register-api/pkg/response"
)

type artifactService interface {
	List(ctx context.Context, actor *models.JWTClaims) ([]models.ApprovedCSVSummary, error)
	Download(ctx context.Context, actor *models.JWTClaims, id string) (*dto.ExportResult, error)
}

// ArtifactHandler serves approved CSV artifacts.
type ArtifactHandler struct {
	service artifactService
}

// NewArtifactHandler constructs an ArtifactHandler.
func NewArtifactHandler(svc artifactService) *ArtifactHandler {
	return &ArtifactHandler{service: svc}
}

// List godoc
// @Summary List approved CSV artifacts
// @Tags Approved CSVs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /approved-artifacts [get]
func (h *ArtifactHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Download godoc
// @Summary Download an approved CSV
// @Tags Approved CSVs
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Artifact ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /approved-artifacts/{id}/download [get]
func (h *ArtifactHandler) Download(c *gin.Context) {
	result, err := h.service.Download(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}
