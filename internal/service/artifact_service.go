package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type artifactReader interface {
	List(ctx context.Context) ([]models.ApprovedCSVSummary, error)
	GetByID(ctx context.Context, id string) (*models.ApprovedCSV, error)
}

// ArtifactService exposes stored approval CSVs to admins.
type ArtifactService struct {
	repo artifactReader
}

// NewArtifactService constructs an ArtifactService.
func NewArtifactService(repo artifactReader) *ArtifactService {
	return &ArtifactService{repo: repo}
}

// List returns artifact summaries newest first.
func (s *ArtifactService) List(ctx context.Context, actor *models.JWTClaims) ([]models.ApprovedCSVSummary, error) {
	if err := authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approved csvs")
	}
	return items, nil
}

// Download returns the stored CSV bytes unchanged.
func (s *ArtifactService) Download(ctx context.Context, actor *models.JWTClaims, id string) (*dto.ExportResult, error) {
	if err := authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id, "csv"); err != nil {
		return nil, err
	}
	artifact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "csv not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approved csv")
	}
	return &dto.ExportResult{
		Filename:    fmt.Sprintf("approved_%s.csv", artifact.ID),
		ContentType: "text/csv",
		Data:        []byte(artifact.CSVData),
	}, nil
}
