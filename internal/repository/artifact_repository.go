package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/farm-register-api/internal/models"
)

// ArtifactRepository stores approved CSV snapshots.
type ArtifactRepository struct {
	db *sqlx.DB
}

// NewArtifactRepository constructs the repository.
func NewArtifactRepository(db *sqlx.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Create inserts an artifact.
func (r *ArtifactRepository) Create(ctx context.Context, artifact *models.ApprovedCSV) error {
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO approved_csvs (id, forecast_id, csv_data, created_at) VALUES (:id, :forecast_id, :csv_data, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, artifact); err != nil {
		return fmt.Errorf("create approved csv: %w", err)
	}
	return nil
}

// List returns artifact summaries newest first. Artifacts whose forecast was
// deleted are kept with an empty field number.
func (r *ArtifactRepository) List(ctx context.Context) ([]models.ApprovedCSVSummary, error) {
	const query = `
SELECT
	a.id,
	a.forecast_id,
	COALESCE(f.field_number, '') AS field_number,
	a.created_at
FROM approved_csvs a
LEFT JOIN forecasts f ON f.id = a.forecast_id
ORDER BY a.created_at DESC`
	items := make([]models.ApprovedCSVSummary, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list approved csvs: %w", err)
	}
	return items, nil
}

// GetByID fetches an artifact with its CSV payload.
func (r *ArtifactRepository) GetByID(ctx context.Context, id string) (*models.ApprovedCSV, error) {
	const query = `SELECT id, forecast_id, csv_data, created_at FROM approved_csvs WHERE id = $1`
	var artifact models.ApprovedCSV
	if err := r.db.GetContext(ctx, &artifact, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get approved csv: %w", err)
	}
	return &artifact, nil
}
