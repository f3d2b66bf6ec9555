package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/farm-register-api/internal/models"
)

// MemberRepository persists the farm worker register.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs the repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns members sorted by name.
func (r *MemberRepository) List(ctx context.Context) ([]models.Member, error) {
	const query = `SELECT id, name, type, created_at, updated_at FROM members ORDER BY name ASC`
	members := make([]models.Member, 0)
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ExistsByName reports whether a member with the given name is registered.
func (r *MemberRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM members WHERE name = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check member name: %w", err)
	}
	return exists, nil
}

// Create inserts a member. A name collision yields ErrDuplicate.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	const query = `INSERT INTO members (id, name, type, created_at, updated_at) VALUES (:id, :name, :type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}
