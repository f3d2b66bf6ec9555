package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/farm-register-api/internal/dto"
	"github.com/noah-isme/farm-register-api/internal/models"
	"github.com/noah-isme/farm-register-api/internal/repository"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type memberRepository interface {
	List(ctx context.Context) ([]models.Member, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, member *models.Member) error
}

// MemberService manages the worker register.
type MemberService struct {
	repo      memberRepository
	validator *validator.Validate
}

// NewMemberService constructs a MemberService.
func NewMemberService(repo memberRepository, validate *validator.Validate) *MemberService {
	if validate == nil {
		validate = NewValidator()
	}
	return &MemberService{repo: repo, validator: validate}
}

// List returns members sorted by name.
func (s *MemberService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Member, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch members")
	}
	return members, nil
}

// Create registers a member with a unique name.
func (s *MemberService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateMemberRequest) (*models.Member, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid member payload")
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check member name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "member name already exists")
	}

	member := &models.Member{Name: req.Name, Type: req.Type}
	if err := s.repo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "member name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add member")
	}
	return member, nil
}
