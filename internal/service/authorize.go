package service

import (
	"github.com/google/uuid"

	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

// authorize fails unless actor holds one of roles. It runs before any lookup
// so a rejected caller never observes whether a record exists.
func authorize(actor *models.JWTClaims, roles ...models.UserRole) error {
	if actor == nil || actor.UserID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "insufficient role")
}

// requireID reports NOT_FOUND for ids that are not UUIDs. Postgres rejects
// those with 22P02 instead of returning no rows.
func requireID(id, resource string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return nil
}
