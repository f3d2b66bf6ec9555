package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/farm-register-api/internal/middleware"
	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentUser(c)
}

func invalidBody(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}
