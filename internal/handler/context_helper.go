package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

// boolQuery reads a boolean query flag; anything unparsable counts as false.
func boolQuery(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && value
}
