package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blog-platform-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// respondError maps a service error to its status code and body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if errs := validationErrors(err); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "validation failed",
			"errors": errs,
		})
		return
	}

	var authErr *models.AuthError
	switch {
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"status": authErr.Message})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "Not Found"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal server error"})
	}
}

// validationErrors flattens a single or aggregated validation failure
func validationErrors(err error) []*models.ValidationError {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var out []*models.ValidationError
		for _, e := range merr.Errors {
			out = append(out, validationErrors(e)...)
		}
		return out
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return []*models.ValidationError{verr}
	}
	return nil
}

func authMessage(err error) string {
	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return "unauthorized"
}

// parseID reads the :id path parameter, writing a 400 if it is not an integer
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "id must be an integer"})
		return 0, false
	}
	return id, true
}
