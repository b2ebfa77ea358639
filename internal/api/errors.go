package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/service"
)

// statusFor maps a service error kind onto its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service error as JSON. Untyped errors never reach the client.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error, please try again later",
		})
		return
	}

	body := gin.H{"success": false, "message": svcErr.Message}
	if len(svcErr.Fields) > 0 {
		body["errors"] = svcErr.Fields
	}
	c.JSON(statusFor(err), body)
}

// badRequest reports a body that could not be decoded
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request body",
	})
}
