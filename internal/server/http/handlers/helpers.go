package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

const msgMalformedBody = "malformed request body"

// errorStatus maps a domain error to an HTTP status.
func errorStatus(err error) int {
	switch {
	case domainErrors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists), errors.Is(err, domainErrors.ErrDuplicateRequest):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the envelope for err. Unclassified errors are attached
// to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, dto.Fail(http.StatusText(status)))
		return
	}
	c.JSON(status, dto.Fail(err.Error()))
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, dto.OK(data))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Fail(message))
}
