package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	dairyerr "github.com/amterp/dairy/internal/errors"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var (
		alreadyExists *dairyerr.AlreadyExistsError
		validation    *dairyerr.ValidationError
		unauthorized  *dairyerr.UnauthorizedError
		forbidden     *dairyerr.ForbiddenError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &alreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error writes an error response and aborts the request. Store failures
// are reported without their file paths.
func Error(c *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal error"
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Basic realm="dairy"`)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// BadRequest writes a 400 error with the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
