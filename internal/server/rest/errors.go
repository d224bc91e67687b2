package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/gin-gonic/gin"
)

// errorResponse maps an error to its status code and client message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired."
	case errors.Is(err, common.ErrTokenMalformed):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, common.ErrUnknownSubject):
		return http.StatusUnauthorized, "User not found."
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Bad Credentials."
	case errors.Is(err, common.ErrInvalidRole):
		return http.StatusUnauthorized, "Invalid role."
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required."
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "Access denied."
	case errors.Is(err, common.ErrDuplicateUser):
		return http.StatusBadRequest, "This user already exists."
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
