package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFrom returns the caller attached by the authentication filter.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok && id != nil
}

func identityOf(c *gin.Context) *models.Identity {
	id, _ := IdentityFrom(c.Request.Context())
	return id
}

// authenticate resolves the token cookie, if any, into an Identity. Requests
// without the cookie continue anonymously. A bad token clears the cookie and
// ends the request with 401.
func (s *HTTPServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.tokenFromRequest(c)
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		id, err := s.auth.Authenticate(ctx, token)
		if err != nil {
			if isTokenError(err) {
				s.logger.Info(ctx, "rejected token", "path", c.Request.URL.Path, "reason", err.Error())
				s.clearTokenCookie(c)
			}
			s.abortWithError(c, err)
			return
		}

		c.Set(string(identityKey), id)
		c.Request = c.Request.WithContext(context.WithValue(ctx, identityKey, id))
		c.Next()
	}
}

func isTokenError(err error) bool {
	return errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrTokenMalformed) ||
		errors.Is(err, common.ErrUnknownSubject)
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request failed", append(args, "errors", c.Errors.String())...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}
