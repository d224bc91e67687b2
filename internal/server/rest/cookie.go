package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// setTokenCookie stores token in an HttpOnly, SameSite=Strict cookie living
// as long as the token.
func (s *HTTPServer) setTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearTokenCookie emits an empty cookie with Max-Age=0.
func (s *HTTPServer) clearTokenCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// tokenFromRequest returns the first cookie carrying the token name.
func (s *HTTPServer) tokenFromRequest(c *gin.Context) (string, bool) {
	ck, err := c.Request.Cookie(s.cookie.Name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
