package rest

import (
	"net/http"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.setTokenCookie(c, token, s.auth.TokenTTL())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// register creates an account. Only administrators may call it and the new
// user is not logged in.
func (s *HTTPServer) register(c *gin.Context) {
	if !s.require(c, OpRegisterUser) {
		return
	}

	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}

	if _, err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Role); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (s *HTTPServer) logout(c *gin.Context) {
	s.clearTokenCookie(c)
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) me(c *gin.Context) {
	id := identityOf(c)
	if id == nil {
		s.abortWithError(c, common.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": id.Email, "role": string(id.Role)})
}
