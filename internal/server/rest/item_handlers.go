package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *HTTPServer) pageRequest(c *gin.Context) (models.PageRequest, bool) {
	page, err := parsePageRequest(c.Query("page"), c.Query("size"), c.Query("sort"))
	if err != nil {
		s.abortWithError(c, err)
		return page, false
	}
	return page, true
}

// itemID reads the :id path parameter and rejects anything but a UUID.
func (s *HTTPServer) itemID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, invalid(fmt.Errorf("id: must be a valid UUID")))
		return "", false
	}
	return id.String(), true
}

func (s *HTTPServer) listItems(c *gin.Context) {
	page, ok := s.pageRequest(c)
	if !ok {
		return
	}

	result, err := s.items.List(c.Request.Context(), page)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(result))
}

func (s *HTTPServer) searchItems(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		s.abortWithError(c, invalid(fmt.Errorf("query: cannot be blank")))
		return
	}

	var status *models.ItemStatus
	if raw := c.Query("status"); raw != "" {
		st := models.ItemStatus(raw)
		if !st.IsValid() {
			s.abortWithError(c, invalid(fmt.Errorf("status: must be AVAILABLE or CLAIMED")))
			return
		}
		status = &st
	}

	page, ok := s.pageRequest(c)
	if !ok {
		return
	}

	result, err := s.items.Search(c.Request.Context(), query, status, page)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(result))
}

func (s *HTTPServer) getItem(c *gin.Context) {
	id, ok := s.itemID(c)
	if !ok {
		return
	}

	item, err := s.items.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newItemResponse(item))
}

func (s *HTTPServer) registerItem(c *gin.Context) {
	if !s.require(c, OpRegisterItem) {
		return
	}

	var req registerItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}

	if _, err := s.items.Register(c.Request.Context(), req.toNewItem()); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (s *HTTPServer) claimItem(c *gin.Context) {
	if !s.require(c, OpClaimItem) {
		return
	}

	var req claimItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.abortWithError(c, invalid(err))
		return
	}

	if _, err := s.items.Claim(c.Request.Context(), req.ID); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *HTTPServer) requestImageUpload(c *gin.Context) {
	if !s.require(c, OpItemImage) {
		return
	}

	id, ok := s.itemID(c)
	if !ok {
		return
	}

	upload, err := s.images.RequestUpload(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": upload.Key, "upload_url": upload.URL})
}
