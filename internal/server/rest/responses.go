package rest

import (
	"time"

	"github.com/dmitrijs2005/ufind/internal/server/models"
)

type itemResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DateFound     string    `json:"dateFound"`
	LocationFound string    `json:"locationFound"`
	Status        string    `json:"status"`
	ImageURL      *string   `json:"imageUrl"`
	ContactInfo   *string   `json:"contactInfo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newItemResponse(it *models.Item) itemResponse {
	return itemResponse{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		DateFound:     it.DateFound.Format(models.DateLayout),
		LocationFound: it.LocationFound,
		Status:        string(it.Status),
		ImageURL:      it.ImageURL,
		ContactInfo:   it.ContactInfo,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

type pageResponse struct {
	Content       []itemResponse `json:"content"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

func newPageResponse(p *models.Page) pageResponse {
	out := pageResponse{
		Content:       make([]itemResponse, 0, len(p.Items)),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
	for _, it := range p.Items {
		out.Content = append(out.Content, newItemResponse(it))
	}
	return out
}
