package rest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// maxPageNumber keeps page*size within int for any accepted size.
const maxPageNumber = math.MaxInt / common.MaxPageSize

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, models.EmailRule),
		validation.Field(&r.Password, validation.Required),
	)
}

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r registerUserRequest) Validate() error {
	// An empty or unknown role is left to the service, which answers
	// both with common.ErrInvalidRole.
	return models.ValidateRegistration(r.Username, r.Email, r.Password)
}

type registerItemRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DateFound     string  `json:"dateFound"`
	LocationFound string  `json:"locationFound"`
	Status        string  `json:"status"`
	ImageURL      *string `json:"imageUrl"`
	ContactInfo   *string `json:"contactInfo"`
}

func (r registerItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&r.DateFound, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&r.LocationFound, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.Status, validation.In(string(models.ItemStatusAvailable), string(models.ItemStatusClaimed))),
		validation.Field(&r.ImageURL, validation.NilOrNotEmpty),
		validation.Field(&r.ContactInfo, validation.NilOrNotEmpty, validation.RuneLength(0, 255)),
	)
}

// toNewItem assumes Validate passed.
func (r registerItemRequest) toNewItem() models.NewItem {
	found, _ := time.Parse(models.DateLayout, r.DateFound)
	return models.NewItem{
		Title:         strings.TrimSpace(r.Title),
		Description:   strings.TrimSpace(r.Description),
		DateFound:     found,
		LocationFound: strings.TrimSpace(r.LocationFound),
		Status:        models.ItemStatus(r.Status),
		ImageURL:      r.ImageURL,
		ContactInfo:   r.ContactInfo,
	}
}

type claimItemRequest struct {
	ID string `json:"id"`
}

func (r claimItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
	)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}

// sortFields lists the item fields a listing may be sorted by, keyed by
// their query-string name.
var sortFields = map[string]string{
	"title":      "title",
	"dateFound":  "date_found",
	"date_found": "date_found",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"status":     "status",
}

// parsePageRequest reads page, size and sort. Size is capped at
// common.MaxPageSize; sort is "field" or "field,asc|desc".
func parsePageRequest(page, size, sort string) (models.PageRequest, error) {
	req := models.PageRequest{Size: common.DefaultPageSize, Sort: "created_at", Desc: true}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return req, invalid(fmt.Errorf("page: must be a non-negative integer"))
		}
		if n > maxPageNumber {
			return req, invalid(fmt.Errorf("page: must be at most %d", maxPageNumber))
		}
		req.Number = n
	}

	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 {
			return req, invalid(fmt.Errorf("size: must be a positive integer"))
		}
		req.Size = min(n, common.MaxPageSize)
	}

	if sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		col, ok := sortFields[strings.TrimSpace(field)]
		if !ok {
			return req, invalid(fmt.Errorf("sort: unknown field %q", field))
		}
		req.Sort = col
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
			req.Desc = false
		case "desc":
			req.Desc = true
		default:
			return req, invalid(fmt.Errorf("sort: direction must be asc or desc"))
		}
	}

	return req, nil
}
