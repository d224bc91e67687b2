package models

import "time"

// ItemStatus is the lifecycle state of a found item.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusClaimed   ItemStatus = "CLAIMED"
)

func (s ItemStatus) IsValid() bool {
	return s == ItemStatusAvailable || s == ItemStatusClaimed
}

// DateLayout is the wire and storage format of Item.DateFound.
const DateLayout = "2006-01-02"

// Item is a found-object record.
type Item struct {
	ID            string
	Title         string
	Description   string
	DateFound     time.Time
	LocationFound string
	Status        ItemStatus
	ImageURL      *string
	ContactInfo   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Page is one slice of an item listing.
type Page struct {
	Items         []*Item
	Number        int
	Size          int
	TotalElements int64
}

// TotalPages is the number of pages of Size needed for TotalElements.
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// PageRequest selects a page of a listing. Sort is a whitelisted column
// name and Desc its direction.
type PageRequest struct {
	Number int
	Size   int
	Sort   string
	Desc   bool
}

// NewItem carries the caller-supplied fields of an item being registered.
// An empty Status means AVAILABLE.
type NewItem struct {
	Title         string
	Description   string
	DateFound     time.Time
	LocationFound string
	Status        ItemStatus
	ImageURL      *string
	ContactInfo   *string
}
