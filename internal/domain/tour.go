package domain

import (
	"fmt"
	"time"
)

// TourSnapshot is a read-only projection of a tour fetched once per page load.
// It is never mutated locally.
type TourSnapshot struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Price            float64   `json:"price"`
	MaxGroupSize     int       `json:"maxGroupSize"`
	CurrentGroupSize int       `json:"currentGroupSize"`
	IsActive         bool      `json:"isActive"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Destination      string    `json:"destination"`
	City             string    `json:"city"`
	Duration         int       `json:"duration"`
}

// Validate checks maxGroupSize >= currentGroupSize >= 0.
func (t *TourSnapshot) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: tour id is empty", ErrInvalidSnapshot)
	}
	if t.CurrentGroupSize < 0 {
		return fmt.Errorf("%w: currentGroupSize=%d is negative", ErrInvalidSnapshot, t.CurrentGroupSize)
	}
	if t.MaxGroupSize < t.CurrentGroupSize {
		return fmt.Errorf("%w: maxGroupSize=%d is less than currentGroupSize=%d",
			ErrInvalidSnapshot, t.MaxGroupSize, t.CurrentGroupSize)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: price=%.2f is negative", ErrInvalidSnapshot, t.Price)
	}
	return nil
}

// TourFilter catalog search parameters
type TourFilter struct {
	SearchTerm  string
	Destination string
	City        string
	MinPrice    *float64
	MaxPrice    *float64
	StartFrom   *time.Time
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

// CacheKey returns a stable string for request deduplication.
func (f TourFilter) CacheKey() string {
	key := fmt.Sprintf("q=%s|d=%s|c=%s|p=%d|l=%d|s=%s:%s",
		f.SearchTerm, f.Destination, f.City, f.Page, f.Limit, f.SortBy, f.SortOrder)
	if f.MinPrice != nil {
		key += fmt.Sprintf("|min=%.2f", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		key += fmt.Sprintf("|max=%.2f", *f.MaxPrice)
	}
	if f.StartFrom != nil {
		key += "|from=" + f.StartFrom.Format(DateFormat)
	}
	return key
}

// TourPage one page of the catalog
type TourPage struct {
	Tours []TourSnapshot `json:"tours"`
	Meta  PageMeta       `json:"meta"`
}

// PageMeta pagination data returned by the gateway
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
