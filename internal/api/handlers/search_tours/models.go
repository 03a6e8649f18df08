package search_tours

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	searchTours "github.com/m04kA/SMC-TourBooking/internal/usecase/search_tours"
)

// CatalogResponse HTTP response model
type CatalogResponse struct {
	RequestID string                    `json:"requestId"`
	Tours     []searchTours.CatalogItem `json:"tours"`
	Meta      domain.PageMeta           `json:"meta"`
}

// ParseFilter собирает фильтр каталога из query string
func ParseFilter(q url.Values) (domain.TourFilter, error) {
	filter := domain.TourFilter{
		SearchTerm:  q.Get("search"),
		Destination: q.Get("destination"),
		City:        q.Get("city"),
		SortBy:      q.Get("sortBy"),
		SortOrder:   q.Get("sortOrder"),
	}

	var err error
	if filter.Page, err = parseInt(q, "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseInt(q, "limit"); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = parseFloat(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseFloat(q, "maxPrice"); err != nil {
		return filter, err
	}

	if raw := q.Get("startDate"); raw != "" {
		startFrom, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, fmt.Errorf("startDate: %w", err)
		}
		filter.StartFrom = &startFrom
	}

	return filter, nil
}

func parseInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchTours.Response) *CatalogResponse {
	items := resp.Items
	if items == nil {
		items = []searchTours.CatalogItem{}
	}
	return &CatalogResponse{
		RequestID: resp.RequestID,
		Tours:     items,
		Meta:      resp.Meta,
	}
}
