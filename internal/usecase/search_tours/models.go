package search_tours

import "github.com/m04kA/SMC-TourBooking/internal/domain"

// Request модель запроса каталога
type Request struct {
	Session domain.Session
	Filter  domain.TourFilter
}

// CatalogItem тур вместе с рассчитанной доступностью
type CatalogItem struct {
	Tour         domain.TourSnapshot `json:"tour"`
	Availability domain.Availability `json:"availability"`
}

// Response страница каталога
// Stale - пока запрос выполнялся, та же сессия запросила каталог снова; Items не заполняются
type Response struct {
	RequestID string
	Items     []CatalogItem
	Meta      domain.PageMeta
	Stale     bool
}

const (
	DefaultLimit = 12
	MaxLimit     = 100

	catalogView = "catalog"
)
