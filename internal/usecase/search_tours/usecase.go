package search_tours

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/pkg/fence"
)

// UseCase use case поиска по каталогу туров
// Одинаковые одновременные запросы схлопываются в один вызов бэкенда,
// ответы на устаревшие запросы сессии отбрасываются
type UseCase struct {
	gateway      GatewayClient
	fence        *fence.Fence
	group        singleflight.Group
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway GatewayClient, fence *fence.Fence, logger Logger) *UseCase {
	return &UseCase{
		gateway:      gateway,
		fence:        fence,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет поиск и применяет результат, только если запрос сессии последний
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter, err := normalizeFilter(req.Filter)
	if err != nil {
		uc.logger.Warn("SearchTours: invalid filter: %v", err)
		return nil, err
	}

	resp := &Response{RequestID: uuid.NewString()}
	key := filter.CacheKey()
	uc.logger.Info("SearchTours: request=%s, session=%s, filter=%s", resp.RequestID, req.Session.ID, key)

	// 1. Тикет выдается до вызова: более поздний запрос сессии делает этот устаревшим
	var ticket fence.Ticket
	fenced := req.Session.ID != ""
	if fenced {
		ticket = uc.fence.Issue(req.Session.ID + ":" + catalogView)
	}

	// 2. Общий вызов бэкенда; отключение одного клиента не прерывает остальных
	ch := uc.group.DoChan(key, func() (interface{}, error) {
		return uc.gateway.SearchTours(context.WithoutCancel(ctx), filter)
	})

	var page *domain.TourPage
	select {
	case <-ctx.Done():
		uc.logger.Warn("SearchTours: request=%s cancelled: %v", resp.RequestID, ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			uc.logger.Error("SearchTours: request=%s failed: %v", resp.RequestID, res.Err)
			return nil, fmt.Errorf("%w: failed to search tours: %v", ErrInternal, res.Err)
		}
		page = res.Val.(*domain.TourPage)
		if res.Shared {
			uc.logger.Info("SearchTours: request=%s shared an in-flight call", resp.RequestID)
		}
	}

	// 3. Применяем результат только для последнего запроса
	now := uc.timeProvider.Now()
	apply := func() {
		resp.Items = make([]CatalogItem, 0, len(page.Tours))
		for _, tour := range page.Tours {
			resp.Items = append(resp.Items, CatalogItem{
				Tour:         tour,
				Availability: domain.CalculateAvailability(tour, now),
			})
		}
		resp.Meta = page.Meta
	}

	if !fenced {
		apply()
		return resp, nil
	}
	if !uc.fence.Commit(ticket, apply) {
		uc.logger.Info("SearchTours: request=%s superseded, result discarded", resp.RequestID)
		resp.Stale = true
	}
	return resp, nil
}

// normalizeFilter проверяет диапазоны и подставляет значения по умолчанию
func normalizeFilter(f domain.TourFilter) (domain.TourFilter, error) {
	if f.Page < 0 || f.Limit < 0 {
		return f, fmt.Errorf("%w: page and limit must be positive", ErrInvalidInput)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return f, fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f, nil
}
