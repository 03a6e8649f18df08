package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

const (
	headerAuthorization  = "Authorization"
	headerIdempotencyKey = "Idempotency-Key"

	// maxErrorBody сколько байт тела логируем при неожиданном ответе
	maxErrorBody = 512
	// maxResponseBytes предел тела ответа бэкенда; остаток не читается
	maxResponseBytes = 4 << 20
)

// Client клиент для работы с бэкенд API (туры, бронирования, отзывы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	log        Logger
}

// Option настройка клиента
type Option func(*Client)

// WithObserver подключает сбор метрик вызовов
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithHTTPClient подменяет http.Client (тесты, кастомный транспорт)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient создает новый экземпляр клиента бэкенд API
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: nopObserver{},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSingleTour получает снимок тура
func (c *Client) GetSingleTour(ctx context.Context, session domain.Session, tourID string) (*domain.TourSnapshot, error) {
	res, err := call[domain.TourSnapshot](ctx, c, callSpec{
		operation: "get_single_tour",
		method:    http.MethodGet,
		path:      "/tours/" + url.PathEscape(tourID),
		session:   session,
	})
	if err != nil {
		return nil, err
	}
	// Успешный конверт без данных означает, что тура нет
	if res.Data == nil {
		return nil, fmt.Errorf("%w: tour %s: empty data", ErrNotFound, tourID)
	}
	if err := res.Data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return res.Data, nil
}

// SearchTours получает страницу каталога туров
func (c *Client) SearchTours(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
	res, err := call[tourListData](ctx, c, callSpec{
		operation: "search_tours",
		method:    http.MethodGet,
		path:      "/tours",
		query:     tourFilterQuery(filter),
	})
	if err != nil {
		return nil, err
	}

	page := &domain.TourPage{Tours: []domain.TourSnapshot{}}
	if res.Data != nil {
		if res.Data.Data != nil {
			page.Tours = res.Data.Data
		}
		page.Meta = res.Data.Meta
	}
	return page, nil
}

// CreateBooking создает бронирование
// idempotencyKey передается бэкенду, чтобы повтор запроса не создал второе бронирование
func (c *Client) CreateBooking(
	ctx context.Context,
	session domain.Session,
	req domain.CreateBookingRequest,
	idempotencyKey string,
) (*Result[domain.Booking], error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[headerIdempotencyKey] = idempotencyKey
	}

	return call[domain.Booking](ctx, c, callSpec{
		operation: "create_booking",
		method:    http.MethodPost,
		path:      "/bookings",
		session:   session,
		body:      req,
		headers:   headers,
	})
}

// UpdateBookingStatus меняет статус бронирования
func (c *Client) UpdateBookingStatus(
	ctx context.Context,
	session domain.Session,
	bookingID string,
	status domain.BookingStatus,
) (*Result[domain.Booking], error) {
	return call[domain.Booking](ctx, c, callSpec{
		operation: "update_booking_status",
		method:    http.MethodPatch,
		path:      "/bookings/" + url.PathEscape(bookingID) + "/status",
		session:   session,
		body:      UpdateBookingStatusRequest{Status: status},
	})
}

// GetBooking получает бронирование по ID
func (c *Client) GetBooking(ctx context.Context, session domain.Session, bookingID string) (*domain.Booking, error) {
	res, err := call[domain.Booking](ctx, c, callSpec{
		operation: "get_booking",
		method:    http.MethodGet,
		path:      "/bookings/" + url.PathEscape(bookingID),
		session:   session,
	})
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, fmt.Errorf("%w: booking %s: empty data", ErrInvalidResponse, bookingID)
	}
	return res.Data, nil
}

// GetMyBookings получает бронирования текущего пользователя
func (c *Client) GetMyBookings(ctx context.Context, session domain.Session, filter domain.BookingsFilter) (*BookingList, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	setPositive(query, "page", filter.Page)
	setPositive(query, "limit", filter.Limit)

	res, err := call[bookingListData](ctx, c, callSpec{
		operation: "get_my_bookings",
		method:    http.MethodGet,
		path:      "/bookings/my-bookings",
		session:   session,
		query:     query,
	})
	if err != nil {
		return nil, err
	}

	list := &BookingList{Bookings: []domain.Booking{}}
	if res.Data != nil {
		if res.Data.Data != nil {
			list.Bookings = res.Data.Data
		}
		list.Meta = res.Data.Meta
	}
	return list, nil
}

// CreateReview создает отзыв на завершенное бронирование
func (c *Client) CreateReview(ctx context.Context, session domain.Session, req domain.CreateReviewRequest) (*Result[domain.Review], error) {
	return call[domain.Review](ctx, c, callSpec{
		operation: "create_review",
		method:    http.MethodPost,
		path:      "/reviews",
		session:   session,
		body:      req,
	})
}

// GetTourReviews получает отзывы тура
func (c *Client) GetTourReviews(ctx context.Context, tourID string) ([]domain.Review, error) {
	query := url.Values{}
	query.Set("tourId", tourID)

	res, err := call[[]domain.Review](ctx, c, callSpec{
		operation: "get_tour_reviews",
		method:    http.MethodGet,
		path:      "/reviews",
		query:     query,
	})
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []domain.Review{}, nil
	}
	return *res.Data, nil
}

// GetTourReviewsWithGracefulDegradation получает отзывы тура с graceful degradation
// Отзывы не критичны для страницы тура: при недоступности бэкенда возвращается ErrServiceDegraded
func (c *Client) GetTourReviewsWithGracefulDegradation(ctx context.Context, tourID string) ([]domain.Review, error) {
	reviews, err := c.GetTourReviews(ctx, tourID)
	if err != nil {
		// Тур не найден - это бизнес-ошибка, пробрасываем её дальше
		if errorsIsNotFound(err) {
			c.log.Info("No reviews found for tour_id=%s", tourID)
			return nil, err
		}

		c.log.Error("Gateway unavailable, applying graceful degradation for reviews of tour_id=%s: %v", tourID, err)
		return nil, fmt.Errorf("%w: tour_id=%s, error=%v", ErrServiceDegraded, tourID, err)
	}

	return reviews, nil
}

// callSpec параметры одного вызова бэкенда
type callSpec struct {
	operation string
	method    string
	path      string
	session   domain.Session
	query     url.Values
	body      interface{}
	headers   map[string]string
}

// call выполняет запрос и разбирает конверт {success, message, data, errors}
// При success:false возвращает *EnvelopeError, при транспортных ошибках - ErrInternal
func call[T any](ctx context.Context, c *Client, op callSpec) (result *Result[T], err error) {
	started := time.Now()
	defer func() {
		c.observer.ObserveGatewayCall(op.operation, outcomeOf(err), time.Since(started))
	}()

	endpoint := c.baseURL + op.path
	if len(op.query) > 0 {
		endpoint += "?" + op.query.Encode()
	}

	var body io.Reader
	if op.body != nil {
		payload, err := json.Marshal(op.body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if op.session.AccessToken != "" {
		req.Header.Set(headerAuthorization, "Bearer "+op.session.AccessToken)
	}
	for k, v := range op.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s: %s %s failed: %v", op.operation, op.method, op.path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	var envelope domain.Envelope[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// Тело без конверта: различаем только 404 и 401, остальное - некорректный ответ
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, ErrUnauthorized
		}
		c.log.Warn("%s: undecodable response status=%d body=%s", op.operation, resp.StatusCode, truncate(raw))
		return nil, fmt.Errorf("%w: status %d: failed to decode response: %v: %s",
			ErrInvalidResponse, resp.StatusCode, err, truncate(raw))
	}

	if !envelope.Success {
		c.log.Warn("%s: rejected status=%d message=%q", op.operation, resp.StatusCode, envelope.Message)
		return nil, &EnvelopeError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Message,
			Errors:     envelope.Errors,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: success envelope with status %d", ErrInvalidResponse, resp.StatusCode)
	}

	return &Result[T]{Data: envelope.Data, Message: envelope.Message}, nil
}

func tourFilterQuery(f domain.TourFilter) url.Values {
	q := url.Values{}
	setNonEmpty(q, "searchTerm", f.SearchTerm)
	setNonEmpty(q, "destination", f.Destination)
	setNonEmpty(q, "city", f.City)
	setNonEmpty(q, "sortBy", f.SortBy)
	setNonEmpty(q, "sortOrder", f.SortOrder)
	setPositive(q, "page", f.Page)
	setPositive(q, "limit", f.Limit)
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.StartFrom != nil {
		q.Set("startDate", f.StartFrom.Format(domain.DateFormat))
	}
	return q
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setPositive(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errorsIsNotFound(err):
		return "not_found"
	case isRejected(err):
		return "rejected"
	default:
		return "error"
	}
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
