package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований и отзывов
type Service struct {
	gateway GatewayClient
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(gateway GatewayClient, logger Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// GetByID получает бронирование по ID
// Права доступа проверяет бэкенд: чужое бронирование приходит как 403
func (s *Service) GetByID(ctx context.Context, session domain.Session, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, session.UserID)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.gateway.GetBooking(ctx, session, id)
	if err != nil {
		switch {
		case errors.Is(err, gatewayClient.ErrNotFound):
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		case errors.Is(err, gatewayClient.ErrUnauthorized):
			s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", session.UserID, id)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetByID: gateway error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - gateway error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetMyBookings получает бронирования текущего пользователя
// Опционально фильтрует по статусу
func (s *Service) GetMyBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%s, status=%v", req.Session.UserID, req.Status)

	if req.Page < 0 || req.Limit < 0 {
		return nil, fmt.Errorf("%w: page and limit must be positive", ErrInvalidInput)
	}

	filter := domain.BookingsFilter{Page: req.Page, Limit: req.Limit}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMyBookings: invalid status=%s for user=%s", *req.Status, req.Session.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.gateway.GetMyBookings(ctx, req.Session, filter)
	if err != nil {
		if errors.Is(err, gatewayClient.ErrUnauthorized) {
			s.logger.Warn("GetMyBookings: session of user=%s rejected by backend", req.Session.UserID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetMyBookings: gateway error for user=%s: %v", req.Session.UserID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - gateway error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyBookings: successfully fetched %d bookings for user=%s", len(list.Bookings), req.Session.UserID)
	return models.FromGatewayList(list), nil
}

// GetTourReviews получает отзывы тура, сгруппированные по оценке
// При недоступности бэкенда возвращается пустая сводка: отзывы не критичны для страницы тура
func (s *Service) GetTourReviews(ctx context.Context, tourID string) (*domain.ReviewSummary, error) {
	s.logger.Info("GetTourReviews: fetching reviews for tour=%s", tourID)

	if strings.TrimSpace(tourID) == "" {
		return nil, fmt.Errorf("%w: tour id is required", ErrInvalidInput)
	}

	reviews, err := s.gateway.GetTourReviewsWithGracefulDegradation(ctx, tourID)
	if err != nil {
		switch {
		case errors.Is(err, gatewayClient.ErrServiceDegraded):
			s.logger.Warn("GetTourReviews: degraded for tour=%s, returning empty summary", tourID)
			summary := domain.SummarizeReviews(tourID, nil)
			return &summary, nil
		case errors.Is(err, gatewayClient.ErrNotFound):
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("%w: GetTourReviews - gateway error: %v", ErrInternal, err)
	}

	summary := domain.SummarizeReviews(tourID, reviews)
	s.logger.Info("GetTourReviews: tour=%s has %d reviews", tourID, summary.Total)
	return &summary, nil
}
