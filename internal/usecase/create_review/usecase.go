package create_review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// UseCase use case отзыва на завершенное бронирование
type UseCase struct {
	gateway  GatewayClient
	notifier Notifier
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway GatewayClient, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// CheckEligibility загружает бронирование и решает, можно ли показать форму отзыва
func (uc *UseCase) CheckEligibility(ctx context.Context, req *EligibilityRequest) (*domain.ReviewEligibility, error) {
	uc.logger.Info("CheckReviewEligibility: booking=%s, user=%s", req.BookingID, req.Session.UserID)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	booking, err := uc.gateway.GetBooking(ctx, req.Session, req.BookingID)
	if err != nil {
		if !errors.Is(err, gatewayClient.ErrNotFound) {
			uc.logger.Error("CheckReviewEligibility: failed to get booking=%s: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		uc.logger.Warn("CheckReviewEligibility: booking=%s not found", req.BookingID)
		booking = nil
	}

	eligibility := domain.CheckReviewEligibility(booking)
	if !eligibility.Eligible() {
		uc.logger.Info("CheckReviewEligibility: booking=%s is not eligible, reason=%s", req.BookingID, eligibility.Reason)
	}
	return &eligibility, nil
}

// Execute повторно проверяет право на отзыв, валидирует форму и создает отзыв
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReview: booking=%s, rating=%d, user=%s", req.BookingID, req.Rating, req.Session.UserID)

	// 1. Право на отзыв
	eligibility, err := uc.CheckEligibility(ctx, &EligibilityRequest{Session: req.Session, BookingID: req.BookingID})
	if err != nil {
		return nil, err
	}
	resp := &Response{Eligibility: *eligibility, Errors: domain.ValidationErrors{}}
	if !eligibility.Eligible() {
		resp.Message = eligibility.Message
		return resp, nil
	}

	// 2. Валидация формы до сетевого вызова
	draft := domain.ReviewDraft{BookingID: req.BookingID, Rating: req.Rating, Comment: req.Comment}
	if errs := draft.Validate(); !errs.Empty() {
		_, msg, _ := errs.First(domain.FieldRating, domain.FieldComment)
		uc.logger.Warn("CreateReview: form invalid for booking=%s: %s", req.BookingID, msg)
		uc.notifier.Error(req.Session.ID, msg)
		resp.Errors = errs
		return resp, nil
	}

	// 3. Создаем отзыв
	result, err := uc.gateway.CreateReview(ctx, req.Session, domain.CreateReviewRequest{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	})
	if err != nil {
		if envErr, ok := gatewayClient.AsEnvelopeError(err); ok {
			message := envErr.Message
			if message == "" {
				message = MsgReviewFailed
			}
			uc.logger.Warn("CreateReview: rejected for booking=%s: %s", req.BookingID, message)
			resp.Errors.MergeServer(envErr.Errors)
			resp.Message = message
			uc.notifier.Error(req.Session.ID, message)
			return resp, nil
		}

		uc.logger.Error("CreateReview: gateway call failed for booking=%s: %v", req.BookingID, err)
		uc.notifier.Error(req.Session.ID, MsgReviewFailed)
		return nil, fmt.Errorf("%w: failed to create review: %v", ErrInternal, err)
	}

	resp.Message = MsgReviewCreated
	if result.Message != "" {
		resp.Message = result.Message
	}
	resp.Review = result.Data
	resp.Created = true
	resp.Redirect = domain.PathMyBookings
	uc.notifier.Success(req.Session.ID, resp.Message)

	uc.logger.Info("CreateReview: review created for booking=%s", req.BookingID)
	return resp, nil
}
