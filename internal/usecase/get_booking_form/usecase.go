package get_booking_form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// UseCase use case для открытия формы бронирования тура
type UseCase struct {
	gateway      GatewayClient
	timeProvider TimeProvider
	newToken     func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway GatewayClient, logger Logger) *UseCase {
	return &UseCase{
		gateway:      gateway,
		timeProvider: &RealTimeProvider{},
		newToken:     uuid.NewString,
		logger:       logger,
	}
}

// Execute загружает снимок тура и вычисляет доступность
// Если тур нельзя забронировать, вместо формы возвращается Notice
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	return uc.load(ctx, req, "")
}

// Preview открывает форму и применяет к ней изменения черновика
// Правила те же, что при вводе: значение зажимается в [1, availableSpots], ошибки полей независимы
func (uc *UseCase) Preview(ctx context.Context, req *PreviewRequest) (*Response, error) {
	if req.Action != "" && req.Action != ActionIncrement && req.Action != ActionDecrement {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	resp, err := uc.load(ctx, &req.Request, req.Token)
	if err != nil || resp.Form == nil {
		return resp, err
	}

	form := resp.Form
	if req.NumberOfPeople != nil {
		form.SetNumberOfPeople(*req.NumberOfPeople)
	}
	switch req.Action {
	case ActionIncrement:
		form.Increment()
	case ActionDecrement:
		form.Decrement()
	}
	if req.SpecialRequests != nil {
		form.SetSpecialRequests(*req.SpecialRequests)
	}

	return resp, nil
}

func (uc *UseCase) load(ctx context.Context, req *Request, token string) (*Response, error) {
	uc.logger.Info("GetBookingForm: user=%s, tour=%s", req.Session.UserID, req.TourID)

	if strings.TrimSpace(req.TourID) == "" {
		return nil, fmt.Errorf("%w: tourID is required", ErrInvalidInput)
	}
	if token != "" {
		if _, err := uuid.Parse(token); err != nil {
			return nil, fmt.Errorf("%w: invalid submission token", ErrInvalidInput)
		}
	}

	tour, err := uc.gateway.GetSingleTour(ctx, req.Session, req.TourID)
	if err != nil {
		if errors.Is(err, gatewayClient.ErrNotFound) || errors.Is(err, gatewayClient.ErrRejected) {
			uc.logger.Warn("GetBookingForm: tour id=%s not found: %v", req.TourID, err)
			return nil, ErrTourNotFound
		}
		uc.logger.Error("GetBookingForm: failed to get tour id=%s: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	// Доступность вычисляется один раз: снимок неизменен до конца жизни формы
	availability := domain.CalculateAvailability(*tour, uc.timeProvider.Now())

	resp := &Response{
		Tour:         *tour,
		Availability: availability,
	}

	if notice := availability.Notice(*tour); notice != nil {
		uc.logger.Info("GetBookingForm: tour id=%s unavailable, reason=%s, spots=%d",
			tour.ID, notice.Reason, availability.AvailableSpots)
		resp.Notice = notice
		return resp, nil
	}

	if token == "" {
		token = uc.newToken()
	}

	form, err := domain.NewBookingForm(*tour, availability, token)
	if err != nil {
		uc.logger.Error("GetBookingForm: failed to build form for tour id=%s: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: failed to build form: %v", ErrInternal, err)
	}
	resp.Form = form

	uc.logger.Info("GetBookingForm: form ready for tour id=%s, spots=%d", tour.ID, availability.AvailableSpots)
	return resp, nil
}
