package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// UseCase use case изменения статуса бронирования хостом или администратором
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

// Execute проверяет статус до сетевого вызова и передает изменение бэкенду
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%s, status=%s, user=%s",
		req.BookingID, req.Status, req.Session.UserID)

	// 1. Валидация входных данных
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if !req.Status.IsUpdatable() {
		uc.logger.Warn("UpdateBookingStatus: status=%q is not allowed", req.Status)
		fields := domain.ValidationErrors{}
		fields.Set(domain.FieldStatus, MsgInvalidStatus)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(fields))
	}

	// 2. Проверяем роль
	if !req.Session.CanManageBookings() {
		uc.logger.Warn("UpdateBookingStatus: user=%s with role=%q cannot manage bookings",
			req.Session.UserID, req.Session.Role)
		return nil, ErrAccessDenied
	}

	// 3. Меняем статус
	result, err := uc.gateway.UpdateBookingStatus(ctx, req.Session, req.BookingID, req.Status)
	if err != nil {
		return nil, uc.mapError(req, err)
	}

	message := MsgStatusUpdated
	if result.Message != "" {
		message = result.Message
	}
	uc.notifier.Success(req.Session.ID, message)

	uc.logger.Info("UpdateBookingStatus: booking=%s updated to status=%s", req.BookingID, req.Status)
	return &Response{
		Booking: result.Data,
		Message: message,
		Refresh: true,
	}, nil
}

func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, gatewayClient.ErrNotFound):
		uc.logger.Warn("UpdateBookingStatus: booking=%s not found", req.BookingID)
		uc.notifier.Error(req.Session.ID, MsgUpdateFailed)
		return ErrBookingNotFound

	case errors.Is(err, gatewayClient.ErrUnauthorized):
		uc.logger.Warn("UpdateBookingStatus: backend denied access to booking=%s", req.BookingID)
		uc.notifier.Error(req.Session.ID, MsgUpdateFailed)
		return ErrAccessDenied
	}

	if envErr, ok := gatewayClient.AsEnvelopeError(err); ok {
		message := envErr.Message
		if message == "" {
			message = MsgUpdateFailed
		}
		uc.logger.Warn("UpdateBookingStatus: rejected for booking=%s: %s", req.BookingID, message)
		uc.notifier.Error(req.Session.ID, message)
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}

	uc.logger.Error("UpdateBookingStatus: gateway call failed for booking=%s: %v", req.BookingID, err)
	uc.notifier.Error(req.Session.ID, MsgUpdateFailed)
	return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
}
