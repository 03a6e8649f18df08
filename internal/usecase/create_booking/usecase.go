package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/infra/storage/submission"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
	"github.com/m04kA/SMC-TourBooking/pkg/ptr"
)

// UseCase use case отправки формы бронирования
type UseCase struct {
	gateway      GatewayClient
	store        SubmissionStore
	notifier     Notifier
	navigator    Navigator
	metrics      MetricsCollector
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// Option дополнительная настройка use case
type Option func(*UseCase)

// WithNavigator подключает навигатор, который получает каждый переход
func WithNavigator(n Navigator) Option {
	return func(uc *UseCase) {
		uc.navigator = n
	}
}

// WithMetrics подключает счетчики отправок
func WithMetrics(m MetricsCollector) Option {
	return func(uc *UseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gateway GatewayClient,
	store SubmissionStore,
	notifier Notifier,
	cfg Config,
	logger Logger,
	opts ...Option,
) *UseCase {
	// nil - сигнатура по умолчанию; пустой список отключает переход
	if cfg.ProfileErrorSignatures == nil {
		cfg.ProfileErrorSignatures = []string{DefaultProfileMessage}
	}

	uc := &UseCase{
		gateway:      gateway,
		store:        store,
		notifier:     notifier,
		metrics:      nopMetrics{},
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute загружает актуальный снимок тура, собирает форму из запроса и отправляет её
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, tour=%s, people=%d, token=%s",
		req.Session.UserID, req.TourID, req.NumberOfPeople, req.Token)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тур
	tour, err := uc.gateway.GetSingleTour(ctx, req.Session, req.TourID)
	if err != nil {
		if errors.Is(err, gatewayClient.ErrNotFound) || errors.Is(err, gatewayClient.ErrRejected) {
			uc.logger.Warn("CreateBooking: tour id=%s not found", req.TourID)
			return nil, ErrTourNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tour id=%s: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	// 3. Проверяем доступность: бизнес-отказ показывается страницей, а не ошибкой поля
	availability := domain.CalculateAvailability(*tour, uc.timeProvider.Now())
	if notice := availability.Notice(*tour); notice != nil {
		uc.logger.Warn("CreateBooking: tour id=%s unavailable, reason=%s", tour.ID, notice.Reason)
		return nil, fmt.Errorf("%w: %s", ErrTourUnavailable, notice.Reason)
	}

	// 4. Собираем форму тем же путем, что и при вводе
	form, err := domain.NewBookingForm(*tour, availability, req.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTourUnavailable, err)
	}
	form.SetNumberOfPeople(req.NumberOfPeople)
	form.SetSpecialRequests(req.SpecialRequests)
	form.SetPaymentMethod(req.PaymentMethod)

	return uc.Submit(ctx, req.Session, form, domain.NewSubmission())
}

// Submit проводит форму через Idle -> Submitting -> {Succeeded | Failed}
// Невалидная форма не отправляется: состояние не меняется, пользователь получает уведомление
func (uc *UseCase) Submit(
	ctx context.Context,
	session domain.Session,
	form *domain.BookingForm,
	sub *domain.Submission,
) (*Response, error) {
	// Guard: полная повторная валидация до любого сетевого вызова
	if !form.Validate() {
		field, msg, _ := form.FirstError()
		uc.logger.Warn("CreateBooking: form invalid, field=%s: %s", field, msg)
		uc.notifier.Error(session.ID, msg)
		return &Response{
			State:  sub.State(),
			Draft:  form.Draft(),
			Errors: form.Errors(),
		}, nil
	}

	if err := sub.Begin(); err != nil {
		uc.logger.Warn("CreateBooking: submit rejected for token=%s: %v", form.Token(), err)
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			return nil, ErrAlreadySubmitted
		}
		return nil, ErrSubmissionInProgress
	}

	// Идемпотентность: тот же токен не должен создать второе бронирование
	record, claimed, err := uc.store.Begin(ctx, submission.Record{
		Key:    form.Token(),
		UserID: session.UserID,
		TourID: form.Tour().ID,
	})
	switch {
	case err != nil:
		// Хранилище недоступно: бэкенд всё равно получит Idempotency-Key
		uc.logger.Error("CreateBooking: submission store unavailable for token=%s: %v", form.Token(), err)
	case !record.BelongsTo(session.UserID, form.Tour().ID):
		sub.Fail(ErrTokenMismatch.Error())
		uc.logger.Warn("CreateBooking: token=%s owned by user=%s tour=%s, requested by user=%s tour=%s",
			form.Token(), record.UserID, record.TourID, session.UserID, form.Tour().ID)
		return nil, ErrTokenMismatch
	case !claimed && record.IsFinal():
		return uc.replay(ctx, session, form, sub, record), nil
	case !claimed:
		sub.Fail(ErrSubmissionInProgress.Error())
		uc.logger.Warn("CreateBooking: token=%s is already being submitted", form.Token())
		return nil, ErrSubmissionInProgress
	}

	result, err := uc.gateway.CreateBooking(ctx, session, form.BookingRequest(), form.Token())
	if err == nil {
		return uc.succeed(ctx, session, form, sub, result), nil
	}

	if envErr, ok := gatewayClient.AsEnvelopeError(err); ok {
		return uc.reject(ctx, session, form, sub, envErr), nil
	}

	return uc.fail(ctx, session, form, sub, err), nil
}

// succeed: уведомление, затем один переход к списку бронирований с заменой истории
func (uc *UseCase) succeed(
	ctx context.Context,
	session domain.Session,
	form *domain.BookingForm,
	sub *domain.Submission,
	result *gatewayClient.Result[domain.Booking],
) *Response {
	sub.Succeed()

	message := MsgBookingCreated
	if result.Message != "" {
		message = result.Message
	}

	var bookingID *string
	if result.Data != nil {
		bookingID = ptr.Ptr(result.Data.ID)
	}
	uc.complete(ctx, form.Token(), domain.SubmissionSucceeded, bookingID, &message)
	uc.metrics.IncSubmission(string(domain.SubmissionSucceeded))

	uc.logger.Info("CreateBooking: booking created, id=%s, token=%s", ptr.Value(bookingID), form.Token())

	resp := &Response{
		State:   sub.State(),
		Booking: result.Data,
		Draft:   form.Draft(),
		Errors:  form.Errors(),
		Message: message,
	}
	uc.notifier.Success(session.ID, message)
	uc.redirect(ctx, resp, domain.PathMyBookings)
	return resp
}

// reject: логический отказ бэкенда, пользователь остается на форме
func (uc *UseCase) reject(
	ctx context.Context,
	session domain.Session,
	form *domain.BookingForm,
	sub *domain.Submission,
	envErr *gatewayClient.EnvelopeError,
) *Response {
	message := envErr.Message
	if message == "" {
		message = MsgDefaultRejection
	}

	sub.Fail(message)
	form.MergeServerErrors(envErr.Errors)
	uc.complete(ctx, form.Token(), domain.SubmissionFailed, nil, &message)
	uc.metrics.IncSubmission(string(domain.SubmissionFailed))

	uc.logger.Warn("CreateBooking: rejected by gateway, token=%s, status=%d: %s",
		form.Token(), envErr.StatusCode, message)
	uc.notifier.Error(session.ID, message)

	return &Response{
		State:    sub.State(),
		Draft:    form.Draft(),
		Errors:   form.Errors(),
		Message:  message,
		Rejected: true,
	}
}

// fail: транспортная или непредвиденная ошибка
func (uc *UseCase) fail(
	ctx context.Context,
	session domain.Session,
	form *domain.BookingForm,
	sub *domain.Submission,
	err error,
) *Response {
	sub.Fail(err.Error())
	uc.complete(ctx, form.Token(), domain.SubmissionFailed, nil, ptr.Ptr(err.Error()))
	uc.metrics.IncSubmission(string(domain.SubmissionFailed))

	resp := &Response{
		State:  sub.State(),
		Draft:  form.Draft(),
		Errors: form.Errors(),
	}

	if uc.isProfileMismatch(err) {
		uc.logger.Warn("CreateBooking: profile mismatch for user=%s, redirecting to bookings: %v", session.UserID, err)
		resp.Message = MsgProfileMismatch
		uc.notifier.Error(session.ID, MsgProfileMismatch)
		uc.redirect(ctx, resp, domain.PathMyBookings)
		return resp
	}

	uc.logger.Error("CreateBooking: gateway call failed, token=%s: %v", form.Token(), err)
	resp.Message = MsgGenericFailure
	uc.notifier.Error(session.ID, MsgGenericFailure)
	return resp
}

// replay: токен уже привел к бронированию, бэкенд не вызываем
func (uc *UseCase) replay(
	ctx context.Context,
	session domain.Session,
	form *domain.BookingForm,
	sub *domain.Submission,
	record *submission.Record,
) *Response {
	sub.Succeed()
	uc.metrics.IncSubmission("replayed")

	message := ptr.Value(record.Message)
	if message == "" {
		message = MsgBookingCreated
	}

	uc.logger.Info("CreateBooking: replay of token=%s, booking id=%s", record.Key, ptr.Value(record.BookingID))

	resp := &Response{
		State:    sub.State(),
		Draft:    form.Draft(),
		Errors:   form.Errors(),
		Message:  message,
		Replayed: true,
	}
	if record.BookingID != nil {
		resp.Booking = &domain.Booking{ID: *record.BookingID, TourID: record.TourID}
	}

	uc.notifier.Success(session.ID, message)
	uc.redirect(ctx, resp, domain.PathMyBookings)
	return resp
}

func (uc *UseCase) redirect(ctx context.Context, resp *Response, path string) {
	resp.Redirect = &Redirect{
		Path:    path,
		Replace: true,
		Delay:   uc.cfg.RedirectDelay,
	}
	if uc.navigator != nil {
		uc.navigator.Redirect(ctx, *resp.Redirect)
	}
}

func (uc *UseCase) complete(ctx context.Context, key string, state domain.SubmissionState, bookingID, message *string) {
	// Итог фиксируем даже если клиент уже отключился
	if err := uc.store.Complete(context.WithoutCancel(ctx), key, state, bookingID, message); err != nil {
		uc.logger.Error("CreateBooking: failed to record outcome for token=%s: %v", key, err)
	}
}

func (uc *UseCase) isProfileMismatch(err error) bool {
	text := strings.ToLower(err.Error())
	for _, signature := range uc.cfg.ProfileErrorSignatures {
		if signature != "" && strings.Contains(text, strings.ToLower(signature)) {
			return true
		}
	}
	return false
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.TourID) == "" {
		return fmt.Errorf("%w: tourID is required", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.Token); err != nil {
		return fmt.Errorf("%w: invalid submission token", ErrInvalidInput)
	}

	return nil
}
