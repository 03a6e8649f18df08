package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TourBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
	lastRequest *createBooking.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.lastRequest = req
	return m.executeFunc(ctx, req)
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *SubmissionResponse `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func serve(t *testing.T, uc *mockUseCase, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := mux.NewRouter()
	r.Use(middleware.Session)
	r.HandleFunc("/tours/{tourId}/bookings", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/tours/tour-1/bookings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			State:   domain.SubmissionSucceeded,
			Booking: &domain.Booking{ID: "b-1"},
			Message: createBooking.MsgBookingCreated,
			Redirect: &createBooking.Redirect{
				Path:    domain.PathMyBookings,
				Replace: true,
				Delay:   1500 * time.Millisecond,
			},
		}, nil
	}}

	rec, env := serve(t, uc, `{"token":"body-token","numberOfPeople":2}`,
		map[string]string{HeaderIdempotencyKey: "header-token"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, createBooking.MsgBookingCreated, env.Message)
	require.NotNil(t, env.Data)
	require.NotNil(t, env.Data.Redirect)
	assert.Equal(t, domain.PathMyBookings, env.Data.Redirect.Path)
	assert.True(t, env.Data.Redirect.Replace)
	assert.Equal(t, int64(1500), env.Data.Redirect.DelayMs)

	require.NotNil(t, uc.lastRequest)
	assert.Equal(t, "header-token", uc.lastRequest.Token)
	assert.Equal(t, "tour-1", uc.lastRequest.TourID)
	assert.Equal(t, 2, uc.lastRequest.NumberOfPeople)
	assert.Equal(t, "token", uc.lastRequest.Session.AccessToken)
}

func TestHandle_ReplayReturnsOK(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{State: domain.SubmissionSucceeded, Replayed: true}, nil
	}}

	rec, env := serve(t, uc, `{"token":"body-token","numberOfPeople":1}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Data.Replayed)
	assert.Equal(t, "body-token", uc.lastRequest.Token)
}

func TestHandle_ValidationGuard(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			State:  domain.SubmissionIdle,
			Errors: domain.ValidationErrors{"specialRequests": "too long"},
		}, nil
	}}

	rec, env := serve(t, uc, `{"numberOfPeople":1}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, msgPleaseFixErrors, env.Message)
	assert.Equal(t, []string{"too long"}, env.Errors["specialRequests"])
}

func TestHandle_Rejected(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			State:    domain.SubmissionFailed,
			Rejected: true,
			Message:  "Not enough spots",
			Errors:   domain.ValidationErrors{"numberOfPeople": "Only 2 spots left"},
		}, nil
	}}

	rec, env := serve(t, uc, `{"numberOfPeople":5}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Not enough spots", env.Message)
	assert.Equal(t, []string{"Only 2 spots left"}, env.Errors["numberOfPeople"])
}

func TestHandle_TransportFailure(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{State: domain.SubmissionFailed}, nil
	}}

	rec, env := serve(t, uc, `{"numberOfPeople":1}`, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, msgBackendUnavailable, env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, domain.SubmissionFailed, env.Data.State)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest, msgInvalidInput},
		{"tour not found", createBooking.ErrTourNotFound, http.StatusNotFound, msgTourNotFound},
		{"tour unavailable", createBooking.ErrTourUnavailable, http.StatusConflict, msgTourUnavailable},
		{"in progress", createBooking.ErrSubmissionInProgress, http.StatusConflict, msgInProgress},
		{"already submitted", createBooking.ErrAlreadySubmitted, http.StatusConflict, msgAlreadySubmitted},
		{"token of another booking", createBooking.ErrTokenMismatch, http.StatusConflict, msgTokenMismatch},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
				return nil, fmt.Errorf("%w: wrapped", tt.err)
			}}

			rec, env := serve(t, uc, `{"numberOfPeople":1}`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &mockUseCase{executeFunc: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}}

	rec, env := serve(t, uc, `{"numberOfPeople":1,"unknown":true}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidRequestBody, env.Message)
}
