package get_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
)

type mockService struct {
	getByIDFunc func(ctx context.Context, session domain.Session, id string) (*models.BookingResponse, error)
}

func (m *mockService) GetByID(ctx context.Context, session domain.Session, id string) (*models.BookingResponse, error) {
	return m.getByIDFunc(ctx, session, id)
}

type envelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *models.BookingResponse `json:"data"`
}

func do(t *testing.T, svc *mockService, bookingID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := mux.NewRouter()
	r.Use(middleware.Session)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bookings/"+bookingID, nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set(middleware.HeaderUserID, "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{getByIDFunc: func(ctx context.Context, session domain.Session, id string) (*models.BookingResponse, error) {
		assert.Equal(t, "b-1", id)
		assert.Equal(t, "user-1", session.UserID)
		return &models.BookingResponse{
			Booking: domain.Booking{ID: id, UserID: session.UserID, Status: domain.StatusConfirmed, NumberOfPeople: 2},
			CanPay:  true,
		}, nil
	}}

	rec, env := do(t, svc, "b-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, "b-1", env.Data.ID)
	assert.Equal(t, domain.StatusConfirmed, env.Data.Status)
	assert.True(t, env.Data.CanPay)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid id", bookings.ErrInvalidInput, http.StatusBadRequest, msgInvalidBookingID},
		{"not found", fmt.Errorf("%w: b-1", bookings.ErrBookingNotFound), http.StatusNotFound, msgNotFound},
		{"foreign booking", bookings.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{getByIDFunc: func(ctx context.Context, session domain.Session, id string) (*models.BookingResponse, error) {
				return nil, tt.err
			}}

			rec, env := do(t, svc, "b-1")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Nil(t, env.Data)
		})
	}
}
