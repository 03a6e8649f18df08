package get_tour_reviews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
)

type mockService struct {
	getTourReviewsFunc func(ctx context.Context, tourID string) (*domain.ReviewSummary, error)
}

func (m *mockService) GetTourReviews(ctx context.Context, tourID string) (*domain.ReviewSummary, error) {
	return m.getTourReviewsFunc(ctx, tourID)
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *domain.ReviewSummary `json:"data"`
}

func do(t *testing.T, svc *mockService, tourID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/tours/{tourId}/reviews", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tours/"+tourID+"/reviews", nil))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{getTourReviewsFunc: func(ctx context.Context, tourID string) (*domain.ReviewSummary, error) {
		summary := domain.SummarizeReviews(tourID, []domain.Review{
			{ID: "r-1", TourID: tourID, Rating: 5, Comment: "Great guide and views"},
			{ID: "r-2", TourID: tourID, Rating: 4, Comment: "Good but a long bus ride"},
		})
		return &summary, nil
	}}

	rec, env := do(t, svc, "tour-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Data)
	assert.Equal(t, "tour-1", env.Data.TourID)
	assert.Equal(t, 2, env.Data.Total)
	assert.InDelta(t, 4.5, env.Data.AverageRating, 0.001)
	require.NotEmpty(t, env.Data.Groups)
	assert.Equal(t, 5, env.Data.Groups[0].Rating)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid id", bookings.ErrInvalidInput, http.StatusBadRequest, msgInvalidTourID},
		{"not found", bookings.ErrTourNotFound, http.StatusNotFound, msgTourNotFound},
		{"internal", errors.New("gateway down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{getTourReviewsFunc: func(ctx context.Context, tourID string) (*domain.ReviewSummary, error) {
				return nil, tt.err
			}}

			rec, env := do(t, svc, "tour-1")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}
