package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
)

var testSession = domain.Session{ID: "s-1", UserID: "u-1", Role: domain.RoleUser, AccessToken: "token-abc"}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string]string
}

func (o *recordingObserver) ObserveGatewayCall(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = map[string]string{}
	}
	o.outcomes[operation] = outcome
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1/", 2*time.Second, logger.NewNop(), opts...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetSingleTour(t *testing.T) {
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/tours/tour-42", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":               "tour-42",
				"title":            "Cox's Bazar Weekend",
				"price":            150,
				"maxGroupSize":     12,
				"currentGroupSize": 4,
				"isActive":         true,
				"startDate":        start.Format(time.RFC3339),
				"endDate":          start.Add(48 * time.Hour).Format(time.RFC3339),
				"duration":         2,
			},
		})
	})

	tour, err := client.GetSingleTour(context.Background(), testSession, "tour-42")

	require.NoError(t, err)
	assert.Equal(t, "tour-42", tour.ID)
	assert.Equal(t, 12, tour.MaxGroupSize)
	assert.Equal(t, 4, tour.CurrentGroupSize)
	assert.True(t, tour.StartDate.Equal(start))
}

func TestClient_GetSingleTour_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Tour not found",
		})
	})

	_, err := client.GetSingleTour(context.Background(), testSession, "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_GetSingleTour_PlainNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetSingleTour(context.Background(), testSession, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetSingleTour_EmptyDataIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "ok",
		})
	})

	_, err := client.GetSingleTour(context.Background(), testSession, "tour-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestClient_OversizedResponseIsTruncated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":"tour-1","title":"`)
		_, _ = io.WriteString(w, strings.Repeat("a", maxResponseBytes))
		_, _ = io.WriteString(w, `"}}`)
	})

	_, err := client.GetSingleTour(context.Background(), testSession, "tour-1")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetSingleTour_BrokenInvariant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": "t", "maxGroupSize": 2, "currentGroupSize": 5},
		})
	})

	_, err := client.GetSingleTour(context.Background(), testSession, "t")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_CreateBooking(t *testing.T) {
	obs := &recordingObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/bookings", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

		var body domain.CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tour-1", body.TourID)
		assert.Equal(t, 2, body.NumberOfPeople)
		assert.InDelta(t, 200.0, body.TotalAmount, 0.0001)
		assert.Nil(t, body.SpecialRequests)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Booking created successfully",
			"data":    map[string]interface{}{"id": "b-1", "tourId": "tour-1", "status": "PENDING"},
		})
	}, WithObserver(obs))

	res, err := client.CreateBooking(context.Background(), testSession, domain.CreateBookingRequest{
		TourID:         "tour-1",
		NumberOfPeople: 2,
		TotalAmount:    200,
		PaymentMethod:  domain.DefaultPaymentMethod,
	}, "key-1")

	require.NoError(t, err)
	assert.Equal(t, "Booking created successfully", res.Message)
	require.NotNil(t, res.Data)
	assert.Equal(t, "b-1", res.Data.ID)
	assert.Equal(t, domain.StatusPending, res.Data.Status)
	assert.Equal(t, "success", obs.outcomes["create_booking"])
}

func TestClient_CreateBooking_Rejected(t *testing.T) {
	obs := &recordingObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Not enough spots",
			"errors": map[string][]string{
				"numberOfPeople": {"Only 1 spots available", "ignored"},
			},
		})
	}, WithObserver(obs))

	_, err := client.CreateBooking(context.Background(), testSession, domain.CreateBookingRequest{TourID: "t"}, "")

	envErr, ok := AsEnvelopeError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, envErr.StatusCode)
	assert.Equal(t, "Not enough spots", envErr.Message)
	assert.Equal(t, []string{"Only 1 spots available", "ignored"}, envErr.Errors["numberOfPeople"])
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "rejected", obs.outcomes["create_booking"])
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.GetBooking(context.Background(), testSession, "b-1")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetBooking(context.Background(), testSession, "b-1")

	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_SearchTours_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "beach", q.Get("searchTerm"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "99.5", q.Get("maxPrice"))
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"data": []map[string]interface{}{{"id": "t-1"}, {"id": "t-2"}},
				"meta": map[string]interface{}{"page": 2, "limit": 10, "total": 12, "totalPages": 2},
			},
		})
	})

	maxPrice := 99.5
	page, err := client.SearchTours(context.Background(), domain.TourFilter{
		SearchTerm: "beach",
		Page:       2,
		MaxPrice:   &maxPrice,
	})

	require.NoError(t, err)
	assert.Len(t, page.Tours, 2)
	assert.Equal(t, 12, page.Meta.Total)
}

func TestClient_GetMyBookings_EmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "COMPLETED", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	})

	status := domain.StatusCompleted
	list, err := client.GetMyBookings(context.Background(), testSession, domain.BookingsFilter{Status: &status})

	require.NoError(t, err)
	assert.NotNil(t, list.Bookings)
	assert.Empty(t, list.Bookings)
}

func TestClient_GetTourReviewsWithGracefulDegradation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	})

	_, err := client.GetTourReviewsWithGracefulDegradation(context.Background(), "t-1")

	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_UpdateBookingStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/bookings/b-9/status", r.URL.Path)

		var body UpdateBookingStatusRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, domain.StatusConfirmed, body.Status)

		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Status updated"})
	})

	res, err := client.UpdateBookingStatus(context.Background(), testSession, "b-9", domain.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, "Status updated", res.Message)
}
