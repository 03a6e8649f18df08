package create_review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	gatewayClient "github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
)

type mockGateway struct {
	GetBookingFunc   func(ctx context.Context, session domain.Session, bookingID string) (*domain.Booking, error)
	CreateReviewFunc func(ctx context.Context, session domain.Session, req domain.CreateReviewRequest) (*gatewayClient.Result[domain.Review], error)
	createCalls      int
}

func (m *mockGateway) GetBooking(ctx context.Context, session domain.Session, bookingID string) (*domain.Booking, error) {
	return m.GetBookingFunc(ctx, session, bookingID)
}

func (m *mockGateway) CreateReview(ctx context.Context, session domain.Session, req domain.CreateReviewRequest) (*gatewayClient.Result[domain.Review], error) {
	m.createCalls++
	return m.CreateReviewFunc(ctx, session, req)
}

type mockNotifier struct {
	successes []string
	errors    []string
}

func (n *mockNotifier) Success(_ string, message string) { n.successes = append(n.successes, message) }
func (n *mockNotifier) Error(_ string, message string)   { n.errors = append(n.errors, message) }

var session = domain.Session{ID: "s-1", UserID: "u-1", AccessToken: "t"}

func gatewayWith(booking *domain.Booking, err error) *mockGateway {
	return &mockGateway{
		GetBookingFunc: func(ctx context.Context, s domain.Session, bookingID string) (*domain.Booking, error) {
			return booking, err
		},
		CreateReviewFunc: func(ctx context.Context, s domain.Session, req domain.CreateReviewRequest) (*gatewayClient.Result[domain.Review], error) {
			return &gatewayClient.Result[domain.Review]{
				Data: &domain.Review{ID: "r-1", BookingID: req.BookingID, Rating: req.Rating, Comment: req.Comment},
			}, nil
		},
	}
}

func completedBooking() *domain.Booking {
	return &domain.Booking{ID: "b-1", TourID: "tour-1", Status: domain.StatusCompleted}
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		err     error
		want    domain.ReviewIneligibleReason
	}{
		{name: "eligible", booking: completedBooking()},
		{name: "not found", err: gatewayClient.ErrNotFound, want: domain.ReviewBookingNotFound},
		{name: "not completed", booking: &domain.Booking{ID: "b-1", Status: domain.StatusConfirmed}, want: domain.ReviewBookingNotComplete},
		{name: "already reviewed", booking: &domain.Booking{ID: "b-1", Status: domain.StatusCompleted, IsReviewed: true}, want: domain.ReviewAlreadyReviewed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(gatewayWith(tt.booking, tt.err), &mockNotifier{}, logger.NewNop())

			got, err := uc.CheckEligibility(context.Background(), &EligibilityRequest{Session: session, BookingID: "b-1"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Reason)
			if tt.want != "" {
				assert.Equal(t, domain.PathMyBookings, got.Action.Path)
			}
		})
	}
}

func TestCheckEligibility_GatewayFailure(t *testing.T) {
	uc := NewUseCase(gatewayWith(nil, errors.New("timeout")), &mockNotifier{}, logger.NewNop())

	_, err := uc.CheckEligibility(context.Background(), &EligibilityRequest{Session: session, BookingID: "b-1"})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Success(t *testing.T) {
	gw := gatewayWith(completedBooking(), nil)
	notifier := &mockNotifier{}
	uc := NewUseCase(gw, notifier, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Session: session, BookingID: "b-1", Rating: 5, Comment: "  Wonderful guide and views  "})

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "Wonderful guide and views", resp.Review.Comment)
	assert.Equal(t, domain.PathMyBookings, resp.Redirect)
	assert.Equal(t, []string{MsgReviewCreated}, notifier.successes)
}

func TestExecute_InvalidDraftMakesNoCall(t *testing.T) {
	gw := gatewayWith(completedBooking(), nil)
	notifier := &mockNotifier{}
	uc := NewUseCase(gw, notifier, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Session: session, BookingID: "b-1", Rating: 6, Comment: "short"})

	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.True(t, resp.Errors.Has(domain.FieldRating))
	assert.True(t, resp.Errors.Has(domain.FieldComment))
	assert.Zero(t, gw.createCalls)
	require.Len(t, notifier.errors, 1)
	assert.True(t, strings.HasPrefix(notifier.errors[0], "Rating"))
}

func TestExecute_IneligibleMakesNoCall(t *testing.T) {
	gw := gatewayWith(&domain.Booking{ID: "b-1", Status: domain.StatusPending}, nil)
	uc := NewUseCase(gw, &mockNotifier{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Session: session, BookingID: "b-1", Rating: 4, Comment: "Good trip overall"})

	require.NoError(t, err)
	assert.False(t, resp.Eligibility.Eligible())
	assert.False(t, resp.Created)
	assert.Zero(t, gw.createCalls)
}

func TestExecute_RejectedMergesFieldErrors(t *testing.T) {
	gw := gatewayWith(completedBooking(), nil)
	gw.CreateReviewFunc = func(ctx context.Context, s domain.Session, req domain.CreateReviewRequest) (*gatewayClient.Result[domain.Review], error) {
		return nil, &gatewayClient.EnvelopeError{
			StatusCode: 400,
			Message:    "Validation failed",
			Errors:     map[string][]string{domain.FieldComment: {"Comment contains banned words", "second"}},
		}
	}
	notifier := &mockNotifier{}
	uc := NewUseCase(gw, notifier, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Session: session, BookingID: "b-1", Rating: 3, Comment: "Some long enough comment"})

	require.NoError(t, err)
	msg, ok := resp.Errors.Get(domain.FieldComment)
	require.True(t, ok)
	assert.Equal(t, "Comment contains banned words", msg)
	assert.Equal(t, []string{"Validation failed"}, notifier.errors)
}

func TestExecute_TransportFailure(t *testing.T) {
	gw := gatewayWith(completedBooking(), nil)
	gw.CreateReviewFunc = func(ctx context.Context, s domain.Session, req domain.CreateReviewRequest) (*gatewayClient.Result[domain.Review], error) {
		return nil, gatewayClient.ErrInternal
	}
	notifier := &mockNotifier{}
	uc := NewUseCase(gw, notifier, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Session: session, BookingID: "b-1", Rating: 3, Comment: "Some long enough comment"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{MsgReviewFailed}, notifier.errors)
}
