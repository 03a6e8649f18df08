package search_tours

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/pkg/fence"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
	"github.com/m04kA/SMC-TourBooking/pkg/ptr"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type mockGateway struct {
	SearchToursFunc func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error)
	calls           atomic.Int32
}

func (m *mockGateway) SearchTours(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
	m.calls.Add(1)
	return m.SearchToursFunc(ctx, filter)
}

func newTestUseCase(gw *mockGateway) *UseCase {
	uc := NewUseCase(gw, fence.New(), logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func pageOf(ids ...string) *domain.TourPage {
	page := &domain.TourPage{Tours: []domain.TourSnapshot{}, Meta: domain.PageMeta{Page: 1, Total: len(ids)}}
	for _, id := range ids {
		page.Tours = append(page.Tours, domain.TourSnapshot{
			ID:               id,
			Price:            50,
			MaxGroupSize:     10,
			CurrentGroupSize: 4,
			IsActive:         true,
			StartDate:        now.Add(48 * time.Hour),
		})
	}
	return page
}

func TestExecute_ItemsCarryAvailability(t *testing.T) {
	var got domain.TourFilter
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		got = filter
		return pageOf("tour-1", "tour-2"), nil
	}}
	uc := newTestUseCase(gw)

	resp, err := uc.Execute(context.Background(), &Request{Session: domain.Session{ID: "s-1"}, Filter: domain.TourFilter{City: "Dhaka"}})

	require.NoError(t, err)
	assert.False(t, resp.Stale)
	assert.NotEmpty(t, resp.RequestID)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 6, resp.Items[0].Availability.AvailableSpots)
	assert.True(t, resp.Items[0].Availability.CanBook())
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, DefaultLimit, got.Limit)
	assert.Equal(t, "Dhaka", got.City)
}

func TestExecute_InvalidFilter(t *testing.T) {
	gw := &mockGateway{}
	uc := newTestUseCase(gw)

	_, err := uc.Execute(context.Background(), &Request{Filter: domain.TourFilter{MinPrice: ptr.Ptr(100.0), MaxPrice: ptr.Ptr(10.0)}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Filter: domain.TourFilter{Limit: -1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, gw.calls.Load())
}

func TestExecute_GatewayFailure(t *testing.T) {
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		return nil, errors.New("connection reset")
	}}
	uc := newTestUseCase(gw)

	_, err := uc.Execute(context.Background(), &Request{Session: domain.Session{ID: "s-1"}})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_OutOfOrderResponseDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		if filter.SearchTerm == "old" {
			close(slowStarted)
			<-releaseSlow
			return pageOf("stale-tour"), nil
		}
		return pageOf("fresh-tour"), nil
	}}
	uc := newTestUseCase(gw)
	session := domain.Session{ID: "s-1"}

	var slowResp *Response
	var slowErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		slowResp, slowErr = uc.Execute(context.Background(), &Request{Session: session, Filter: domain.TourFilter{SearchTerm: "old"}})
	}()
	<-slowStarted

	fastResp, err := uc.Execute(context.Background(), &Request{Session: session, Filter: domain.TourFilter{SearchTerm: "new"}})
	require.NoError(t, err)
	assert.False(t, fastResp.Stale)
	require.Len(t, fastResp.Items, 1)
	assert.Equal(t, "fresh-tour", fastResp.Items[0].Tour.ID)

	close(releaseSlow)
	<-done

	require.NoError(t, slowErr)
	assert.True(t, slowResp.Stale)
	assert.Empty(t, slowResp.Items)
}

func TestExecute_OtherSessionsAreNotFenced(t *testing.T) {
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		return pageOf("tour-1"), nil
	}}
	uc := newTestUseCase(gw)

	first, err := uc.Execute(context.Background(), &Request{Session: domain.Session{ID: "s-1"}})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Session: domain.Session{ID: "s-2"}})
	require.NoError(t, err)

	assert.False(t, first.Stale)
	assert.False(t, second.Stale)
}

func TestExecute_IdenticalConcurrentSearchesShareOneCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		started <- struct{}{}
		<-release
		return pageOf("tour-1"), nil
	}}
	uc := newTestUseCase(gw)

	const callers = 4
	var wg sync.WaitGroup
	responses := make([]*Response, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// разные сессии: каждый результат актуален для своего владельца
			session := domain.Session{ID: string(rune('a' + i))}
			resp, err := uc.Execute(context.Background(), &Request{Session: session, Filter: domain.TourFilter{City: "Sylhet"}})
			assert.NoError(t, err)
			responses[i] = resp
		}(i)
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), gw.calls.Load())
	for _, resp := range responses {
		require.NotNil(t, resp)
		assert.False(t, resp.Stale)
		assert.Len(t, resp.Items, 1)
	}
}

func TestExecute_CancelledCallerDoesNotAbortSharedCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	var sawCancel atomic.Bool
	gw := &mockGateway{SearchToursFunc: func(ctx context.Context, filter domain.TourFilter) (*domain.TourPage, error) {
		<-release
		sawCancel.Store(ctx.Err() != nil)
		return pageOf("tour-1"), nil
	}}
	uc := newTestUseCase(gw)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctx, &Request{Session: domain.Session{ID: "s-1"}})
		errCh <- err
	}()

	assert.Eventually(t, func() bool { return gw.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	resp, err := func() (*Response, error) {
		done := make(chan struct{})
		var resp *Response
		var err error
		go func() {
			defer close(done)
			resp, err = uc.Execute(context.Background(), &Request{Session: domain.Session{ID: "s-2"}})
		}()
		time.Sleep(20 * time.Millisecond)
		close(release)
		<-done
		return resp, err
	}()

	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.False(t, sawCancel.Load())
	assert.Equal(t, int32(1), gw.calls.Load())
}
