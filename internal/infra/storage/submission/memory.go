package submission

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

// MemoryStore хранилище ключей идемпотентности в памяти процесса
// Используется, когда database.enabled = false; семантика совпадает с Repository
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Begin(_ context.Context, rec Record) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.records[rec.Key]
	// Чужой ключ не перезахватывается даже после неудачи
	if ok && (existing.State != domain.SubmissionFailed || !existing.BelongsTo(rec.UserID, rec.TourID)) {
		out := existing
		return &out, false, nil
	}

	if ok {
		existing.State = domain.SubmissionSubmitting
		existing.BookingID = nil
		existing.Message = nil
		existing.UpdatedAt = now
		s.records[rec.Key] = existing
		out := existing
		return &out, true, nil
	}

	rec.State = domain.SubmissionSubmitting
	rec.BookingID = nil
	rec.Message = nil
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records[rec.Key] = rec
	out := rec
	return &out, true, nil
}

func (s *MemoryStore) Complete(_ context.Context, key string, state domain.SubmissionState, bookingID, message *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return ErrSubmissionNotFound
	}
	rec.State = state
	rec.BookingID = bookingID
	rec.Message = message
	rec.UpdatedAt = s.now()
	s.records[key] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, rec := range s.records {
		if rec.State != domain.SubmissionSubmitting && rec.UpdatedAt.Before(before) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}
