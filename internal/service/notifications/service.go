package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

const (
	// DefaultMaxPerSession сколько уведомлений храним на сессию; старые вытесняются
	DefaultMaxPerSession = 20

	// DefaultTTL уведомление, которое никто не забрал, устаревает
	DefaultTTL = 5 * time.Minute
)

// Service очередь уведомлений (toast) по сессиям
// Use cases пишут в неё через интерфейс Notifier, клиент забирает через Drain
type Service struct {
	mu            sync.Mutex
	queues        map[string][]domain.Notification
	maxPerSession int
	ttl           time.Duration
	now           func() time.Time
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(maxPerSession int, ttl time.Duration) *Service {
	if maxPerSession <= 0 {
		maxPerSession = DefaultMaxPerSession
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		queues:        make(map[string][]domain.Notification),
		maxPerSession: maxPerSession,
		ttl:           ttl,
		now:           time.Now,
	}
}

// Notify ставит уведомление в очередь сессии
func (s *Service) Notify(sessionID string, level domain.NotificationLevel, message string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queue := append(s.queues[sessionID], n)
	if len(queue) > s.maxPerSession {
		queue = queue[len(queue)-s.maxPerSession:]
	}
	s.queues[sessionID] = queue

	return n
}

func (s *Service) Success(sessionID, message string) {
	s.Notify(sessionID, domain.NotificationSuccess, message)
}

func (s *Service) Error(sessionID, message string) {
	s.Notify(sessionID, domain.NotificationError, message)
}

func (s *Service) Info(sessionID, message string) {
	s.Notify(sessionID, domain.NotificationInfo, message)
}

// Drain забирает и удаляет все актуальные уведомления сессии в порядке поступления
func (s *Service) Drain(sessionID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queues[sessionID]
	delete(s.queues, sessionID)

	cutoff := s.now().Add(-s.ttl)
	out := make([]domain.Notification, 0, len(queue))
	for _, n := range queue {
		if n.CreatedAt.After(cutoff) {
			out = append(out, n)
		}
	}
	return out
}

// Prune удаляет устаревшие уведомления всех сессий, возвращает число удаленных
func (s *Service) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, queue := range s.queues {
		kept := queue[:0]
		for _, n := range queue {
			if n.CreatedAt.After(cutoff) {
				kept = append(kept, n)
			} else {
				removed++
			}
		}
		if len(kept) == 0 {
			delete(s.queues, id)
			continue
		}
		s.queues[id] = kept
	}
	return removed
}
