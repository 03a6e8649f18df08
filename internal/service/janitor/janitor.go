package janitor

import (
	"context"
	"time"
)

// NotificationPruner очередь уведомлений с истекающим сроком жизни
type NotificationPruner interface {
	Prune() int
}

// SubmissionCleaner хранилище ключей идемпотентности
type SubmissionCleaner interface {
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// FencePruner тикеты запросов по сессиям
type FencePruner interface {
	Prune(before time.Time) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config периодичность и сроки хранения
type Config struct {
	Interval time.Duration
	// SubmissionRetention сколько хранятся завершенные отправки
	SubmissionRetention time.Duration
	// FenceTTL через сколько забывается ключ сессии без новых запросов
	FenceTTL time.Duration
}

// Janitor периодически удаляет устаревшие уведомления, завершенные отправки и тикеты сессий
type Janitor struct {
	notifications NotificationPruner
	submissions   SubmissionCleaner
	fences        FencePruner
	cfg           Config
	now           func() time.Time
	logger        Logger
}

func New(
	notifications NotificationPruner,
	submissions SubmissionCleaner,
	fences FencePruner,
	cfg Config,
	logger Logger,
) *Janitor {
	return &Janitor{
		notifications: notifications,
		submissions:   submissions,
		fences:        fences,
		cfg:           cfg,
		now:           time.Now,
		logger:        logger,
	}
}

// Run блокируется до отмены ctx
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep один проход очистки
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.now()
	pruned := j.notifications.Prune()
	fenced := j.fences.Prune(now.Add(-j.cfg.FenceTTL))

	removed, err := j.submissions.DeleteOlderThan(ctx, now.Add(-j.cfg.SubmissionRetention))
	if err != nil {
		j.logger.Error("Janitor: failed to delete old submissions: %v", err)
	}

	if pruned > 0 || fenced > 0 || removed > 0 {
		j.logger.Info("Janitor: pruned %d notifications, %d session keys, removed %d submissions", pruned, fenced, removed)
	}
}
