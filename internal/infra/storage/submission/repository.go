package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/pkg/psqlbuilder"
)

const tableName = "booking_submissions"

var columns = []string{
	"idempotency_key",
	"user_id",
	"tour_id",
	"state",
	"booking_id",
	"message",
	"created_at",
	"updated_at",
}

// Repository хранилище ключей идемпотентности в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Begin захватывает ключ для новой отправки
// Новый ключ вставляется в состоянии submitting; ключ в состоянии failed перезахватывается
// только тем же пользователем для того же тура.
// Если ключ уже в submitting или succeeded, возвращается существующая запись и claimed=false.
func (r *Repository) Begin(ctx context.Context, rec Record) (*Record, bool, error) {
	query, args, err := buildBeginQuery(rec)
	if err != nil {
		return nil, false, fmt.Errorf("%w: Begin - build upsert query: %v", ErrBuildQuery, err)
	}

	claimed, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return claimed, true, nil
	}
	if !errors.Is(err, ErrSubmissionNotFound) {
		return nil, false, fmt.Errorf("%w: Begin - execute upsert: %v", ErrExecQuery, err)
	}

	// Конфликт без обновления: ключ занят активной или успешной отправкой
	existing, err := r.Get(ctx, rec.Key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Complete фиксирует итог отправки
func (r *Repository) Complete(ctx context.Context, key string, state domain.SubmissionState, bookingID, message *string) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("state", string(state)).
		Set("booking_id", bookingID).
		Set("message", message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// Get получает запись по ключу
func (r *Repository) Get(ctx context.Context, key string) (*Record, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Get - %v", ErrScanRow, err)
	}
	return rec, nil
}

// DeleteOlderThan удаляет завершенные записи старше указанного момента
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Lt{"updated_at": before}).
		Where(squirrel.NotEq{"state": string(domain.SubmissionSubmitting)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}
	return result.RowsAffected()
}

func buildBeginQuery(rec Record) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns("idempotency_key", "user_id", "tour_id", "state").
		Values(rec.Key, rec.UserID, rec.TourID, string(domain.SubmissionSubmitting)).
		Suffix(
			"ON CONFLICT (idempotency_key) DO UPDATE SET state = EXCLUDED.state, booking_id = NULL, message = NULL, updated_at = NOW() "+
				"WHERE "+tableName+".state = ? "+
				"AND "+tableName+".user_id = EXCLUDED.user_id AND "+tableName+".tour_id = EXCLUDED.tour_id "+
				"RETURNING idempotency_key, user_id, tour_id, state, booking_id, message, created_at, updated_at",
			string(domain.SubmissionFailed),
		).
		ToSql()
}

func scanRecord(row *sql.Row) (*Record, error) {
	var (
		rec       Record
		state     string
		bookingID sql.NullString
		message   sql.NullString
	)

	err := row.Scan(
		&rec.Key,
		&rec.UserID,
		&rec.TourID,
		&state,
		&bookingID,
		&message,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	rec.State = domain.SubmissionState(state)
	if bookingID.Valid {
		rec.BookingID = &bookingID.String
	}
	if message.Valid {
		rec.Message = &message.String
	}
	return &rec, nil
}
