package blockeddate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/pkg/dbmetrics"
	"github.com/jiholee0/CHS-BookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var blockedDateColumns = []string{
	"id",
	"date",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с заблокированными датами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create блокирует дату. Повторная блокировка той же даты
// возвращает ErrDuplicateDate (UNIQUE по date).
func (r *Repository) Create(ctx context.Context, date time.Time, reason *string) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason").
		Values(domain.NormalizeDate(date), reason).
		Suffix("RETURNING id, date, reason, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	blocked, err := scanBlockedDate(row.Scan)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateDate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return blocked, nil
}

// GetByDate получает запись блокировки на конкретный день
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		Where(squirrel.Eq{"date": domain.NormalizeDate(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	blocked, err := scanBlockedDate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// List получает блокировки в диапазоне дат включительно
func (r *Repository) List(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		Where(squirrel.GtOrEq{"date": domain.NormalizeDate(from)}).
		Where(squirrel.LtOrEq{"date": domain.NormalizeDate(to)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		blocked, err := scanBlockedDate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Delete удаляет блокировку по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, executor, query, args, "Delete")
}

// DeleteByDate удаляет блокировку по календарному дню
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"date": domain.NormalizeDate(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	return r.exec(ctx, executor, query, args, "DeleteByDate")
}

func (r *Repository) exec(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrDateNotFound
	}

	return nil
}

func scanBlockedDate(scan func(dest ...interface{}) error) (*domain.BlockedDate, error) {
	var blocked domain.BlockedDate

	err := scan(
		&blocked.ID,
		&blocked.Date,
		&blocked.Reason,
		&blocked.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &blocked, nil
}
