package option

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/pkg/dbmetrics"
	"github.com/jiholee0/CHS-BookingService/pkg/psqlbuilder"
)

const foreignKeyViolation = "23503"

var optionColumns = []string{
	"id",
	"name",
	"description",
	"category",
	"price_type",
	"base_price",
	"unit",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом дополнительных опций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория опций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает опцию в каталоге
func (r *Repository) Create(ctx context.Context, opt *domain.AdditionalOption) (*domain.AdditionalOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("additional_options").
		Columns(
			"name",
			"description",
			"category",
			"price_type",
			"base_price",
			"unit",
			"is_active",
		).
		Values(
			opt.Name,
			opt.Description,
			opt.Category,
			opt.PriceType,
			opt.BasePrice,
			opt.Unit,
			opt.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&opt.ID,
		&opt.CreatedAt,
		&opt.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return opt, nil
}

// GetByID получает опцию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AdditionalOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(optionColumns...).
		From("additional_options").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	opt, err := scanOption(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan option: %v", ErrScanRow, err)
	}

	return opt, nil
}

// GetByIDs получает опции по списку идентификаторов.
// Отсутствующие id не считаются ошибкой: вызывающий сам решает,
// что делать с нерезолвнутыми опциями.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.AdditionalOption, error) {
	if len(ids) == 0 {
		return []*domain.AdditionalOption{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(optionColumns...).
		From("additional_options").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]*domain.AdditionalOption, 0, len(ids))
	for rows.Next() {
		opt, err := scanOption(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// List получает опции каталога с фильтрацией по категории и активности
func (r *Repository) List(ctx context.Context, filter domain.OptionsFilter) ([]*domain.AdditionalOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(optionColumns...).
		From("additional_options").
		OrderBy("category ASC, name ASC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]*domain.AdditionalOption, 0)
	for rows.Next() {
		opt, err := scanOption(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// Update частично обновляет опцию
func (r *Repository) Update(ctx context.Context, id int64, upd domain.OptionUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("additional_options").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.Category != nil {
		updateBuilder = updateBuilder.Set("category", *upd.Category)
	}
	if upd.PriceType != nil {
		updateBuilder = updateBuilder.Set("price_type", *upd.PriceType)
	}
	if upd.BasePrice != nil {
		updateBuilder = updateBuilder.Set("base_price", *upd.BasePrice)
	}
	if upd.Unit != nil {
		updateBuilder = updateBuilder.Set("unit", *upd.Unit)
	}
	if upd.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *upd.IsActive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// Delete удаляет опцию из каталога.
// Опция, на которую ссылаются снимки booking_options, защищена
// RESTRICT и возвращает ErrOptionInUse.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("additional_options").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return ErrOptionInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

func scanOption(scan func(dest ...interface{}) error) (*domain.AdditionalOption, error) {
	var opt domain.AdditionalOption

	err := scan(
		&opt.ID,
		&opt.Name,
		&opt.Description,
		&opt.Category,
		&opt.PriceType,
		&opt.BasePrice,
		&opt.Unit,
		&opt.IsActive,
		&opt.CreatedAt,
		&opt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &opt, nil
}
