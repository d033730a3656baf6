package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jiholee0/CHS-BookingService/internal/domain"
	"github.com/jiholee0/CHS-BookingService/pkg/dbmetrics"
	"github.com/jiholee0/CHS-BookingService/pkg/psqlbuilder"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

// столбцы bookings + присоединённые столбцы services
var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.service_id",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.address",
	"b.detail_address",
	"b.area",
	"b.special_request",
	"b.service_price",
	"b.options_price",
	"b.total_price",
	"b.before_images",
	"b.after_images",
	"b.completed_at",
	"b.created_at",
	"b.updated_at",
	"s.id",
	"s.name",
	"s.description",
	"s.category",
	"s.base_price",
	"s.price_per_area",
	"s.min_area",
	"s.duration_minutes",
	"s.is_active",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками его опций.
// Опции вставляются тем же executor'ом, что и бронирование: при вызове внутри
// транзакции (через context) вся агрегация создаётся атомарно.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"service_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"address",
			"detail_address",
			"area",
			"special_request",
			"service_price",
			"options_price",
			"total_price",
			"before_images",
			"after_images",
		).
		Values(
			booking.CustomerID,
			booking.ServiceID,
			domain.NormalizeDate(booking.BookingDate),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Address,
			booking.DetailAddress,
			booking.Area,
			booking.SpecialRequest,
			booking.ServicePrice,
			booking.OptionsPrice,
			booking.TotalPrice,
			pq.Array(booking.BeforeImages),
			pq.Array(booking.AfterImages),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Снимки цен опций создаются вместе с бронированием и далее неизменяемы
	for i := range booking.Options {
		opt := &booking.Options[i]
		opt.BookingID = booking.ID

		query, args, err := psqlbuilder.Insert("booking_options").
			Columns("booking_id", "option_id", "quantity", "price").
			Values(opt.BookingID, opt.OptionID, opt.Quantity, opt.Price).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build option insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&opt.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert booking option: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с услугой и опциями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	options, err := r.getOptions(ctx, executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Options = options

	return booking, nil
}

// List получает бронирования с фильтрацией по владельцу, услуге, статусу и дате.
// Внутри транзакции при фильтре по конкретному дню строки блокируются
// FOR UPDATE - на этом держится проверка занятости слота при оформлении.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.customer_id": *filter.CustomerID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.ExcludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusCancelled})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"b.booking_date": domain.NormalizeDate(*filter.Date)}).
			OrderBy("b.start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.booking_date DESC, b.start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
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

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetBookedSlots получает занятые окна на дату (статус != cancelled)
func (r *Repository) GetBookedSlots(ctx context.Context, date time.Time) ([]domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("bookings").
		Where(squirrel.Eq{"booking_date": domain.NormalizeDate(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BookedSlot, 0)
	for rows.Next() {
		var startTime, endTime string
		if err := rows.Scan(&startTime, &endTime); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, domain.BookedSlot{
			StartTime: types.TimeString(startTime),
			EndTime:   types.TimeString(endTime),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// UpdateFields обновляет редактируемые клиентом поля бронирования.
// Услуга и снимок цены неизменяемы, поэтому их здесь нет.
// Непустой PrevStatus добавляет guard по статусу: если статус уже
// другой, запись не меняется и возвращается ErrStatusConflict.
func (r *Repository) UpdateFields(ctx context.Context, id int64, upd domain.BookingUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.PrevStatus != "" {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": upd.PrevStatus})
	}

	if upd.BookingDate != nil {
		updateBuilder = updateBuilder.Set("booking_date", domain.NormalizeDate(*upd.BookingDate))
	}
	if upd.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *upd.EndTime)
	}
	if upd.Address != nil {
		updateBuilder = updateBuilder.Set("address", *upd.Address)
	}
	if upd.DetailAddress != nil {
		updateBuilder = updateBuilder.Set("detail_address", *upd.DetailAddress)
	}
	if upd.SpecialRequest != nil {
		updateBuilder = updateBuilder.Set("special_request", *upd.SpecialRequest)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateFields - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateFields - execute update: %v", ErrExecQuery, err)
	}

	return checkAffectedGuarded(result, "UpdateFields", upd.PrevStatus != "")
}

// UpdateStatus обновляет статус бронирования compare-and-swap запросом:
// переход применяется только если статус в базе равен PrevStatus.
// При переводе в completed одновременно прикрепляются фотографии до/после
// и отметка времени завершения.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, upd domain.BookingStatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", upd.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.PrevStatus != "" {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": upd.PrevStatus})
	}

	if upd.BeforeImages != nil {
		updateBuilder = updateBuilder.Set("before_images", pq.Array(upd.BeforeImages))
	}
	if upd.AfterImages != nil {
		updateBuilder = updateBuilder.Set("after_images", pq.Array(upd.AfterImages))
	}
	if upd.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *upd.CompletedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffectedGuarded(result, "UpdateStatus", upd.PrevStatus != "")
}

// Delete физически удаляет бронирование (строки опций каскадируются)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// getOptions получает опции бронирования вместе с записями каталога
func (r *Repository) getOptions(ctx context.Context, executor DBExecutor, bookingID int64) ([]domain.BookingOption, error) {
	query, args, err := psqlbuilder.Select(
		"bo.id",
		"bo.booking_id",
		"bo.option_id",
		"bo.quantity",
		"bo.price",
		"o.name",
		"o.category",
		"o.price_type",
		"o.base_price",
		"o.unit",
		"o.is_active",
	).
		From("booking_options bo").
		Join("additional_options o ON o.id = bo.option_id").
		Where(squirrel.Eq{"bo.booking_id": bookingID}).
		OrderBy("bo.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]domain.BookingOption, 0)
	for rows.Next() {
		var bo domain.BookingOption
		var opt domain.AdditionalOption

		err := rows.Scan(
			&bo.ID,
			&bo.BookingID,
			&bo.OptionID,
			&bo.Quantity,
			&bo.Price,
			&opt.Name,
			&opt.Category,
			&opt.PriceType,
			&opt.BasePrice,
			&opt.Unit,
			&opt.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getOptions - scan row: %v", ErrScanRow, err)
		}

		opt.ID = bo.OptionID
		bo.Option = &opt
		options = append(options, bo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOptions - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// scanBooking сканирует строку bookings с присоединённой услугой
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var service domain.Service
	var startTime, endTime string
	var completedAt, createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.BookingDate,
		&startTime,
		&endTime,
		&booking.Status,
		&booking.Address,
		&booking.DetailAddress,
		&booking.Area,
		&booking.SpecialRequest,
		&booking.ServicePrice,
		&booking.OptionsPrice,
		&booking.TotalPrice,
		pq.Array(&booking.BeforeImages),
		pq.Array(&booking.AfterImages),
		&completedAt,
		&createdAt,
		&updatedAt,
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Category,
		&service.BasePrice,
		&service.PricePerArea,
		&service.MinArea,
		&service.DurationMinutes,
		&service.IsActive,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime = types.TimeString(startTime)
	booking.EndTime = types.TimeString(endTime)
	if completedAt.Valid {
		booking.CompletedAt = &completedAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.Service = &service

	return &booking, nil
}

// checkAffected возвращает ErrBookingNotFound, если запрос не затронул ни одной строки
func checkAffected(result sql.Result, op string) error {
	return checkAffectedGuarded(result, op, false)
}

// checkAffectedGuarded различает пропавшую запись и сработавший guard по статусу:
// при guarded запросе ноль затронутых строк означает конкурентную смену статуса
func checkAffectedGuarded(result sql.Result, op string, guarded bool) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		if guarded {
			return ErrStatusConflict
		}
		return ErrBookingNotFound
	}
	return nil
}
