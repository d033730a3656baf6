package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockedDatesHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/blocked_dates"
	calculateQuoteHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/calculate_quote"
	cancelBookingHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/cancel_booking"
	catalogOptionsHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/catalog_options"
	catalogServicesHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/catalog_services"
	getAllBookingsHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/get_all_bookings"
	getAvailableTimesHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/get_available_times"
	getBookingHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/get_user_bookings"
	submitQuoteHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/submit_quote"
	updateBookingHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/jiholee0/CHS-BookingService/internal/api/handlers/update_booking_status"
	"github.com/jiholee0/CHS-BookingService/internal/api/middleware"
	"github.com/jiholee0/CHS-BookingService/internal/config"
	blockedDateRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/booking"
	optionRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/option"
	serviceRepo "github.com/jiholee0/CHS-BookingService/internal/infra/storage/service"
	identityServiceClient "github.com/jiholee0/CHS-BookingService/internal/integrations/identity"
	availabilityService "github.com/jiholee0/CHS-BookingService/internal/service/availability"
	bookingsService "github.com/jiholee0/CHS-BookingService/internal/service/bookings"
	catalogService "github.com/jiholee0/CHS-BookingService/internal/service/catalog"
	calculateQuoteUC "github.com/jiholee0/CHS-BookingService/internal/usecase/calculate_quote"
	getAvailableTimesUC "github.com/jiholee0/CHS-BookingService/internal/usecase/get_available_times"
	submitQuoteUC "github.com/jiholee0/CHS-BookingService/internal/usecase/submit_quote"
	"github.com/jiholee0/CHS-BookingService/pkg/dbmetrics"
	"github.com/jiholee0/CHS-BookingService/pkg/logger"
	"github.com/jiholee0/CHS-BookingService/pkg/metrics"
	"github.com/jiholee0/CHS-BookingService/pkg/simpletxmanager"
	"github.com/jiholee0/CHS-BookingService/pkg/txmanager"
	"github.com/jiholee0/CHS-BookingService/pkg/types"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CHS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочая сетка слотов
	slotUniverse := make([]types.TimeString, 0, len(cfg.Slots.StartTimes))
	for _, raw := range cfg.Slots.StartTimes {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			log.Fatal("Invalid slot start time in config: %s", raw)
		}
		slotUniverse = append(slotUniverse, slot)
	}
	log.Info("Slot universe configured: %v", cfg.Slots.StartTimes)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		serviceRepository     *serviceRepo.Repository
		optionRepository      *optionRepo.Repository
		blockedDateRepository *blockedDateRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		optionRepository = optionRepo.NewRepository(wrappedDB)
		blockedDateRepository = blockedDateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		optionRepository = optionRepo.NewRepository(db)
		blockedDateRepository = blockedDateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		serviceRepository,
		optionRepository,
		identityClient,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		blockedDateRepository,
		identityClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		blockedDateRepository,
		identityClient,
		slotUniverse,
		log,
	)

	// Инициализируем use cases
	calculateQuoteUseCase := calculateQuoteUC.NewUseCase(
		serviceRepository,
		optionRepository,
		log,
	)
	submitQuoteUseCase := submitQuoteUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		optionRepository,
		blockedDateRepository,
		txMgr,
		slotUniverse,
		log,
	)
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		slotUniverse,
		log,
	)

	// Инициализируем handlers
	calculateQuote := calculateQuoteHandler.NewHandler(calculateQuoteUseCase, log)
	submitQuote := submitQuoteHandler.NewHandler(submitQuoteUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	catalogServices := catalogServicesHandler.NewHandler(catalogSvc, log)
	catalogOptions := catalogOptionsHandler.NewHandler(catalogSvc, log)
	blockedDates := blockedDatesHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг и опций
	api.HandleFunc("/services", catalogServices.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/options", catalogOptions.HandleList).Methods(http.MethodGet)

	// Предварительный расчёт стоимости
	api.HandleFunc("/quotes/calculate", calculateQuote.Handle).Methods(http.MethodPost)

	// Свободные слоты на дату
	api.HandleFunc("/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)

	// Заблокированные даты
	api.HandleFunc("/blocked-dates", blockedDates.HandleList).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	// Оформление заказа из сметы
	protected.HandleFunc("/quotes", submitQuote.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/bookings/my", getUserBookings.Handle).Methods(http.MethodGet)

	// Список всех бронирований (администратор)
	protected.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Редактирование бронирования владельцем
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Смена статуса бронирования (администратор)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена/удаление бронирования
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Управление каталогом (администратор) ---
	protected.HandleFunc("/services", catalogServices.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", catalogServices.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", catalogServices.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/options", catalogOptions.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/options/{optionId}", catalogOptions.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/options/{optionId}", catalogOptions.HandleDelete).Methods(http.MethodDelete)

	// --- Управление блокировками дат (администратор) ---
	protected.HandleFunc("/blocked-dates", blockedDates.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/bulk", blockedDates.HandleBulkCreate).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/date/{date}", blockedDates.HandleDeleteByDate).Methods(http.MethodDelete)
	protected.HandleFunc("/blocked-dates/{blockedDateId}", blockedDates.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
