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

	createBookingHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/create_booking"
	createReviewHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/create_review"
	getBookingHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/get_booking"
	getBookingFormHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/get_booking_form"
	getMyBookingsHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/get_my_bookings"
	getTourReviewsHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/get_tour_reviews"
	listNotificationsHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/list_notifications"
	searchToursHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/search_tours"
	updateBookingStatusHandler "github.com/m04kA/SMC-TourBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/config"
	"github.com/m04kA/SMC-TourBooking/internal/infra/storage/submission"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
	bookingsService "github.com/m04kA/SMC-TourBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TourBooking/internal/service/janitor"
	"github.com/m04kA/SMC-TourBooking/internal/service/notifications"
	createBookingUC "github.com/m04kA/SMC-TourBooking/internal/usecase/create_booking"
	createReviewUC "github.com/m04kA/SMC-TourBooking/internal/usecase/create_review"
	getBookingFormUC "github.com/m04kA/SMC-TourBooking/internal/usecase/get_booking_form"
	searchToursUC "github.com/m04kA/SMC-TourBooking/internal/usecase/search_tours"
	updateBookingStatusUC "github.com/m04kA/SMC-TourBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-TourBooking/pkg/fence"
	"github.com/m04kA/SMC-TourBooking/pkg/logger"
	"github.com/m04kA/SMC-TourBooking/pkg/metrics"
)

// submissionStore общий контракт Postgres- и memory-хранилища
type submissionStore interface {
	createBookingUC.SubmissionStore
	janitor.SubmissionCleaner
}

func main() {
	// Загружаем конфигурацию
	configPath := config.PathFromEnv()
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-TourBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище ключей идемпотентности
	var store submissionStore
	if cfg.Database.Enabled {
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

		store = submission.NewRepository(db)
	} else {
		store = submission.NewMemoryStore()
		log.Warn("Database disabled: submission tokens are kept in memory and lost on restart")
	}

	// Инициализируем клиент бэкенда
	gatewayOpts := []gateway.Option{}
	if metricsCollector != nil {
		gatewayOpts = append(gatewayOpts, gateway.WithObserver(metricsCollector))
	}
	gatewayClient := gateway.NewClient(
		cfg.Gateway.URL,
		time.Duration(cfg.Gateway.Timeout)*time.Second,
		log,
		gatewayOpts...,
	)
	log.Info("Gateway client initialized (url=%s, timeout=%ds)", cfg.Gateway.URL, cfg.Gateway.Timeout)

	// Инициализируем сервисы
	notificationSvc := notifications.NewService(
		cfg.Booking.NotificationsPerSession,
		time.Duration(cfg.Booking.NotificationTTL)*time.Second,
	)
	bookingSvc := bookingsService.NewService(gatewayClient, log)

	// Инициализируем use cases
	createBookingOpts := []createBookingUC.Option{}
	if metricsCollector != nil {
		createBookingOpts = append(createBookingOpts, createBookingUC.WithMetrics(metricsCollector))
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		gatewayClient,
		store,
		notificationSvc,
		createBookingUC.Config{
			RedirectDelay:          cfg.Booking.RedirectDelay(),
			ProfileErrorSignatures: cfg.Booking.ProfileErrorSignatures,
		},
		log,
		createBookingOpts...,
	)
	getBookingFormUseCase := getBookingFormUC.NewUseCase(gatewayClient, log)
	catalogFence := fence.New()
	searchToursUseCase := searchToursUC.NewUseCase(gatewayClient, catalogFence, log)
	updateStatusUseCase := updateBookingStatusUC.NewUseCase(gatewayClient, notificationSvc, log)
	createReviewUseCase := createReviewUC.NewUseCase(gatewayClient, notificationSvc, log)

	// Инициализируем handlers
	searchTours := searchToursHandler.NewHandler(searchToursUseCase, log)
	getBookingForm := getBookingFormHandler.NewHandler(getBookingFormUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateStatusUseCase, log)
	createReview := createReviewHandler.NewHandler(createReviewUseCase, log)
	getTourReviews := getTourReviewsHandler.NewHandler(bookingSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSvc)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Session)

	// ============================================================
	// PUBLIC ROUTES (без токена доступа)
	// ============================================================

	// Каталог туров
	api.HandleFunc("/tours", searchTours.Handle).Methods(http.MethodGet)

	// Отзывы тура, сгруппированные по оценке
	api.HandleFunc("/tours/{tourId}/reviews", getTourReviews.Handle).Methods(http.MethodGet)

	// Уведомления сессии
	api.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (cookie accessToken или Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)

	// --- Форма бронирования ---
	protected.HandleFunc("/tours/{tourId}/booking-form", getBookingForm.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tours/{tourId}/booking-form/preview", getBookingForm.HandlePreview).Methods(http.MethodPost)
	protected.HandleFunc("/tours/{tourId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// /bookings/my регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Отзывы ---
	protected.HandleFunc("/bookings/{bookingId}/review-eligibility", createReview.HandleEligibility).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reviews", createReview.Handle).Methods(http.MethodPost)

	// Фоновая очистка уведомлений, ключей идемпотентности и тикетов сессий
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		janitor.New(
			notificationSvc,
			store,
			catalogFence,
			janitor.Config{
				Interval:            time.Duration(cfg.Booking.JanitorInterval) * time.Second,
				SubmissionRetention: time.Duration(cfg.Booking.SubmissionRetention) * time.Hour,
				FenceTTL:            time.Duration(cfg.Booking.FenceTTL) * time.Second,
			},
			log,
		).Run(janitorCtx)
	}()

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopJanitor()
	<-janitorDone

	log.Info("Server stopped gracefully")
}
