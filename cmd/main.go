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
	"github.com/redis/go-redis/v9"

	bookAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/book_appointment"
	createAvailabilityRuleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_availability_rule"
	deleteAvailabilityRuleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_availability_rule"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getBookingPolicyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking_policy"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_customer_appointments"
	getEmployeeAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_employee_appointments"
	getWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_working_hours"
	listAvailabilityRulesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_availability_rules"
	setWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_working_hours"
	transitionAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_appointment"
	updateBookingPolicyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_policy"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	availabilityCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/availability"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	commissionClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/commission"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	notifierClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	commissionService "github.com/m04kA/SMC-AppointmentService/internal/service/commission"
	notificationsService "github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
	policyService "github.com/m04kA/SMC-AppointmentService/internal/service/policy"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	bookAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	getAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	transitionAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
	outboxWorker "github.com/m04kA/SMC-AppointmentService/internal/worker/outbox"
	"github.com/m04kA/SMC-AppointmentService/internal/worker/reminders"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/retry"
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

	log.Info("Starting SMC-AppointmentService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone %s: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилища
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = newMemoryStorage()
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}
		store = newPostgresStorage(wrappedDB)
	}

	// Redis: кэш слотов и отметки отправленных напоминаний
	var (
		slotCache      availabilityCacheStore = availabilityCache.Nop{}
		reminderMarker reminders.MarkerStore
	)
	markerTTL := 2 * time.Duration(cfg.Reminders.LeadMinutes) * time.Minute

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		slotCache = availabilityCache.NewCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		reminderMarker = reminders.NewRedisMarker(redisClient, markerTTL)
		log.Info("Redis connected at %s", cfg.Redis.Addr)
	} else {
		reminderMarker = reminders.NewMemoryMarker(markerTTL)
		log.Info("Redis disabled: availability cache off, reminder markers kept in memory")
	}

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(cfg.Directory.URL, time.Duration(cfg.Directory.Timeout)*time.Second, log)
	catalog := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
	notifier := notifierClient.NewClient(cfg.Notifier.URL, time.Duration(cfg.Notifier.Timeout)*time.Second, log)
	ledger := commissionClient.NewClient(cfg.CommissionAPI.URL, time.Duration(cfg.CommissionAPI.Timeout)*time.Second, log)
	log.Info("Integration clients initialized (Directory=%s, Catalog=%s, Notifier=%s, Commission=%s)",
		cfg.Directory.URL, cfg.Catalog.URL, cfg.Notifier.URL, cfg.CommissionAPI.URL)

	// Инициализируем сервисы
	retryConfig := retry.Config{
		MaxAttempts: cfg.Booking.RetryAttempts,
		BaseDelay:   time.Duration(cfg.Booking.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.Booking.RetryMaxDelayMs) * time.Millisecond,
	}

	generator := availabilityService.NewGenerator(store.workingHours, store.rules, location)
	checker := availabilityService.NewChecker(store.appointments, location)

	policySvc := policyService.NewService(store.policies, log)
	scheduleSvc := scheduleService.NewService(store.txManager, store.workingHours, store.rules, store.appointments, slotCache, log)
	appointmentsSvc := appointmentsService.NewService(store.appointments, log)
	publisher := notificationsService.NewPublisher(notifier, metricsCollector,
		time.Duration(cfg.Booking.NotifyTimeoutSecs)*time.Second, log)
	deliverer := commissionService.NewDeliverer(ledger, store.outbox, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		directory,
		catalog,
		policySvc,
		generator,
		checker,
		slotCache,
		metricsCollector,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		store.appointments,
		directory,
		catalog,
		policySvc,
		generator,
		checker,
		store.txManager,
		slotCache,
		publisher,
		metricsCollector,
		retryConfig,
		log,
	)

	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		store.appointments,
		store.outbox,
		deliverer,
		store.txManager,
		slotCache,
		publisher,
		metricsCollector,
		retryConfig,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, location, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getEmployeeAppointments := getEmployeeAppointmentsHandler.NewHandler(appointmentsSvc, location, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	setWorkingHours := setWorkingHoursHandler.NewHandler(scheduleSvc, log)
	listAvailabilityRules := listAvailabilityRulesHandler.NewHandler(scheduleSvc, log)
	createAvailabilityRule := createAvailabilityRuleHandler.NewHandler(scheduleSvc, log)
	deleteAvailabilityRule := deleteAvailabilityRuleHandler.NewHandler(scheduleSvc, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(policySvc, log)
	updateBookingPolicy := updateBookingPolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Политика бронирования салона
	api.HandleFunc("/salons/{salonId}/booking-policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", transitionAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/appointments", getEmployeeAppointments.Handle).Methods(http.MethodGet)

	// --- Расписание сотрудника ---
	protected.HandleFunc("/employees/{employeeId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/working-hours", setWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{employeeId}/availability-rules", listAvailabilityRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/availability-rules", createAvailabilityRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{employeeId}/availability-rules/{ruleId}", deleteAvailabilityRule.Handle).Methods(http.MethodDelete)

	// --- Настройки салона ---
	protected.HandleFunc("/salons/{salonId}/booking-policy", updateBookingPolicy.Handle).Methods(http.MethodPut)

	// Фоновые задачи
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var scanner *reminders.Scanner
	if cfg.Reminders.Enabled {
		scanner = reminders.NewScanner(
			reminders.Config{
				Schedule:  cfg.Reminders.Schedule,
				Lead:      time.Duration(cfg.Reminders.LeadMinutes) * time.Minute,
				Window:    time.Duration(cfg.Reminders.WindowMinutes) * time.Minute,
				RateLimit: cfg.Reminders.RateLimit,
				Burst:     cfg.Reminders.Burst,
			},
			store.appointments,
			publisher,
			reminderMarker,
			metricsCollector,
			location,
			log,
		)
		if err := scanner.Start(workersCtx); err != nil {
			log.Fatal("Failed to start reminder scanner: %v", err)
		}
	}

	var outbox *outboxWorker.Worker
	if cfg.Outbox.Enabled {
		outbox = outboxWorker.NewWorker(deliverer, time.Duration(cfg.Outbox.Interval)*time.Second, cfg.Outbox.BatchSize, log)
		outbox.Start(workersCtx)
	}

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
		log.Info("Starting server on %s (timezone=%s, storage=%s)", addr, location, cfg.Storage.Driver)
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

	// Фоновые задачи останавливаются после HTTP сервера
	if scanner != nil {
		scanner.Stop()
	}
	if outbox != nil {
		outbox.Stop()
	}
	stopWorkers()

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
