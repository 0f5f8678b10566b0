package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
)

// Config параметры сканера напоминаний
type Config struct {
	Schedule  string        // cron-выражение, например "*/5 * * * *"
	Lead      time.Duration // за сколько до начала записи отправлять напоминание
	Window    time.Duration // ширина окна сканирования, обычно равна периоду cron
	RateLimit float64       // напоминаний в секунду
	Burst     int
}

// DefaultConfig напоминание за сутки, проверка каждые 5 минут
func DefaultConfig() Config {
	return Config{
		Schedule:  "*/5 * * * *",
		Lead:      24 * time.Hour,
		Window:    5 * time.Minute,
		RateLimit: 20,
		Burst:     30,
	}
}

// Scanner периодически находит записи, до начала которых осталось Lead,
// и отправляет по каждой одно напоминание
type Scanner struct {
	config       Config
	appointments AppointmentReader
	publisher    NotificationPublisher
	markers      MarkerStore
	limiter      *rate.Limiter
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
	cron         *cron.Cron
}

// NewScanner создает сканер напоминаний
func NewScanner(
	config Config,
	appointments AppointmentReader,
	publisher NotificationPublisher,
	markers MarkerStore,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Scanner {
	defaults := DefaultConfig()
	if config.Schedule == "" {
		config.Schedule = defaults.Schedule
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.RateLimit <= 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}

	return &Scanner{
		config:       config,
		appointments: appointments,
		publisher:    publisher,
		markers:      markers,
		limiter:      rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst),
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Scanner) WithTimeProvider(tp TimeProvider) *Scanner {
	s.timeProvider = tp
	return s
}

// Start запускает сканирование по расписанию; ctx ограничивает время жизни задач
func (s *Scanner) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.location))
	if _, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.Scan(ctx); err != nil {
			s.logger.Error("ReminderScanner: scan failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, s.config.Schedule, err)
	}

	s.cron.Start()
	s.logger.Info("ReminderScanner: started, schedule=%q, lead=%s, window=%s",
		s.config.Schedule, s.config.Lead, s.config.Window)
	return nil
}

// Stop останавливает расписание и ждёт завершения текущего сканирования
func (s *Scanner) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("ReminderScanner: stopped")
}

// Scan отправляет напоминания по записям, начинающимся в [now+Lead, now+Lead+Window)
// Возвращает количество отправленных напоминаний
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	from := s.timeProvider.Now().Add(s.config.Lead)
	to := from.Add(s.config.Window)

	upcoming, err := s.appointments.ListUpcoming(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: list upcoming: %v", ErrInternal, err)
	}

	sent := 0
	for _, a := range upcoming {
		if !a.Status.IsNonTerminal() {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return sent, err
		}

		marked, err := s.markers.TryMark(ctx, a.ID)
		if err != nil {
			s.logger.Warn("ReminderScanner: skip appointment id=%d: %v", a.ID, err)
			continue
		}
		if !marked {
			continue
		}

		if !s.publisher.Publish(ctx, a, notifications.EventReminder) {
			// Следующее сканирование попробует снова, пока запись в окне
			if err := s.markers.Release(ctx, a.ID); err != nil {
				s.logger.Warn("ReminderScanner: failed to release marker for appointment id=%d: %v", a.ID, err)
			}
			continue
		}

		s.metrics.IncReminderSent()
		sent++
	}

	if sent > 0 {
		s.logger.Info("ReminderScanner: sent %d reminders for %s..%s", sent,
			from.In(s.location).Format("2006-01-02 15:04"), to.In(s.location).Format("15:04"))
	}
	return sent, nil
}
