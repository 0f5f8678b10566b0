package outbox

import (
	"context"
	"sync"
	"time"
)

const (
	defaultInterval  = 30 * time.Second
	defaultBatchSize = 50
)

// Worker периодически доставляет события комиссии, которые не удалось передать сразу
type Worker struct {
	deliverer PendingDeliverer
	interval  time.Duration
	batchSize int
	logger    Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewWorker создает воркер outbox
func NewWorker(deliverer PendingDeliverer, interval time.Duration, batchSize int, logger Logger) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Worker{
		deliverer: deliverer,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start запускает цикл доставки в отдельной горутине
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})

	w.wg.Add(1)
	go w.loop(ctx, w.stopCh)

	w.logger.Info("OutboxWorker: started, interval=%s, batch=%d", w.interval, w.batchSize)
}

// Stop останавливает цикл и ждёт завершения текущей итерации
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("OutboxWorker: stopped")
}

func (w *Worker) loop(ctx context.Context, stopCh <-chan struct{}) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce доставляет пачки событий, пока они полные
func (w *Worker) RunOnce(ctx context.Context) int {
	total := 0
	for {
		delivered, err := w.deliverer.DeliverPending(ctx, w.batchSize)
		total += delivered
		if err != nil {
			w.logger.Error("OutboxWorker: delivery failed: %v", err)
			break
		}
		// Неполная пачка либо есть недоставленные: ждём следующего тика
		if delivered < w.batchSize {
			break
		}
	}

	if total > 0 {
		w.logger.Info("OutboxWorker: delivered %d commission events", total)
	}
	return total
}
