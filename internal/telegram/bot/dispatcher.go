package bot

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	userQueueSize    = 16
	queueIdleTimeout = 5 * time.Minute
)

// dispatcher fans updates out to one worker per user. A user's updates
// are handled strictly in arrival order; different users run in
// parallel. Workers retire after an idle period so the queue map does
// not grow with every user ever seen.
type dispatcher struct {
	handle      func(tgbotapi.Update)
	logger      *zap.Logger
	wg          *sync.WaitGroup
	stopChan    chan struct{}
	idleTimeout time.Duration

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
}

func newDispatcher(
	handle func(tgbotapi.Update),
	logger *zap.Logger,
	wg *sync.WaitGroup,
	stopChan chan struct{},
) *dispatcher {
	return &dispatcher{
		handle:      handle,
		logger:      logger,
		wg:          wg,
		stopChan:    stopChan,
		idleTimeout: queueIdleTimeout,
		queues:      make(map[int64]chan tgbotapi.Update),
	}
}

// dispatch enqueues the update on its user's queue, starting a worker
// when none is running. Must be called from a single goroutine: the
// enqueue order defines the per-user processing order.
func (d *dispatcher) dispatch(update tgbotapi.Update) {
	if update.Message == nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.handle(update)
		}()
		return
	}

	userID := update.Message.From.ID

	d.mu.Lock()
	defer d.mu.Unlock()

	queue, ok := d.queues[userID]
	if !ok {
		queue = make(chan tgbotapi.Update, userQueueSize)
		d.queues[userID] = queue
		d.wg.Add(1)
		go d.runQueue(userID, queue)
	}

	select {
	case queue <- update:
	default:
		d.logger.Warn("user queue full, dropping update",
			zap.Int64("user_id", userID),
			zap.Int("update_id", update.UpdateID),
		)
	}
}

// runQueue drains one user's updates in FIFO order.
func (d *dispatcher) runQueue(userID int64, queue chan tgbotapi.Update) {
	defer d.wg.Done()

	idle := time.NewTimer(d.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case update := <-queue:
			d.handle(update)
			idle.Reset(d.idleTimeout)
		case <-idle.C:
			// Retire only when nothing was enqueued meanwhile; dispatch
			// holds the same lock, so an enqueue cannot slip between the
			// emptiness check and the removal.
			d.mu.Lock()
			if len(queue) == 0 {
				delete(d.queues, userID)
				d.mu.Unlock()
				return
			}
			d.mu.Unlock()
			idle.Reset(d.idleTimeout)
		case <-d.stopChan:
			return
		}
	}
}
