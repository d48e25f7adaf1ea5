package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/shenikar/armour_safety/internal/models"
	"github.com/sirupsen/logrus"
)

var errNotStarted = errors.New("inline dispatcher is not started")

// InlineDispatcher отправляет оповещение в отдельной горутине внутри процесса,
// без очереди. Используется при DISPATCH_MODE=inline.
type InlineDispatcher struct {
	sender Sender
	logger *logrus.Logger

	mu      sync.RWMutex
	ctx     context.Context
	handler ResultHandler
	wg      sync.WaitGroup
}

func NewInlineDispatcher(sender Sender, logger *logrus.Logger) *InlineDispatcher {
	return &InlineDispatcher{
		sender: sender,
		logger: logger,
	}
}

// Start привязывает обработчик результатов и контекст жизни процесса
func (d *InlineDispatcher) Start(ctx context.Context, handler ResultHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctx = ctx
	d.handler = handler
	d.logger.Info("Inline alert dispatcher started")
}

// Dispatch запускает единственную попытку отправки и сразу возвращает управление
func (d *InlineDispatcher) Dispatch(_ context.Context, job models.AlertJob) error {
	d.mu.RLock()
	ctx, handler := d.ctx, d.handler
	d.mu.RUnlock()
	if handler == nil {
		return errNotStarted
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		deliver(ctx, d.sender, handler, d.logger, job)
	}()
	return nil
}

// Wait ожидает завершения всех начатых отправок
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}
