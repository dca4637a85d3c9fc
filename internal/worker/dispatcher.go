package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/solarteam/purchaseline/internal/adapter/push"
	"github.com/solarteam/purchaseline/internal/adapter/smsgate"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/repository"
)

// Dispatcher fans notifications out to registered devices in the background.
// Delivery is fire and forget: a failed or dropped notification is logged
// and never retried, and never affects the transition that produced it.
type Dispatcher struct {
	tokens  repository.PushTokenRepository
	users   repository.UserRepository
	gateway push.Gateway
	sms     smsgate.Gateway
	workers int
	logger  *slog.Logger

	queue  chan *model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(tokens repository.PushTokenRepository, users repository.UserRepository, gateway push.Gateway, sms smsgate.Gateway, queueSize, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		tokens:  tokens,
		users:   users,
		gateway: gateway,
		sms:     sms,
		workers: workers,
		logger:  logger,
		queue:   make(chan *model.Notification, queueSize),
	}
}

// Enqueue hands a notification to the pool without blocking. It reports
// false when the queue is full; the caller logs and drops.
func (d *Dispatcher) Enqueue(n *model.Notification) bool {
	if n == nil || len(n.UserIDs) == 0 {
		return true
	}
	select {
	case d.queue <- n:
		return true
	default:
		return false
	}
}

// Start launches background delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-d.queue:
			if !ok {
				return
			}
			d.deliver(ctx, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n *model.Notification) {
	d.deliverPush(ctx, n)
	d.deliverSMS(ctx, n)
}

func (d *Dispatcher) deliverPush(ctx context.Context, n *model.Notification) {
	registrations, err := d.tokens.ListByUsers(ctx, n.UserIDs)
	if err != nil {
		d.logger.Error("list push tokens failed", slog.String("error", err.Error()))
		return
	}
	if len(registrations) == 0 {
		return
	}

	tokens := make([]string, 0, len(registrations))
	for _, reg := range registrations {
		tokens = append(tokens, reg.Token)
	}

	stale, err := d.gateway.Send(ctx, tokens, n)
	if err != nil {
		switch e := err.(type) {
		case push.TooManyRequestsError:
			d.logger.Warn("push gateway rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			d.logger.Error("push delivery failed", slog.String("error", err.Error()))
		}
		return
	}

	for _, token := range stale {
		if err := d.tokens.Unregister(ctx, token); err != nil {
			d.logger.Error("prune stale push token failed", slog.String("error", err.Error()))
		}
	}
}

func (d *Dispatcher) deliverSMS(ctx context.Context, n *model.Notification) {
	if d.sms == nil || !d.sms.Enabled() {
		return
	}

	for _, userID := range n.UserIDs {
		user, err := d.users.GetByID(ctx, userID)
		if err != nil {
			d.logger.Error("load sms recipient failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			continue
		}
		if user.Phone == nil || user.Carrier == nil {
			continue
		}
		if err := d.sms.Send(ctx, *user.Phone, *user.Carrier, n); err != nil {
			d.logger.Error("sms delivery failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}
}
