package scheduler

import (
	"agency/internal/events"
	"agency/internal/logger"
	"agency/internal/metrics"
	"agency/internal/repositories"
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	JobDispatch = "dispatch"

	DEFAULT_SCHEDULE = "@every 1m"
	RUN_TIMEOUT      = 30 * time.Second
)

// Notifier receives change notifications for connected clients.
type Notifier interface {
	Notify(channel, eventType, action string, data map[string]any)
}

type Result struct {
	Dispatched int64 `json:"dispatched"`
	Expired    int64 `json:"expired"`
}

// Dispatcher marks scheduled communications as sent once their time has passed and
// expires payment requests past their expiry.
type Dispatcher struct {
	communications repositories.CommunicationRepository
	payments       repositories.PaymentRepository
	notifier       Notifier
	schedule       string
	now            func() time.Time
	log            logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func New(
	communications repositories.CommunicationRepository,
	payments repositories.PaymentRepository,
	notifier Notifier,
	schedule string,
) *Dispatcher {
	if schedule == "" {
		schedule = DEFAULT_SCHEDULE
	}
	return &Dispatcher{
		communications: communications,
		payments:       payments,
		notifier:       notifier,
		schedule:       schedule,
		now:            func() time.Time { return time.Now().UTC() },
		log:            logger.New("scheduler"),
	}
}

func (d *Dispatcher) Start() error {
	log := d.log.Function("Start")

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}

	d.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := d.cron.AddFunc(d.schedule, d.tick); err != nil {
		return log.Err("invalid dispatch schedule", err, "schedule", d.schedule)
	}

	d.cron.Start()
	d.running = true
	log.Info("Dispatcher started", "schedule", d.schedule)
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	stopped := d.cron.Stop()
	d.running = false
	d.mu.Unlock()

	select {
	case <-stopped.Done():
		d.log.Function("Stop").Info("Dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), RUN_TIMEOUT)
	defer cancel()

	_, err := d.RunOnce(ctx)
	metrics.RecordSchedulerRun(JobDispatch, err)
}

func (d *Dispatcher) RunOnce(ctx context.Context) (Result, error) {
	log := d.log.Function("RunOnce")
	now := d.now()

	var result Result

	due, err := d.communications.GetDueScheduled(ctx, now)
	if err != nil {
		return result, log.Err("failed to load due communications", err)
	}

	if len(due) > 0 {
		ids := make([]string, len(due))
		for i, communication := range due {
			ids[i] = communication.ID
		}

		result.Dispatched, err = d.communications.MarkSent(ctx, ids, now)
		if err != nil {
			return result, log.Err("failed to mark communications sent", err, "count", len(ids))
		}
		metrics.ScheduledDispatchedTotal.Add(float64(result.Dispatched))
		d.notify(events.ChannelCommunications, "communication", "sent", map[string]any{"ids": ids})
	}

	result.Expired, err = d.payments.ExpireOverdue(ctx, now)
	if err != nil {
		return result, log.Err("failed to expire payments", err)
	}
	if result.Expired > 0 {
		metrics.PaymentsExpiredTotal.Add(float64(result.Expired))
		d.notify(events.ChannelPayments, "payment", "expired", map[string]any{"count": result.Expired})
	}

	if result.Dispatched > 0 || result.Expired > 0 {
		log.Info("Dispatch run complete", "dispatched", result.Dispatched, "expired", result.Expired)
	}
	return result, nil
}

func (d *Dispatcher) notify(channel, eventType, action string, data map[string]any) {
	if d.notifier != nil {
		d.notifier.Notify(channel, eventType, action, data)
	}
}
