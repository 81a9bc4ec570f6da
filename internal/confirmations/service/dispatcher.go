package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"tablebooker/pkg/logger"
	"tablebooker/pkg/model"
)

var ErrQueueFull = errors.New("confirmation queue is full")

// Deliverer is the work the dispatcher runs for every event.
type Deliverer interface {
	Deliver(ctx context.Context, e *model.ReservationCreatedEvent) error
}

type DispatcherConfig struct {
	QueueSize   int
	MaxAttempts int
	RetryDelay  time.Duration
}

// Dispatcher runs confirmation delivery in the background of the booking
// service when no broker is configured. Enqueueing never blocks the caller.
type Dispatcher struct {
	deliverer Deliverer
	cfg       DispatcherConfig
	log       *logger.Logger
	queue     chan *model.ReservationCreatedEvent

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(deliverer Deliverer, cfg DispatcherConfig, log *logger.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		deliverer: deliverer,
		cfg:       cfg,
		log:       log,
		queue:     make(chan *model.ReservationCreatedEvent, cfg.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// PublishReservationCreated queues e for delivery.
func (d *Dispatcher) PublishReservationCreated(_ context.Context, e *model.ReservationCreatedEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return errors.New("confirmation dispatcher is stopped")
	}

	select {
	case d.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e *model.ReservationCreatedEvent) {
	for attempt := 1; ; attempt++ {
		err := d.deliverer.Deliver(d.ctx, e)
		if err == nil {
			return
		}

		if attempt >= d.cfg.MaxAttempts || !IsTemporary(err) || d.ctx.Err() != nil {
			d.log.Error("Confirmation delivery failed",
				"reservation_id", e.ReservationID,
				"attempts", attempt,
				"error", err,
			)
			return
		}

		d.log.Warn("Confirmation delivery failed, retrying",
			"reservation_id", e.ReservationID,
			"attempt", attempt,
			"error", err,
		)

		t := time.NewTimer(d.cfg.RetryDelay * time.Duration(attempt))
		select {
		case <-t.C:
		case <-d.ctx.Done():
			t.Stop()
		}
	}
}

// Stop stops accepting events and drains the queue. Deliveries still pending
// when ctx ends are abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}
