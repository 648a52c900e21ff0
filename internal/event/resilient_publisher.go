package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/brandish-progression/internal/logger"
)

type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter file.
// Callers never see a publish error: failed events are retried with exponential backoff
// and dead-lettered once retries are exhausted or the retry queue is full.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	stopOnce   sync.Once
	closeOnce  sync.Once
	closeErr   error
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish implements Bus. It always returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes once and hands failures to the retry worker
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryEntry{event: event, attempts: 1, lastErr: err})
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// Shutdown stops the worker after one final attempt for every queued event
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.closeOnce.Do(func() { p.closeErr = p.deadLetter.Close() })
		return p.closeErr
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (p *ResilientPublisher) enqueue(e retryEntry) {
	select {
	case p.retryQueue <- e:
	default:
		logger.FromContext(context.Background()).Warn(LogMsgRetryQueueFull, "event_type", e.event.Type)
		p.writeDeadLetter(e)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case e := <-p.retryQueue:
			p.retry(e)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry waits out the backoff and attempts again until it succeeds or runs out of attempts
func (p *ResilientPublisher) retry(e retryEntry) {
	log := logger.FromContext(context.Background())

	for e.attempts <= p.maxRetries {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, e.attempts)):
		case <-p.shutdown:
			p.finalAttempt(e)
			return
		}

		err := p.bus.Publish(context.Background(), e.event)
		e.attempts++
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", e.event.Type, "attempts", e.attempts)
			return
		}
		e.lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", e.event.Type, "attempts", e.attempts, "error", err)
	}

	log.Warn(LogMsgEventRetryExhausted, "event_type", e.event.Type, "attempts", e.attempts)
	p.writeDeadLetter(e)
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case e := <-p.retryQueue:
			p.finalAttempt(e)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "events", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) finalAttempt(e retryEntry) {
	err := p.bus.Publish(context.Background(), e.event)
	e.attempts++
	if err != nil {
		e.lastErr = err
		p.writeDeadLetter(e)
	}
}

func (p *ResilientPublisher) writeDeadLetter(e retryEntry) {
	if err := p.deadLetter.Write(e.event, e.attempts, e.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "event_type", e.event.Type, "error", err)
	}
}
