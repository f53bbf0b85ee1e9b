package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/KubeRPG_Go/internal/logger"
)

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with asynchronous retries and a dead-letter
// file for events that never get through. Used for outbound notifications
// whose subscribers talk to the network.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	retryQueue chan retryItem
	done       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	p := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		retryQueue: make(chan retryItem, RetryQueueBufferSize),
		done:       make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry publishes now and, on failure, queues the event for
// retries with exponential backoff. It never blocks on the retry path.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, LogFieldEventType, evt.Type, LogFieldError, err)
	p.enqueue(retryItem{event: evt, attempts: 1, lastErr: err})
}

// Publish implements Bus. Failures are retried in the background.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case <-p.done:
		p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
		return
	default:
	}
	select {
	case p.retryQueue <- item:
	default:
		p.writeDeadLetter(item, LogMsgRetryQueueFull)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case item := <-p.retryQueue:
			p.retry(item)
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, item.attempts))
	defer timer.Stop()
	select {
	case <-p.done:
		p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
		return
	case <-timer.C:
	}

	log := logger.FromContext(context.Background())
	err := p.bus.Publish(context.Background(), item.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, LogFieldEventType, item.event.Type, LogFieldAttempt, item.attempts)
		return
	}

	item.attempts++
	item.lastErr = err
	if item.attempts > p.maxRetries {
		p.writeDeadLetter(item, LogMsgEventRetryExhausted)
		return
	}
	log.Warn(LogMsgEventRetryFailed, LogFieldEventType, item.event.Type, LogFieldAttempt, item.attempts, LogFieldError, err)
	p.enqueue(item)
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem, reason string) {
	log := logger.FromContext(context.Background())
	log.Warn(reason, LogFieldEventType, item.event.Type, LogFieldAttempt, item.attempts)
	if err := p.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		log.Error(LogMsgDeadLetterWriteFail, LogFieldError, err)
	}
}

// Shutdown stops the retry worker, dead-letters anything still queued and
// closes the dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)

		stopped := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
			err = ctx.Err()
			return
		}

		for {
			select {
			case item := <-p.retryQueue:
				p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
			default:
				err = p.deadLetter.Close()
				return
			}
		}
	})
	return err
}
