package submission_service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

const (
	defaultEventQueueCapacity = 100
	eventPublishTimeout       = 5 * time.Second
)

var (
	ErrEventQueueUnavailable = errors.New("submission event queue is unavailable")
)

// EventQueue hands events to a pool of workers so requests never wait on the broker
type EventQueue struct {
	Next     EventPublisher
	Workers  int
	Capacity int

	jobs   chan SubmissionEvent
	wg     sync.WaitGroup
	logger *logrus.Entry

	mu      sync.RWMutex
	stopped bool
}

func (q *EventQueue) Start() {
	if q.Next == nil {
		panic("event queue expects non-nil publisher")
	}
	if q.Workers <= 0 {
		q.Workers = 1
	}
	if q.Capacity <= 0 {
		q.Capacity = defaultEventQueueCapacity
	}

	q.logger = logrus.WithField("from", "submission event queue")
	q.jobs = make(chan SubmissionEvent, q.Capacity)

	for i := range q.Workers {
		q.wg.Add(1)
		go q.work(i)
	}
	q.logger.Infof("started %d event workers", q.Workers)
}

func (q *EventQueue) PublishSubmission(ctx context.Context, event SubmissionEvent) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		return ErrEventQueueUnavailable
	}

	// when the workers fall behind, it shouldn't block the request indefinitely
	select {
	case <-ctx.Done():
		return errors.Join(ErrEventQueueUnavailable, quest_errors.WrapIPCError(ctx.Err()))
	case q.jobs <- event:
		return nil
	}
}

// Stop drains the queued events and waits for the workers
func (q *EventQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.logger.Info("event workers stopped")
}

func (q *EventQueue) work(id int) {
	defer q.wg.Done()
	logger := q.logger.WithField("worker", id)

	for event := range q.jobs {
		// the request that produced the event is long gone
		ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		err := q.Next.PublishSubmission(ctx, event)
		cancel()
		if err != nil {
			logger.WithField("event_id", event.EventID).Errorf(
				"cannot publish submission event, %v",
				err,
			)
			continue
		}
		logger.WithField("event_id", event.EventID).Debug("published submission event")
	}
}
