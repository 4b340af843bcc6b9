package transcript

import "sync"

// Queue buffers events emitted under an engine lock so they can be consumed from
// another goroutine. Push never blocks; Ready is signalled after each Push.
// Unlike Transcript, a Queue is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []Event
	ready  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends e. It has the Listener signature.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready fires at least once after events have been pushed.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns the buffered events in push order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}
