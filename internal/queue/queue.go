// Package queue implements the delivery channel between span callbacks and
// stream consumers: FIFO, safe for concurrent enqueue and dequeue, with a
// bounded wait on the consuming side.
package queue

import (
	"sync"
	"time"
)

// Queue carries serialized patches from producers to the consumer loop.
type Queue interface {
	// Enqueue adds a message. It never blocks the caller; a full bounded
	// queue drops the message instead and reports false.
	Enqueue(msg string) bool

	// DequeueTimeout waits up to timeout for the next message. The second
	// return value is false when the wait timed out.
	DequeueTimeout(timeout time.Duration) (string, bool)

	// Len reports the number of undelivered messages.
	Len() int
}

// Unbounded is a condition-variable backed FIFO limited only by process
// memory. Enqueue always succeeds.
type Unbounded struct {
	cond   *sync.Cond
	values []string
}

// NewUnbounded creates an empty unbounded queue.
func NewUnbounded() *Unbounded {
	return &Unbounded{cond: sync.NewCond(&sync.Mutex{})}
}

func (q *Unbounded) Enqueue(msg string) bool {
	q.cond.L.Lock()
	q.values = append(q.values, msg)
	q.cond.L.Unlock()
	q.cond.Broadcast()
	return true
}

func (q *Unbounded) DequeueTimeout(timeout time.Duration) (string, bool) {
	timedOut := false
	timer := time.AfterFunc(timeout, func() {
		q.cond.L.Lock()
		timedOut = true
		q.cond.L.Unlock()
		q.cond.Broadcast()
	})
	defer timer.Stop()

	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	for len(q.values) == 0 && !timedOut {
		q.cond.Wait()
	}
	if len(q.values) == 0 {
		return "", false
	}

	msg := q.values[0]
	copy(q.values, q.values[1:])
	q.values = q.values[:len(q.values)-1]
	return msg, true
}

func (q *Unbounded) Len() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	return len(q.values)
}

// Bounded is a channel-backed FIFO with fixed capacity. When full, Enqueue
// drops the message rather than stall the producer.
type Bounded struct {
	ch      chan string
	mu      sync.Mutex
	dropped int64
}

// NewBounded creates a bounded queue with the given capacity.
func NewBounded(capacity int) *Bounded {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bounded{ch: make(chan string, capacity)}
}

func (q *Bounded) Enqueue(msg string) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		q.mu.Lock()
		q.dropped++
		q.mu.Unlock()
		return false
	}
}

func (q *Bounded) DequeueTimeout(timeout time.Duration) (string, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-q.ch:
		return msg, true
	case <-timer.C:
		return "", false
	}
}

func (q *Bounded) Len() int { return len(q.ch) }

// Dropped reports how many messages were shed due to a full queue.
func (q *Bounded) Dropped() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
