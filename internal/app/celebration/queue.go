// Package celebration provides the bounded FIFO of pending badge
// celebrations. The queue is an explicit value type owned by the caller —
// there is no ambient global "current celebration" state. When the queue is
// full the oldest entry is dropped; a missed confetti animation is cheaper
// than unbounded growth.
package celebration

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// Item is one pending celebration.
type Item struct {
	Badge     domain.Badge `json:"badge"`
	AwardedAt time.Time    `json:"awarded_at"`
}

// DefaultCapacity bounds a user's pending celebrations.
const DefaultCapacity = 16

// Queue is a bounded FIFO of celebrations. Zero value is not usable; create
// with New. Not safe for concurrent use — callers hold the per-user lock.
type Queue struct {
	capacity int
	items    []Item
}

// New creates a queue with the given capacity (DefaultCapacity if <= 0).
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity}
}

// Enqueue appends an item, dropping the oldest when full.
func (q *Queue) Enqueue(item Item) {
	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, item)
}

// Dequeue removes and returns the oldest item.
func (q *Queue) Dequeue() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Peek returns the oldest item without removing it.
func (q *Queue) Peek() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return q.items[0], true
}

// Len returns the number of pending celebrations.
func (q *Queue) Len() int { return len(q.items) }
