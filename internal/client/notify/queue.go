// Package notify keeps the queue of user-facing notifications raised by the
// client. Rendering them is up to the front end; the queue only orders,
// expires and removes them.
package notify

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/google/uuid"
)

// Notifier accepts notifications.
type Notifier interface {
	Notify(t models.NotificationType, message string)
}

// Queue is a FIFO of notifications, safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []models.Notification
	now   func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Notify adds a notification with the default duration.
func (q *Queue) Notify(t models.NotificationType, message string) {
	q.Add(t, message, 0)
}

// Add enqueues a notification and returns it. A non-positive duration is
// replaced by models.DefaultNotificationDuration.
func (q *Queue) Add(t models.NotificationType, message string, duration time.Duration) models.Notification {
	if duration <= 0 {
		duration = models.DefaultNotificationDuration
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   message,
		Duration:  duration,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()
	return n
}

// Prune removes notifications that expired at or before now and returns how
// many were removed.
func (q *Queue) Prune(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, n := range q.items {
		if now.Before(n.ExpiresAt()) {
			kept = append(kept, n)
		}
	}
	removed := len(q.items) - len(kept)
	q.items = kept
	return removed
}

// Drain returns all queued notifications in order and empties the queue.
func (q *Queue) Drain() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
