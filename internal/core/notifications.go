package core

import (
	"sync"
	"time"
)

// NotificationLevel is the severity of a Notification.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a toast-style message for the user.
type Notification struct {
	// ID increases with every notification of a queue. Clients acknowledge up to an ID.
	ID        uint64            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}

const defaultNotificationCapacity = 50

// NotificationQueue keeps the most recent notifications until they are acknowledged or
// drained. When full, the oldest notification is dropped.
type NotificationQueue struct {
	mu       sync.Mutex
	items    []Notification
	lastID   uint64
	capacity int
	now      func() time.Time
}

func NewNotificationQueue(capacity int) *NotificationQueue {
	if capacity <= 0 {
		capacity = defaultNotificationCapacity
	}
	return &NotificationQueue{capacity: capacity, now: time.Now}
}

func (q *NotificationQueue) Notify(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.now().UTC()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lastID++
	n.ID = q.lastID
	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
}

// Pending returns a copy of the queued notifications in arrival order. The queue is left
// unchanged.
func (q *NotificationQueue) Pending() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification{}, q.items...)
}

// Ack drops every notification with an ID up to lastID and returns how many were dropped.
func (q *NotificationQueue) Ack(lastID uint64) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for n < len(q.items) && q.items[n].ID <= lastID {
		n++
	}
	q.items = q.items[n:]
	return n
}

// Drain returns the queued notifications in arrival order and empties the queue.
func (q *NotificationQueue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

func notifyError(n Notifier, title, message string) {
	n.Notify(Notification{Level: NotificationError, Title: title, Message: message})
}

func notifySuccess(n Notifier, title, message string) {
	n.Notify(Notification{Level: NotificationSuccess, Title: title, Message: message})
}
