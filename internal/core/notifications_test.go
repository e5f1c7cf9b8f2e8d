package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueue_PendingAndAck(t *testing.T) {
	q := NewNotificationQueue(3)
	assert.Empty(t, q.Pending())
	assert.NotNil(t, q.Pending())

	for _, title := range []string{"a", "b", "c", "d"} {
		q.Notify(Notification{Level: NotificationInfo, Title: title})
	}

	pending := q.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, "b", pending[0].Title)
	assert.Equal(t, uint64(2), pending[0].ID)
	assert.Equal(t, uint64(4), pending[2].ID)
	assert.False(t, pending[0].CreatedAt.IsZero())
	assert.Equal(t, pending, q.Pending())

	assert.Equal(t, 0, q.Ack(1), "already dropped")
	assert.Equal(t, 2, q.Ack(3))
	rest := q.Pending()
	require.Len(t, rest, 1)
	assert.Equal(t, "d", rest[0].Title)

	q.Notify(Notification{Title: "e"})
	assert.Equal(t, uint64(5), q.Pending()[1].ID)
	assert.Equal(t, 2, q.Ack(100))
	assert.Empty(t, q.Pending())
}

func TestNotificationQueue_Drain(t *testing.T) {
	q := NewNotificationQueue(0)
	q.Notify(Notification{Title: "a"})
	q.Notify(Notification{Title: "b"})

	notes := q.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].Title)
	assert.Empty(t, q.Drain())
}
