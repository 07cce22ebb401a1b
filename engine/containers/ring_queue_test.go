package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueue_FIFO(t *testing.T) {
	q := NewRingQueue[int](3)
	assert.True(t, q.IsEmpty())

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, q.Enqueue(3))
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue(4), ErrQueueFull)

	head, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, head)

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// The write index wraps around.
	require.NoError(t, q.Enqueue(4))
	var got []int
	for !q.IsEmpty() {
		v, err := q.Dequeue()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	assert.Zero(t, q.Len())
}
