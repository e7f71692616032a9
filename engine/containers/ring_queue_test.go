package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFOOrder(t *testing.T) {
	rq := NewRingQueue[int](4)

	for i := 1; i <= 4; i++ {
		require.NoError(t, rq.Enqueue(i))
	}
	assert.True(t, rq.IsFull())
	assert.Equal(t, 4, rq.Len())

	for i := 1; i <= 4; i++ {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.True(t, rq.IsEmpty())
}

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[string](2)

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	require.NoError(t, rq.Enqueue("c"))

	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestRingQueueEnqueueFull(t *testing.T) {
	rq := NewRingQueue[int](1)
	require.NoError(t, rq.Enqueue(1))
	assert.ErrorIs(t, rq.Enqueue(2), ErrQueueFull)
}

func TestRingQueueDequeueEmpty(t *testing.T) {
	rq := NewRingQueue[int](1)
	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	_, err = rq.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueuePeekDoesNotRemove(t *testing.T) {
	rq := NewRingQueue[int](2)
	require.NoError(t, rq.Enqueue(7))

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, rq.Len())
}
