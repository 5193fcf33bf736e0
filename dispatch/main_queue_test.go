package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainQueue_RunsInOrder(t *testing.T) {
	q := NewMainQueue()
	defer q.Close()

	var got []int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		i := i
		require.NoError(t, q.Async(func() {
			defer wg.Done()
			got = append(got, i)
		}))
	}
	wg.Wait()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestMainQueue_SerializesConcurrentSubmitters(t *testing.T) {
	q := NewMainQueue()
	defer q.Close()

	counter := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = q.Sync(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	var final int
	require.NoError(t, q.Sync(func() { final = counter }))
	assert.Equal(t, 400, final)
}

func TestMainQueue_SurvivesPanics(t *testing.T) {
	q := NewMainQueue()
	defer q.Close()

	require.NoError(t, q.Async(func() { panic("boom") }))

	ran := false
	require.NoError(t, q.Sync(func() { ran = true }))
	assert.True(t, ran)
}

func TestMainQueue_CloseDrainsAndRejects(t *testing.T) {
	q := NewMainQueue()

	ran := make(chan struct{}, 1)
	require.NoError(t, q.Async(func() { ran <- struct{}{} }))
	q.Close()

	assert.Len(t, ran, 1)
	assert.ErrorIs(t, q.Async(func() {}), ErrQueueClosed)
	assert.ErrorIs(t, q.Sync(func() {}), ErrQueueClosed)
}
