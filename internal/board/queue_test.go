package board

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueKeepsOrder(t *testing.T) {
	q := NewQueue(4)
	var got []int
	go func() {
		for i := range 100 {
			q.Post(func() { got = append(got, i) })
		}
	}()

	for range 100 {
		(<-q.C())()
	}
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue(8)
	count := 0
	for range 3 {
		q.Post(func() { count++ })
	}
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, 3, count)
	assert.Zero(t, q.Drain())
}

func TestQueueCloseReleasesBlockedPosters(t *testing.T) {
	q := NewQueue(1)
	q.Post(func() {})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Post(func() {}) // blocks on the full buffer
	}()
	time.Sleep(10 * time.Millisecond)
	q.Close()
	wg.Wait()

	q.Post(func() { t.Error("posted after close") })
	assert.LessOrEqual(t, q.Drain(), 2)
}

func TestPostFunc(t *testing.T) {
	var ran bool
	PostFunc(func(fn func()) { fn() }).Post(func() { ran = true })
	assert.True(t, ran)
}
