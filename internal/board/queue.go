package board

import "sync"

// Poster runs functions on the goroutine that owns a Board, in the order they were posted.
// Post may be called from any goroutine and must not run fn synchronously.
type Poster interface {
	Post(fn func())
}

// PostFunc adapts a scheduling function, such as fyne.Do, to a Poster.
type PostFunc func(fn func())

func (f PostFunc) Post(fn func()) { f(fn) }

// Queue is an ordered hand-off of functions to an owning goroutine.
// Post blocks only while the buffer is full; after Close it drops what it is given.
type Queue struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{
		ch:   make(chan func(), size),
		done: make(chan struct{}),
	}
}

func (q *Queue) Post(fn func()) {
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.ch <- fn:
	case <-q.done:
	}
}

// C exposes the queue to owners that select over other event sources as well.
func (q *Queue) C() <-chan func() { return q.ch }

// Drain runs everything already posted without waiting for more and returns the count.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops accepting work and releases blocked posters.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}
