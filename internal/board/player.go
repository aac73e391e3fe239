package board

import (
	"context"
	"image"
	"slices"
	"time"

	"DrawingBoard/internal/state"
)

// player feeds a recording back through the board's input transitions at the pace it
// was recorded. It runs on its own goroutine and touches the board only from functions
// posted to the owner.
type player struct {
	board    *Board
	nodes    []state.Node
	saved    state.Tools
	maxDelay time.Duration
	poster   Poster
}

// Play replays nodes as an animation. With appending the replay is drawn after the
// current recording, otherwise the recording is discarded first.
//
// Only one replay runs at a time: a second call while one is active returns ErrPlaying.
// Pointer input, Clear, Undo and Redo are ignored until the replay ends.
func (b *Board) Play(nodes []state.Node, appending bool) error {
	if b.playing {
		Logger().Warn("play rejected", "reason", ErrPlaying)
		return ErrPlaying
	}
	if b.surface == nil {
		Logger().Warn("play rejected", "reason", ErrNoSurface)
		return ErrNoSurface
	}
	b.abortStroke()
	if appending {
		b.drawNodes(b.history.Committed())
	} else {
		b.history.Truncate()
		b.surface.Reset()
	}
	b.invalidate(image.Rectangle{})

	ctx, cancel := context.WithCancel(context.Background())
	b.playing = true
	b.cancel = cancel
	b.done = make(chan struct{})
	p := &player{
		board:    b,
		nodes:    slices.Clone(nodes),
		saved:    b.tools,
		maxDelay: b.maxDelay,
		poster:   b.poster,
	}
	Logger().Info("replay started", "nodes", len(nodes), "appending", appending)
	if b.OnPlaying != nil {
		b.OnPlaying(true)
	}
	go p.run(ctx, b.done)
	return nil
}

// Stop cancels the running replay. The board leaves replay mode once the worker has
// handed back its final step; a stroke cut off mid-way stays recorded without its Up.
func (b *Board) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Playing reports whether a replay owns the board.
func (b *Board) Playing() bool { return b.playing }

// Done is closed when the current replay worker exits. It is nil before the first Play.
func (b *Board) Done() <-chan struct{} { return b.done }

func (p *player) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for i, n := range p.nodes {
		if ctx.Err() != nil {
			break
		}
		p.poster.Post(func() {
			if ctx.Err() != nil {
				return
			}
			p.board.step(n)
		})
		if i+1 == len(p.nodes) {
			break
		}
		if !sleep(ctx, stepDelay(n, p.nodes[i+1], p.maxDelay)) {
			break
		}
	}
	cancelled := ctx.Err() != nil
	p.poster.Post(func() { p.board.finishPlay(p.saved, cancelled) })
}

// step applies one recorded node the way live input would have. A Move or Up arriving
// with no stroke open starts one at its point, the same way drawNodes does.
func (b *Board) step(n state.Node) {
	Logger().Debug("replay step", "kind", n.Kind, "x", n.X, "y", n.Y)
	switch n.Kind {
	case state.KindClear:
		b.clear()
	case state.KindDown:
		b.tools = b.tools.Adopt(n)
		b.down(n.X, n.Y)
	case state.KindMove:
		if !b.drawing {
			b.resume(n)
			b.record(state.KindMove, n.X, n.Y)
			b.invalidate(state.RegionOf(b.pad(), b.last).Rect())
			return
		}
		b.move(n.X, n.Y)
	case state.KindUp:
		if !b.drawing {
			b.tools = b.tools.Adopt(n)
			b.resume(n)
		}
		b.up(n.X, n.Y)
	}
}

func (b *Board) finishPlay(saved state.Tools, cancelled bool) {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.abortStroke()
	b.tools = saved
	b.playing = false
	Logger().Info("replay finished", "cancelled", cancelled, "nodes", b.history.Len())
	if b.OnPlaying != nil {
		b.OnPlaying(false)
	}
	b.invalidate(image.Rectangle{})
}

// stepDelay is the pause between two recorded nodes, capped at limit.
func stepDelay(cur, next state.Node, limit time.Duration) time.Duration {
	d := time.Duration(next.Time-cur.Time) * time.Millisecond
	if d < 0 {
		return 0
	}
	return min(d, limit)
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
