package simulator

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/lox/whackamole/internal/clock"
)

// Epoch is the virtual time at which every simulated game starts
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// event is a scheduled callback on the virtual timeline
type event struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
	index   int
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*event)
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// Virtual is a discrete-event clock.Scheduler. Time only moves when Run
// pops the next event, so a whole game plays out in microseconds.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue eventQueue
}

var _ clock.Scheduler = (*Virtual)(nil)

// NewVirtual creates a scheduler whose clock starts at start
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now implements clock.Scheduler
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// After implements clock.Scheduler
func (v *Virtual) After(delay time.Duration, fn func()) clock.Timer {
	return v.schedule(delay, fn)
}

// Every implements clock.Scheduler
func (v *Virtual) Every(ctx context.Context, period time.Duration, fn func()) {
	var tick func()
	tick = func() {
		if ctx.Err() != nil {
			return
		}
		fn()
		if ctx.Err() == nil {
			v.schedule(period, tick)
		}
	}
	v.schedule(period, tick)
}

func (v *Virtual) schedule(delay time.Duration, fn func()) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	ev := &event{at: v.now.Add(delay), seq: v.seq, fn: fn}
	heap.Push(&v.queue, ev)
	return &virtualTimer{v: v, ev: ev}
}

// Pending returns the number of scheduled, unstopped events
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := 0
	for _, ev := range v.queue {
		if !ev.stopped {
			n++
		}
	}
	return n
}

// Run fires events in time order until done is closed, the queue drains, or
// the next event lies beyond limit. It returns the virtual time reached.
func (v *Virtual) Run(done <-chan struct{}, limit time.Time) time.Time {
	for {
		select {
		case <-done:
			return v.Now()
		default:
		}

		ev, ok := v.next(limit)
		if !ok {
			return v.Now()
		}
		ev.fn()
	}
}

// next pops the next live event and advances the clock to it
func (v *Virtual) next(limit time.Time) (*event, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for v.queue.Len() > 0 {
		ev := v.queue[0]
		if ev.at.After(limit) {
			return nil, false
		}
		heap.Pop(&v.queue)
		if ev.stopped {
			continue
		}
		ev.fired = true
		v.now = ev.at
		return ev, true
	}
	return nil, false
}

type virtualTimer struct {
	v  *Virtual
	ev *event
}

// Stop implements clock.Timer
func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()

	if t.ev.stopped || t.ev.fired {
		return false
	}
	t.ev.stopped = true
	return true
}
