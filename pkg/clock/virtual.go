package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Epoch is the default start time of a Virtual clock.
var Epoch = time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)

// Virtual is a deterministic scheduler driven by explicit calls to Advance, Step or
// RunUntilIdle. Tasks run on the calling goroutine in (due time, schedule order) order.
// Safe for concurrent use, although tasks themselves never overlap.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue taskQueue
	run   sync.Mutex // serialises task execution
}

// NewVirtual creates a virtual clock starting at Epoch.
func NewVirtual() *Virtual {
	return &Virtual{now: Epoch}
}

type task struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
	index   int
	owner   *Virtual
}

func (t *task) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.index >= 0 {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// AfterFunc schedules fn to run once the virtual clock has advanced by d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	t := &task{due: v.now.Add(d), seq: v.seq, fn: fn, owner: v}
	heap.Push(&v.queue, t)
	return t
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of scheduled tasks that have not run yet.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.queue.Len()
}

// NextDue returns the due time of the earliest pending task.
func (v *Virtual) NextDue() (time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.queue.Len() == 0 {
		return time.Time{}, false
	}
	return v.queue[0].due, true
}

// popDue removes the earliest task due at or before limit, moving the clock to its due time.
func (v *Virtual) popDue(limit time.Time) *task {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.queue.Len() == 0 || v.queue[0].due.After(limit) {
		return nil
	}
	t := heap.Pop(&v.queue).(*task)
	t.fired = true
	if t.due.After(v.now) {
		v.now = t.due
	}
	return t
}

// Step runs the earliest pending task, jumping the clock forward to its due time.
// It returns false when nothing is scheduled.
func (v *Virtual) Step() bool {
	v.run.Lock()
	defer v.run.Unlock()
	due, ok := v.NextDue()
	if !ok {
		return false
	}
	t := v.popDue(due)
	if t == nil {
		return false
	}
	t.fn()
	return true
}

// Advance moves the clock forward by d, running every task that falls due, including
// tasks scheduled by tasks run during the advance. It returns the number of tasks run.
func (v *Virtual) Advance(d time.Duration) int {
	v.run.Lock()
	defer v.run.Unlock()
	target := v.Now().Add(d)
	ran := 0
	for {
		t := v.popDue(target)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}
	v.mu.Lock()
	if target.After(v.now) {
		v.now = target
	}
	v.mu.Unlock()
	return ran
}

// RunUntilIdle runs tasks until none remain or limit tasks have run.
// A limit <= 0 means no limit; do not use it while a perpetual task is scheduled.
func (v *Virtual) RunUntilIdle(limit int) int {
	ran := 0
	for limit <= 0 || ran < limit {
		if !v.Step() {
			break
		}
		ran++
	}
	return ran
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
