package di

import "sync"

// Scheduler runs deferred lazy constructions.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(task func())

// Schedule calls f(task).
func (f SchedulerFunc) Schedule(task func()) { f(task) }

// IdleQueue buffers tasks until the host calls RunPending, typically from
// its main loop when it has nothing else to do.
type IdleQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewIdleQueue creates an empty queue.
func NewIdleQueue() *IdleQueue {
	return &IdleQueue{}
}

// Schedule appends task to the queue.
func (q *IdleQueue) Schedule(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// RunPending runs queued tasks on the calling goroutine until the queue is
// empty, including tasks scheduled while running. It returns the number of
// tasks run.
func (q *IdleQueue) RunPending() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		n++
	}
}

// Len returns the number of queued tasks.
func (q *IdleQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
