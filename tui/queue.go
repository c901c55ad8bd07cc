package tui

import "sync"

// queueSize bounds how many player commands may wait behind a slow player.
const queueSize = 64

// playerQueue runs player commands on a single worker, one at a time and in
// the order they were pushed. Failures are handed back on errs.
type playerQueue struct {
	cmds     chan func() error
	errs     chan error
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func newPlayerQueue() *playerQueue {
	q := &playerQueue{
		cmds:    make(chan func() error, queueSize),
		errs:    make(chan error, queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *playerQueue) run() {
	defer close(q.stopped)
	for {
		select {
		case <-q.done:
			return
		case fn := <-q.cmds:
			if err := fn(); err != nil {
				select {
				case q.errs <- err:
				case <-q.done:
					return
				}
			}
		}
	}
}

// push queues fn without blocking. It reports false when the queue is full
// or stopped.
func (q *playerQueue) push(fn func() error) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.cmds <- fn:
		return true
	default:
		return false
	}
}

// stop ends the worker and waits for it. Commands still queued are dropped.
func (q *playerQueue) stop() {
	q.stopOnce.Do(func() { close(q.done) })
	<-q.stopped
}
