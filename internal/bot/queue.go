package bot

import "sync"

// userQueues runs each user's turns one after another in arrival order,
// while different users proceed in parallel. A user's worker goroutine
// lives only while that user has pending turns.
type userQueues struct {
	mu      sync.Mutex
	pending map[int64][]func()
	wg      sync.WaitGroup
}

func newUserQueues() *userQueues {
	return &userQueues{pending: make(map[int64][]func())}
}

// push appends job to userID's queue and starts a worker if none is running.
// A present map key means a worker owns that user.
func (q *userQueues) push(userID int64, job func()) {
	q.mu.Lock()
	backlog, running := q.pending[userID]
	q.pending[userID] = append(backlog, job)
	q.mu.Unlock()
	if running {
		return
	}

	q.wg.Add(1)
	go q.drain(userID)
}

func (q *userQueues) drain(userID int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		backlog := q.pending[userID]
		if len(backlog) == 0 {
			delete(q.pending, userID)
			q.mu.Unlock()
			return
		}
		job := backlog[0]
		q.pending[userID] = backlog[1:]
		q.mu.Unlock()

		job()
	}
}

// wait blocks until every queued turn has run.
func (q *userQueues) wait() { q.wg.Wait() }

func (q *userQueues) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
