package autosave

import (
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

// Scheduler is a cancellable delayed-action scheduler keyed by a
// logical stream identity. Scheduling an action re-arms the key's
// timer, cancelling any pending action for the same key: a burst of
// triggers produces exactly one firing, delay after the last trigger
// (trailing-edge debounce, not throttling).
type Scheduler struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingAction
	closed  bool
	wg      *conc.WaitGroup
}

type pendingAction struct {
	timer *time.Timer
	fn    func()
}

func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay:   delay,
		pending: make(map[string]*pendingAction),
		wg:      conc.NewWaitGroup(),
	}
}

// Schedule arms (or re-arms) the delayed action for key.
func (s *Scheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}
	action := &pendingAction{fn: fn}
	action.timer = time.AfterFunc(s.delay, func() {
		s.fire(key, action)
	})
	s.pending[key] = action
}

func (s *Scheduler) fire(key string, action *pendingAction) {
	s.mu.Lock()
	current, ok := s.pending[key]
	if !ok || current != action || s.closed {
		// Superseded or flushed between firing and locking.
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.wg.Go(action.fn)
	s.mu.Unlock()
}

// Flush runs the pending action for key immediately, if any.
func (s *Scheduler) Flush(key string) {
	s.mu.Lock()
	action, ok := s.pending[key]
	if ok {
		action.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if ok {
		action.fn()
	}
}

// Close flushes every pending action and waits for in-flight ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	actions := make([]*pendingAction, 0, len(s.pending))
	for key, action := range s.pending {
		action.timer.Stop()
		actions = append(actions, action)
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, action := range actions {
		action.fn()
	}
	s.wg.Wait()
}
