package engine

import "sync"

// subscribers is the minimal re-render bus: UI observers register a callback
// and get poked after each committed mutation. Callbacks run outside the
// engine mutex so they may call back into the engine.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func newSubscribers() *subscribers {
	return &subscribers{fns: make(map[int]func())}
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.fns[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) publish() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
