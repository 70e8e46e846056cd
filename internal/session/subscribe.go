package session

import (
	"sync"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
)

const defaultBuffer = 16

type subscriber struct {
	ch   chan nebula.Snapshot
	done chan struct{}
	once sync.Once
}

// send delivers snap without blocking. When the buffer is full the oldest
// pending snapshot is dropped; only the latest state matters to a viewer.
func (sub *subscriber) send(snap nebula.Snapshot) {
	select {
	case <-sub.done:
		return
	default:
	}

	select {
	case sub.ch <- snap:
		return
	default:
	}

	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- snap:
	default:
	}
}

func (sub *subscriber) close() {
	sub.once.Do(func() { close(sub.done) })
}

// Subscribe returns a channel that receives a snapshot after every command
// and a cancel function that stops delivery. The channel is never closed;
// readers should select on their own context as well.
func (s *Session) Subscribe(buffer int) (<-chan nebula.Snapshot, func()) {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	sub := &subscriber{
		ch:   make(chan nebula.Snapshot, buffer),
		done: make(chan struct{}),
	}

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
		sub.close()
	}
	return sub.ch, cancel
}

// Subscribers returns the number of active subscribers.
func (s *Session) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Session) publish(snap nebula.Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		sub.send(snap)
	}
}

// Done is closed when the session is removed from its manager.
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// close stops delivery to every subscriber and closes Done.
func (s *Session) close() {
	s.subMu.Lock()
	for id, sub := range s.subs {
		sub.close()
		delete(s.subs, id)
	}
	s.subMu.Unlock()
	s.closeOnce.Do(func() { close(s.closed) })
}
