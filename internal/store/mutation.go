package store

import (
	"context"

	"go.uber.org/zap"

	"taskflow/internal/service"
)

// mutation is one optimistic mutation against the mirror. Every mutating
// operation goes through the same driver so all paths share one rollback
// mechanism.
//
// apply runs under the lock before the remote call; an error aborts the
// operation before anything is sent. confirm and rollback run under the lock
// after the call resolves. confirm receives the server's canonical
// representation and reconciles it into the mirror; rollback restores the
// pre-mutation state.
type mutation struct {
	op       string
	apply    func() error
	call     func(ctx context.Context) (service.Task, error)
	confirm  func(t *service.Task)
	rollback func()
}

// run drives a mutation through its optimistic, confirmed or rolled-back
// states. The lock is released across the remote call, so the optimistic
// state is observable while the request is in flight. Interleaved operations
// on the same id resolve last-write-wins.
func (s *Store) run(ctx context.Context, m mutation) (service.Task, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	if err := m.apply(); err != nil {
		s.lastErr = err
		s.loading = false
		s.mu.Unlock()
		return service.Task{}, err
	}
	s.mu.Unlock()

	out, err := m.call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		if m.rollback != nil {
			m.rollback()
		}
		s.lastErr = err
		s.log.Warn("task mutation failed", zap.String("op", m.op), zap.Error(err))
		return service.Task{}, err
	}

	if m.confirm != nil {
		m.confirm(&out)
	}
	s.log.Debug("task mutation confirmed", zap.String("op", m.op), zap.Int("id", out.ID))
	return out, nil
}
