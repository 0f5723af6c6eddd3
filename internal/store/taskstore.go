// Package store owns the local mirror of the user's tasks and keeps it
// consistent with the remote task service. Mutations are applied optimistically
// against the mirror before the remote call resolves, then reconciled with the
// server's canonical representation on success or rolled back on failure.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
	"taskflow/internal/validate"
)

// Store is the task synchronization store for one user session. It is the
// single source of truth the presentation layer renders from.
type Store struct {
	mu      sync.Mutex
	svc     service.TaskService
	log     *zap.Logger
	tasks   []service.Task
	loading bool
	lastErr error
}

// New creates an empty store backed by svc.
func New(svc service.TaskService, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{svc: svc, log: log}
}

// Tasks returns a copy of the mirror in insertion order.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the mirrored task with the given id.
func (s *Store) Get(id int) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// Len returns the number of mirrored tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Loading reports whether an operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the error recorded by the most recent failed operation,
// or nil if the last operation succeeded.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetEditing flips the local edit-mode flag. Purely presentational; nothing
// is sent to the server.
func (s *Store) SetEditing(id int, editing bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i].IsEditing = editing
		return true
	}
	return false
}

// Fetch replaces the mirror with the server's task list under the given
// filter. On failure the existing mirror is left untouched.
func (s *Store) Fetch(ctx context.Context, filter *service.TaskFilter) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	defer s.clearLoading()

	if err := validate.Filter(filter); err != nil {
		s.recordError(err)
		return err
	}

	tasks, err := s.svc.List(ctx, filter)
	if err != nil {
		s.log.Warn("task fetch failed", zap.Error(err))
		s.recordError(err)
		return err
	}

	for i := range tasks {
		tasks[i].IsEditing = false
		tasks[i].IsSaving = false
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.log.Debug("task mirror replaced", zap.Int("count", len(tasks)))
	return nil
}

// Create creates a task remotely and appends the server's canonical
// representation to the mirror. No placeholder entity is synthesized: the
// client has no safe provisional identity for a task, so optimism is deferred
// to reconciliation. On failure the mirror is unchanged.
func (s *Store) Create(ctx context.Context, title, description string, completed bool) (service.Task, error) {
	return s.run(ctx, mutation{
		op: "create",
		apply: func() error {
			return validate.Task(title, description)
		},
		call: func(ctx context.Context) (service.Task, error) {
			return s.svc.Create(ctx, title, description, completed)
		},
		confirm: func(t *service.Task) {
			s.tasks = append(s.tasks, *t)
		},
	})
}

// Update optimistically merges patch into the matching task and marks it
// saving, then reconciles with the server's returned representation. On
// failure the pre-mutation snapshot is restored.
func (s *Store) Update(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	var snapshot service.Task
	return s.run(ctx, mutation{
		op: "update",
		apply: func() error {
			if err := validate.Patch(patch); err != nil {
				return err
			}
			i := s.indexOf(id)
			if i < 0 {
				return apperr.NotFound("task", id)
			}
			snapshot = s.tasks[i]
			merge(&s.tasks[i], patch)
			s.tasks[i].IsSaving = true
			return nil
		},
		call: func(ctx context.Context) (service.Task, error) {
			return s.svc.Update(ctx, id, patch)
		},
		confirm: func(t *service.Task) {
			t.IsEditing = false
			t.IsSaving = false
			s.replace(id, *t)
		},
		rollback: func() {
			s.replace(id, snapshot)
		},
	})
}

// ToggleCompletion optimistically flips the completed flag, then reconciles
// with the server's returned representation. On failure the pre-toggle
// snapshot is restored.
func (s *Store) ToggleCompletion(ctx context.Context, id int) (service.Task, error) {
	var snapshot service.Task
	return s.run(ctx, mutation{
		op: "toggle",
		apply: func() error {
			i := s.indexOf(id)
			if i < 0 {
				return apperr.NotFound("task", id)
			}
			snapshot = s.tasks[i]
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.tasks[i].IsSaving = true
			return nil
		},
		call: func(ctx context.Context) (service.Task, error) {
			return s.svc.ToggleCompletion(ctx, id)
		},
		confirm: func(t *service.Task) {
			t.IsSaving = false
			s.replace(id, *t)
		},
		rollback: func() {
			s.replace(id, snapshot)
		},
	})
}

// Delete optimistically removes the task from the mirror, then issues the
// remote delete. On failure the removed task is re-inserted at the end of the
// mirror; exact position is not a correctness invariant and delete failures
// are rare.
func (s *Store) Delete(ctx context.Context, id int) error {
	var snapshot service.Task
	_, err := s.run(ctx, mutation{
		op: "delete",
		apply: func() error {
			i := s.indexOf(id)
			if i < 0 {
				return apperr.NotFound("task", id)
			}
			snapshot = s.tasks[i]
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		},
		call: func(ctx context.Context) (service.Task, error) {
			return service.Task{}, s.svc.Delete(ctx, id)
		},
		rollback: func() {
			s.tasks = append(s.tasks, snapshot)
		},
	})
	return err
}

// indexOf returns the position of id in the mirror, or -1. Callers hold mu.
func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// replace overwrites the task with the given id. A missing id is a no-op:
// the task may have been removed by an interleaved delete.
func (s *Store) replace(id int, t service.Task) {
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = t
	}
}

func (s *Store) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// merge applies the populated fields of patch to t.
func merge(t *service.Task, patch service.TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
}
