// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

// FakeTaskService is an in-memory implementation of service.TaskService.
// It mimics the server: it assigns ids and timestamps, applies filters and
// returns canonical post-mutation representations.
type FakeTaskService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  []string

	// Error injection. A non-nil error is returned by the matching method
	// after the gate (if any) has been passed.
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	ToggleErr error
	DeleteErr error

	// Call gating: when Entered is non-nil, every method sends its name on it
	// at call start; when Proceed is non-nil, the method then blocks until a
	// receive succeeds. Lets tests observe optimistic state mid-flight.
	Entered chan string
	Proceed chan struct{}
}

// NewFakeTaskService creates an empty fake.
func NewFakeTaskService() *FakeTaskService {
	return &FakeTaskService{nextID: 1}
}

// Seed inserts a task with the given fields and returns its assigned id.
func (f *FakeTaskService) Seed(title, description string, completed bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
		UserID:      "user-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return id
}

// Calls returns the method names invoked so far.
func (f *FakeTaskService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeTaskService) enter(method string) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()
	if f.Entered != nil {
		f.Entered <- method
	}
	if f.Proceed != nil {
		<-f.Proceed
	}
}

// List implements service.TaskService.
func (f *FakeTaskService) List(ctx context.Context, filter *service.TaskFilter) ([]service.Task, error) {
	f.enter("List")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []service.Task
	for _, t := range f.tasks {
		if filter != nil {
			if filter.Status == service.StatusPending && t.Completed {
				continue
			}
			if filter.Status == service.StatusCompleted && !t.Completed {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Search)) {
				continue
			}
		}
		out = append(out, t)
	}

	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(out) {
				return nil, nil
			}
			out = out[filter.Offset:]
		}
		if filter.Limit > 0 && filter.Limit < len(out) {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

// Get implements service.TaskService.
func (f *FakeTaskService) Get(ctx context.Context, id int) (service.Task, error) {
	f.enter("Get")
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, apperr.NotFound("task", id)
}

// Create implements service.TaskService.
func (f *FakeTaskService) Create(ctx context.Context, title, description string, completed bool) (service.Task, error) {
	f.enter("Create")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	t := service.Task{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		Completed:   completed,
		UserID:      "user-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Update implements service.TaskService.
func (f *FakeTaskService) Update(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	f.enter("Update")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		f.tasks[i].UpdatedAt = time.Now().UTC()
		return f.tasks[i], nil
	}
	return service.Task{}, apperr.NotFound("task", id)
}

// ToggleCompletion implements service.TaskService.
func (f *FakeTaskService) ToggleCompletion(ctx context.Context, id int) (service.Task, error) {
	f.enter("ToggleCompletion")
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			f.tasks[i].UpdatedAt = time.Now().UTC()
			return f.tasks[i], nil
		}
	}
	return service.Task{}, apperr.NotFound("task", id)
}

// Delete implements service.TaskService.
func (f *FakeTaskService) Delete(ctx context.Context, id int) error {
	f.enter("Delete")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("task", id)
}
