package commands

import (
	"context"
	"errors"
	"strconv"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

// ErrTaskIDRequired is returned when no task id argument was given.
var ErrTaskIDRequired = errors.New("task id required")

// parseTaskID extracts the numeric task id from positional arguments.
func parseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, errors.New("invalid task id: " + args[0])
	}
	return id, nil
}

// loadStore builds a store and fills its mirror from the server. Mutating
// commands go through the mirror so the store's local precondition (the id
// must exist) holds before the mutation is attempted.
func loadStore(ctx context.Context, svcs *service.Bundle) (*store.Store, error) {
	st := store.New(svcs.Tasks, svcs.Log)
	if err := st.Fetch(ctx, nil); err != nil {
		return nil, err
	}
	return st, nil
}
