// Package validate checks user input before any mutation or remote call.
package validate

import (
	"strings"

	validatorlib "github.com/go-playground/validator/v10"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

var v = validatorlib.New(validatorlib.WithRequiredStructEnabled())

// Limits mirror the server-side schema constraints.
type taskInput struct {
	Title       string `validate:"required,max=50"`
	Description string `validate:"max=200"`
}

type messageInput struct {
	Text string `validate:"required,max=5000"`
}

type filterInput struct {
	Status string `validate:"omitempty,oneof=all pending completed"`
	Limit  int    `validate:"min=0"`
	Offset int    `validate:"min=0"`
}

// Task validates task title and description.
func Task(title, description string) error {
	in := taskInput{Title: strings.TrimSpace(title), Description: description}
	if err := v.Struct(in); err != nil {
		for _, fe := range err.(validatorlib.ValidationErrors) {
			switch {
			case fe.Field() == "Title" && fe.Tag() == "required":
				return apperr.Validation("title is required")
			case fe.Field() == "Title":
				return apperr.Validation("title must be at most 50 characters")
			case fe.Field() == "Description":
				return apperr.Validation("description must be at most 200 characters")
			}
		}
		return apperr.Validation("invalid task input")
	}
	return nil
}

// Patch validates the populated fields of a partial update.
func Patch(p service.TaskPatch) error {
	if p.IsEmpty() {
		return apperr.Validation("nothing to update")
	}
	title := "placeholder"
	if p.Title != nil {
		title = *p.Title
	}
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return Task(title, description)
}

// Message validates a chat message.
func Message(text string) error {
	in := messageInput{Text: strings.TrimSpace(text)}
	if err := v.Struct(in); err != nil {
		for _, fe := range err.(validatorlib.ValidationErrors) {
			if fe.Tag() == "required" {
				return apperr.Validation("message is required")
			}
		}
		return apperr.Validation("message must be at most 5000 characters")
	}
	return nil
}

// Filter validates a task list filter. Nil filters are valid.
func Filter(f *service.TaskFilter) error {
	if f == nil {
		return nil
	}
	in := filterInput{Status: f.Status, Limit: f.Limit, Offset: f.Offset}
	if err := v.Struct(in); err != nil {
		for _, fe := range err.(validatorlib.ValidationErrors) {
			if fe.Field() == "Status" {
				return apperr.Validation("status must be one of all, pending, completed")
			}
		}
		return apperr.Validation("limit and offset must not be negative")
	}
	return nil
}
