// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/validate"
)

// Authenticator resolves a raw session token to the owning user ID.
//
// Defined here rather than imported so the task package does not depend on
// auth internals. [auth.Service] satisfies it.
type Authenticator interface {
	Authenticate(context context.Context, token string) (int64, error)
}

// Service implements the task use cases.
//
// Every method takes the caller's raw session token and resolves it first.
// An unauthenticated call fails before the repository is touched.
type Service struct {
	repository    Repository
	authenticator Authenticator
}

// NewService constructs a new [Service].
func NewService(repository Repository, authenticator Authenticator) *Service {
	return &Service{repository: repository, authenticator: authenticator}
}

func errTaskNotFound() *apperr.AppError {
	return apperr.NotFound("Task")
}

// normalizeTitle trims and validates a task title.
func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, trimmed, apperr.CodeTitleRequired)
	validator.MaxLen(FieldTitle, trimmed, constants.TitleMaxLength, apperr.CodeTitleLength)

	if err := validator.Err(); err != nil {
		return "", err
	}
	return trimmed, nil
}

/*
newDraft validates a creation payload.

The title is trimmed and required. The assignee is trimmed and optional. Each
date accepts a calendar day or a full timestamp, and the end date may not
precede the start date.
*/
func newDraft(input CreateInput) (Draft, error) {
	validator := &validate.Validator{}

	draft := Draft{Title: strings.TrimSpace(input.Title)}
	validator.Required(FieldTitle, draft.Title, apperr.CodeTitleRequired)
	validator.MaxLen(FieldTitle, draft.Title, constants.TitleMaxLength, apperr.CodeTitleLength)

	if assignee := strings.TrimSpace(input.Assignee); assignee != "" {
		validator.MaxLen(FieldAssignee, assignee, constants.AssigneeMaxLength, apperr.CodeAssigneeLength)
		draft.Assignee = &assignee
	}

	draft.StartDate = parseDate(validator, FieldStartDate, input.StartDate)
	draft.EndDate = parseDate(validator, FieldEndDate, input.EndDate)

	if draft.StartDate != nil && draft.EndDate != nil {
		validator.Custom(FieldEndDate, draft.EndDate.Before(*draft.StartDate),
			apperr.CodeDateRange, "Must not be before start_date")
	}

	if validator.HasErrors() {
		return Draft{}, validator.Err()
	}
	return draft, nil
}

// parseDate returns nil for an empty value and records a failure for a
// malformed one.
func parseDate(validator *validate.Validator, field, value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}

	validator.Custom(field, true, apperr.CodeInvalidDate, "Must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return validate.FieldErr(FieldID, apperr.CodeInvalidID, "Must be a positive integer")
	}
	return nil
}

/*
Authorize reports whether the token belongs to a live session.

The HTTP layer calls it before reporting malformed input, so anonymous
callers learn nothing beyond 401.
*/
func (service *Service) Authorize(context context.Context, token string) error {
	_, err := service.authenticator.Authenticate(context, token)
	return err
}

/*
List returns the caller's tasks, most recent first.
*/
func (service *Service) List(context context.Context, token string) ([]*Task, error) {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return nil, err
	}

	tasks, err := service.repository.ListAll(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task_service_list_failed: %w", err)
	}

	return tasks, nil
}

/*
Create adds a task for the caller.

Returns:
  - *Task: the stored task (title trimmed, not completed)
  - error: Unauthorized, Validation(title_required, title_length,
    assignee_length, invalid_date, date_range) or storage errors
*/
func (service *Service) Create(context context.Context, token string, input CreateInput) (*Task, error) {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return nil, err
	}

	draft, err := newDraft(input)
	if err != nil {
		return nil, err
	}

	task, err := service.repository.Create(context, ownerID, draft)
	if err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	return task, nil
}

/*
Rename replaces the title of one of the caller's tasks.
*/
func (service *Service) Rename(context context.Context, token string, id int64, title string) (*Task, error) {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return nil, err
	}

	if err := validateID(id); err != nil {
		return nil, err
	}

	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	task, err := service.repository.UpdateTitle(context, ownerID, id, normalized)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, errTaskNotFound()
		}
		return nil, fmt.Errorf("task_service_rename_failed: %w", err)
	}

	return task, nil
}

/*
Toggle flips the completed flag of one of the caller's tasks.
*/
func (service *Service) Toggle(context context.Context, token string, id int64) (*Task, error) {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return nil, err
	}

	if err := validateID(id); err != nil {
		return nil, err
	}

	task, err := service.repository.ToggleCompleted(context, ownerID, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, errTaskNotFound()
		}
		return nil, fmt.Errorf("task_service_toggle_failed: %w", err)
	}

	return task, nil
}

/*
Remove deletes one of the caller's tasks. Foreign tasks report NotFound.
*/
func (service *Service) Remove(context context.Context, token string, id int64) error {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return err
	}

	if err := validateID(id); err != nil {
		return err
	}

	removed, err := service.repository.RemoveByID(context, ownerID, id)
	if err != nil {
		return fmt.Errorf("task_service_remove_failed: %w", err)
	}
	if !removed {
		return errTaskNotFound()
	}

	return nil
}

// CompleteAll marks all of the caller's tasks as completed.
func (service *Service) CompleteAll(context context.Context, token string) (*BulkResult, error) {
	return service.Bulk(context, token, ActionCompleteAll)
}

// ClearCompleted deletes all of the caller's completed tasks.
func (service *Service) ClearCompleted(context context.Context, token string) (*BulkResult, error) {
	return service.Bulk(context, token, ActionClearCompleted)
}

/*
Bulk applies a named action to all of the caller's tasks.

Returns:
  - *BulkResult: the number of affected tasks and the refreshed list
  - error: Unauthorized, Validation(unknown_action) or storage errors
*/
func (service *Service) Bulk(context context.Context, token, action string) (*BulkResult, error) {
	ownerID, err := service.authenticator.Authenticate(context, token)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldAction, action, apperr.CodeUnknownAction, ActionCompleteAll, ActionClearCompleted)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var changed int64
	if action == ActionCompleteAll {
		changed, err = service.repository.CompleteAll(context, ownerID)
	} else {
		changed, err = service.repository.ClearCompleted(context, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("task_service_bulk_%s_failed: %w", action, err)
	}

	tasks, err := service.repository.ListAll(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task_service_bulk_list_failed: %w", err)
	}

	return &BulkResult{Changed: changed, Tasks: tasks}, nil
}
