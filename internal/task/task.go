// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task implements per-user task lists.

Every operation is scoped to the owner derived from the caller's session.
A task that belongs to someone else is indistinguishable from one that does
not exist.
*/
package task

import "time"

// Task is a single to-do item.
type Task struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"-"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Assignee  *string    `json:"assignee"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// Draft holds the validated fields of a task that is about to be created.
type Draft struct {
	Title     string
	Assignee  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateInput is the raw creation payload. Dates are either YYYY-MM-DD or
// RFC 3339 timestamps; empty strings mean "not set".
type CreateInput struct {
	Title     string `json:"title"`
	Assignee  string `json:"assignee"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// BulkResult is returned by operations that touch many tasks at once.
type BulkResult struct {
	Changed int64   `json:"changed"`
	Tasks   []*Task `json:"tasks"`
}

// # Bulk Actions

const (
	ActionCompleteAll    = "completeAll"
	ActionClearCompleted = "clearCompleted"
)

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldAssignee  = "assignee"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldID        = "id"
	FieldAction    = "action"
	FieldTask      = "task"
	FieldTasks     = "tasks"
	FieldOK        = "ok"
	FieldChanged   = "changed"
)
