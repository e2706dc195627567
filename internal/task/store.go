// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository defines the data access contract for tasks.
//
// Every method takes the owner first, and every statement filters on it.
// Missing and foreign rows both surface as [dberr.ErrNotFound] (or false).
type Repository interface {

	/*
		ListAll returns the owner's tasks, most recent first, capped at
		constants.TaskListLimit rows.

		Returns:
		  - []*Task: never nil
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context, ownerID int64) ([]*Task, error)

	/*
		Create inserts a task from an already validated draft.

		Returns:
		  - *Task: the stored row
		  - error: Persistence failures
	*/
	Create(context context.Context, ownerID int64, draft Draft) (*Task, error)

	/*
		UpdateTitle renames a task.

		Returns:
		  - *Task: the updated row
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdateTitle(context context.Context, ownerID, id int64, title string) (*Task, error)

	/*
		ToggleCompleted flips the completed flag.

		Returns:
		  - *Task: the updated row
		  - error: dberr.ErrNotFound or persistence failures
	*/
	ToggleCompleted(context context.Context, ownerID, id int64) (*Task, error)

	/*
		RemoveByID deletes a task.

		Returns:
		  - bool: whether a row was deleted
		  - error: Persistence failures
	*/
	RemoveByID(context context.Context, ownerID, id int64) (bool, error)

	// CompleteAll marks every incomplete task as completed and returns how many changed.
	CompleteAll(context context.Context, ownerID int64) (int64, error)

	// ClearCompleted deletes every completed task and returns how many were removed.
	ClearCompleted(context context.Context, ownerID int64) (int64, error)
}
