// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/dbx"
	"github.com/taibuivan/tasker/internal/platform/sqlite"
)

const sqliteColumns = `id, owner_id, title, completed, assignee, start_date, end_date, created_at`

// SQLiteRepository implements the Repository interface on database/sql.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository creates a new SQLite implementation of the Repository.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTask(row rowScanner) (*Task, error) {
	var (
		startDate, endDate *int64
		createdAt          int64
	)
	task := &Task{}
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Completed,
		&task.Assignee,
		&startDate,
		&endDate,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	task.StartDate = sqlite.FromNullableMillis(startDate)
	task.EndDate = sqlite.FromNullableMillis(endDate)
	task.CreatedAt = sqlite.FromMillis(createdAt)
	return task, nil
}

// ListAll returns the owner's most recent tasks, at most [constants.TaskListLimit].
func (repository *SQLiteRepository) ListAll(context context.Context, ownerID int64) ([]*Task, error) {
	const query = `SELECT ` + sqliteColumns + ` FROM tasks WHERE owner_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := repository.db.QueryContext(context, query, ownerID, constants.TaskListLimit)
	if err != nil {
		return nil, fmt.Errorf("sqlite_task_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite_task_repo_list_scan_failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite_task_repo_list_failed: %w", err)
	}

	return tasks, nil
}

// Create inserts a new, incomplete task.
func (repository *SQLiteRepository) Create(context context.Context, ownerID int64, draft Draft) (*Task, error) {
	const query = `
		INSERT INTO tasks (owner_id, title, completed, assignee, start_date, end_date, created_at)
		VALUES (?, ?, 0, ?, ?, ?, ?)
		RETURNING ` + sqliteColumns

	row := repository.db.QueryRowContext(context, query,
		ownerID,
		draft.Title,
		draft.Assignee,
		sqlite.NullableMillis(draft.StartDate),
		sqlite.NullableMillis(draft.EndDate),
		sqlite.Millis(repository.now()),
	)
	task, err := scanSQLiteTask(row)
	if err != nil {
		return nil, fmt.Errorf("sqlite_task_repo_create_failed: %w", err)
	}

	return task, nil
}

// UpdateTitle renames a task owned by ownerID.
func (repository *SQLiteRepository) UpdateTitle(context context.Context, ownerID, id int64, title string) (*Task, error) {
	const query = `
		UPDATE tasks SET title = ?
		WHERE id = ? AND owner_id = ?
		RETURNING ` + sqliteColumns

	return repository.updateOne(context, "update_title", query, title, id, ownerID)
}

// ToggleCompleted flips the completed flag of a task owned by ownerID.
func (repository *SQLiteRepository) ToggleCompleted(context context.Context, ownerID, id int64) (*Task, error) {
	const query = `
		UPDATE tasks SET completed = CASE completed WHEN 0 THEN 1 ELSE 0 END
		WHERE id = ? AND owner_id = ?
		RETURNING ` + sqliteColumns

	return repository.updateOne(context, "toggle", query, id, ownerID)
}

func (repository *SQLiteRepository) updateOne(context context.Context, operation, query string, args ...any) (*Task, error) {
	task, err := scanSQLiteTask(repository.db.QueryRowContext(context, query, args...))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite_task_repo_%s_failed: %w", operation, err)
	}
	return task, nil
}

// RemoveByID deletes a task owned by ownerID.
func (repository *SQLiteRepository) RemoveByID(context context.Context, ownerID, id int64) (bool, error) {
	const query = `DELETE FROM tasks WHERE id = ? AND owner_id = ?`

	affected, err := repository.exec(context, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("sqlite_task_repo_remove_failed: %w", err)
	}

	return affected > 0, nil
}

// CompleteAll marks the owner's incomplete tasks as completed.
func (repository *SQLiteRepository) CompleteAll(context context.Context, ownerID int64) (int64, error) {
	const query = `UPDATE tasks SET completed = 1 WHERE owner_id = ? AND completed = 0`

	affected, err := repository.exec(context, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("sqlite_task_repo_complete_all_failed: %w", err)
	}

	return affected, nil
}

// ClearCompleted deletes the owner's completed tasks.
func (repository *SQLiteRepository) ClearCompleted(context context.Context, ownerID int64) (int64, error) {
	const query = `DELETE FROM tasks WHERE owner_id = ? AND completed = 1`

	affected, err := repository.exec(context, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("sqlite_task_repo_clear_completed_failed: %w", err)
	}

	return affected, nil
}

func (repository *SQLiteRepository) exec(context context.Context, query string, args ...any) (int64, error) {
	result, err := repository.db.ExecContext(context, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
