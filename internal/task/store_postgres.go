// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/dbx"
)

const postgresColumns = `id, owner_id, title, completed, assignee, start_date, end_date, created_at`

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool dbx.PgxQuerier
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool dbx.PgxQuerier) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanPostgresTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Completed,
		&task.Assignee,
		&task.StartDate,
		&task.EndDate,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListAll returns the owner's most recent tasks, at most [constants.TaskListLimit].
func (repository *PostgresRepository) ListAll(context context.Context, ownerID int64) ([]*Task, error) {
	const query = `SELECT ` + postgresColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY id DESC LIMIT $2`

	rows, err := repository.pool.Query(context, query, ownerID, constants.TaskListLimit)
	if err != nil {
		return nil, fmt.Errorf("postgres_task_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanPostgresTask(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_task_repo_list_scan_failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_task_repo_list_failed: %w", err)
	}

	return tasks, nil
}

// Create inserts a new, incomplete task.
func (repository *PostgresRepository) Create(context context.Context, ownerID int64, draft Draft) (*Task, error) {
	const query = `
		INSERT INTO tasks (owner_id, title, assignee, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postgresColumns

	row := repository.pool.QueryRow(context, query,
		ownerID,
		draft.Title,
		draft.Assignee,
		draft.StartDate,
		draft.EndDate,
	)
	task, err := scanPostgresTask(row)
	if err != nil {
		return nil, fmt.Errorf("postgres_task_repo_create_failed: %w", err)
	}

	return task, nil
}

// UpdateTitle renames a task owned by ownerID.
func (repository *PostgresRepository) UpdateTitle(context context.Context, ownerID, id int64, title string) (*Task, error) {
	const query = `
		UPDATE tasks SET title = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + postgresColumns

	return repository.updateOne(context, "update_title", query, id, ownerID, title)
}

// ToggleCompleted flips the completed flag of a task owned by ownerID.
func (repository *PostgresRepository) ToggleCompleted(context context.Context, ownerID, id int64) (*Task, error) {
	const query = `
		UPDATE tasks SET completed = NOT completed
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + postgresColumns

	return repository.updateOne(context, "toggle", query, id, ownerID)
}

func (repository *PostgresRepository) updateOne(context context.Context, operation, query string, args ...any) (*Task, error) {
	task, err := scanPostgresTask(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_task_repo_%s_failed: %w", operation, err)
	}
	return task, nil
}

// RemoveByID deletes a task owned by ownerID.
func (repository *PostgresRepository) RemoveByID(context context.Context, ownerID, id int64) (bool, error) {
	const query = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("postgres_task_repo_remove_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CompleteAll marks the owner's incomplete tasks as completed.
func (repository *PostgresRepository) CompleteAll(context context.Context, ownerID int64) (int64, error) {
	const query = `UPDATE tasks SET completed = TRUE WHERE owner_id = $1 AND completed = FALSE`

	tag, err := repository.pool.Exec(context, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("postgres_task_repo_complete_all_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ClearCompleted deletes the owner's completed tasks.
func (repository *PostgresRepository) ClearCompleted(context context.Context, ownerID int64) (int64, error) {
	const query = `DELETE FROM tasks WHERE owner_id = $1 AND completed = TRUE`

	tag, err := repository.pool.Exec(context, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("postgres_task_repo_clear_completed_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}
