// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/task"
)

var errDiskIO = errors.New("disk I/O error")

func TestSQLiteRepository_Faults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := task.NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE owner_id = \\? ORDER BY id DESC LIMIT \\?").
		WithArgs(int64(1), int64(constants.TaskListLimit)).
		WillReturnError(errDiskIO)

	_, err = repository.ListAll(ctx, 1)
	assert.ErrorIs(t, err, errDiskIO)

	mock.ExpectQuery("UPDATE tasks SET title").WillReturnError(errDiskIO)

	_, err = repository.UpdateTitle(ctx, 1, 2, "x")
	assert.ErrorIs(t, err, errDiskIO)
	assert.NotErrorIs(t, err, dberr.ErrNotFound)

	mock.ExpectExec("DELETE FROM tasks WHERE id").WillReturnError(errDiskIO)

	removed, err := repository.RemoveByID(ctx, 1, 2)
	assert.False(t, removed)
	assert.ErrorIs(t, err, errDiskIO)

	mock.ExpectExec("UPDATE tasks SET completed = 1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	changed, err := repository.CompleteAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
