// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/middleware"
	"github.com/taibuivan/tasker/internal/task"
)

func newTaskRouter(t *testing.T) http.Handler {
	t.Helper()

	router := chi.NewRouter()
	router.Use(middleware.SessionCookie())
	router.Mount("/tasks", task.NewHandler(newService(t)).Routes())
	return router
}

func createTask(t *testing.T, router http.Handler, token, title string) int64 {
	t.Helper()

	result := apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, token).
		JSON(fmt.Sprintf(`{"title": %q}`, title)).
		Expect(t).
		Status(http.StatusCreated).
		End()

	var body struct {
		Data struct {
			Task task.Task `json:"task"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(result.Response.Body).Decode(&body))
	return body.Data.Task.ID
}

func TestHandler_RequiresSession(t *testing.T) {
	router := newTaskRouter(t)

	apitest.New().
		Handler(router).
		Get("/tasks").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.code", apperr.CodeUnauthorized)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, "forged").
		JSON(`{"title": "x"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestHandler_CRUD(t *testing.T) {
	router := newTaskRouter(t)
	id := createTask(t, router, aliceToken, "  buy milk ")
	path := fmt.Sprintf("/tasks/%d", id)

	apitest.New().
		Handler(router).
		Get("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.data.tasks", 1)).
		Assert(jsonpath.Equal("$.data.tasks[0].title", "buy milk")).
		Assert(jsonpath.Equal("$.data.tasks[0].completed", false)).
		Assert(jsonpath.NotPresent("$.data.tasks[0].owner_id")).
		End()

	apitest.New().
		Handler(router).
		Patch(path).
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"title": "buy oat milk"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.task.title", "buy oat milk")).
		End()

	apitest.New().
		Handler(router).
		Post(path + "/toggle").
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.task.completed", true)).
		End()

	apitest.New().
		Handler(router).
		Delete(path).
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.ok", true)).
		End()

	apitest.New().
		Handler(router).
		Delete(path).
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.code", apperr.CodeNotFound)).
		End()
}

func TestHandler_Validation(t *testing.T) {
	router := newTaskRouter(t)

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"title": "   "}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeTitleRequired)).
		Assert(jsonpath.Equal("$.details[0].field", task.FieldTitle)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		Body(`{"title":`).
		Header("Content-Type", "application/json").
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeInvalidJSON)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks/abc/toggle").
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeInvalidID)).
		End()
}

func TestHandler_ForeignTaskIsNotFound(t *testing.T) {
	router := newTaskRouter(t)
	id := createTask(t, router, aliceToken, "alice only")

	apitest.New().
		Handler(router).
		Patch(fmt.Sprintf("/tasks/%d", id)).
		Cookie(constants.SessionCookieName, bobToken).
		JSON(`{"title": "stolen"}`).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestHandler_BulkActions(t *testing.T) {
	router := newTaskRouter(t)
	createTask(t, router, aliceToken, "one")
	createTask(t, router, aliceToken, "two")

	apitest.New().
		Handler(router).
		Post("/tasks/complete-all").
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.changed", float64(2))).
		Assert(jsonpath.Len("$.data.tasks", 2)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks/bulk").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"action": "clearCompleted"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.changed", float64(2))).
		Assert(jsonpath.Len("$.data.tasks", 0)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks/bulk").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"action": "nuke"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeUnknownAction)).
		End()
}

func TestHandler_CreateWithSchedule(t *testing.T) {
	router := newTaskRouter(t)

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"title": "ship release", "assignee": " bob ", "start_date": "2026-06-01", "end_date": "2026-06-05T17:30:00+02:00"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.data.task.assignee", "bob")).
		Assert(jsonpath.Equal("$.data.task.start_date", "2026-06-01T00:00:00Z")).
		Assert(jsonpath.Equal("$.data.task.end_date", "2026-06-05T15:30:00Z")).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"title": "backwards", "start_date": "2026-06-05", "end_date": "2026-06-01"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeDateRange)).
		Assert(jsonpath.Equal("$.details[0].field", task.FieldEndDate)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		JSON(`{"title": "someday", "start_date": "next week"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", apperr.CodeInvalidDate)).
		Assert(jsonpath.Equal("$.details[0].field", task.FieldStartDate)).
		End()

	apitest.New().
		Handler(router).
		Get("/tasks").
		Cookie(constants.SessionCookieName, aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.data.tasks", 1)).
		Assert(jsonpath.Equal("$.data.tasks[0].assignee", "bob")).
		End()
}

func TestHandler_AnonymousMalformedRequestsAreUnauthorized(t *testing.T) {
	router := newTaskRouter(t)

	apitest.New().
		Handler(router).
		Patch("/tasks/abc").
		JSON(`{"title": "x"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.code", apperr.CodeUnauthorized)).
		End()

	apitest.New().
		Handler(router).
		Delete("/tasks/abc").
		Cookie(constants.SessionCookieName, "forged").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks").
		Body(`{"title":`).
		Header("Content-Type", "application/json").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.code", apperr.CodeUnauthorized)).
		End()

	apitest.New().
		Handler(router).
		Post("/tasks/bulk").
		Body(`not json`).
		Header("Content-Type", "application/json").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}
