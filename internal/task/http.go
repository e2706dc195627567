// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasker/internal/platform/request"
	"github.com/taibuivan/tasker/internal/platform/respond"
	"github.com/taibuivan/tasker/internal/platform/validate"
)

// Handler implements the task HTTP endpoints.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with task routes.
//
// # Endpoints
//   - GET    /                 : List tasks.
//   - POST   /                 : Create a task.
//   - POST   /complete-all     : Complete every task.
//   - POST   /clear-completed  : Delete completed tasks.
//   - POST   /bulk             : Run a named bulk action.
//   - PATCH  /{id}             : Rename a task.
//   - POST   /{id}/toggle      : Flip a task's completed flag.
//   - DELETE /{id}             : Delete a task.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Post("/complete-all", handler.completeAll)
	router.Post("/clear-completed", handler.clearCompleted)
	router.Post("/bulk", handler.bulk)

	router.Route("/{id}", func(r chi.Router) {
		r.Patch("/", handler.rename)
		r.Delete("/", handler.remove)
		r.Post("/toggle", handler.toggle)
	})

	return router
}

// # Request Payloads

type titleRequest struct {
	Title string `json:"title"`
}

type bulkRequest struct {
	Action string `json:"action"`
}

// reject answers a request whose path or body is malformed. The session is
// checked first so anonymous callers always see 401.
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request, inputErr error) {
	if err := handler.taskService.Authorize(request.Context(), requestutil.SessionToken(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Error(writer, request, inputErr)
}

// list handles GET /api/v1/tasks.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tasks, err := handler.taskService.List(request.Context(), requestutil.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldTasks: tasks})
}

/*
Create handles POST /api/v1/tasks.

Request:
  - Body: {"title": "...", "assignee": "...", "start_date": "2026-06-01", "end_date": "2026-06-05"}

Response:
  - 201: {"task": Task}
  - 400: title_required, title_length, assignee_length, invalid_date, date_range
  - 401: unauthorized
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		handler.reject(writer, request, validate.ErrInvalidJSON)
		return
	}

	task, err := handler.taskService.Create(request.Context(), requestutil.SessionToken(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{FieldTask: task})
}

/*
Rename handles PATCH /api/v1/tasks/{id}.

Response:
  - 200: {"task": Task}
  - 400: invalid_id, title_required, title_length
  - 401: unauthorized
  - 404: not_found
*/
func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		handler.reject(writer, request, err)
		return
	}

	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		handler.reject(writer, request, validate.ErrInvalidJSON)
		return
	}

	task, err := handler.taskService.Rename(request.Context(), requestutil.SessionToken(request), id, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldTask: task})
}

// toggle handles POST /api/v1/tasks/{id}/toggle.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		handler.reject(writer, request, err)
		return
	}

	task, err := handler.taskService.Toggle(request.Context(), requestutil.SessionToken(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldTask: task})
}

// remove handles DELETE /api/v1/tasks/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		handler.reject(writer, request, err)
		return
	}

	if err := handler.taskService.Remove(request.Context(), requestutil.SessionToken(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldOK: true})
}

func (handler *Handler) completeAll(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.taskService.CompleteAll(request.Context(), requestutil.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

func (handler *Handler) clearCompleted(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.taskService.ClearCompleted(request.Context(), requestutil.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Bulk handles POST /api/v1/tasks/bulk.

Request:
  - Body: {"action": "completeAll" | "clearCompleted"}

Response:
  - 200: {"changed": n, "tasks": [...]}
  - 400: unknown_action
  - 401: unauthorized
*/
func (handler *Handler) bulk(writer http.ResponseWriter, request *http.Request) {
	var input bulkRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		handler.reject(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.taskService.Bulk(request.Context(), requestutil.SessionToken(request), input.Action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
