// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasker/internal/platform/constants"
	requestutil "github.com/taibuivan/tasker/internal/platform/request"
	"github.com/taibuivan/tasker/internal/platform/respond"
	"github.com/taibuivan/tasker/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Register, login, logout and the "who am I" lookup. The session token only
// ever travels in an HttpOnly cookie; it is never written to a response body.
type Handler struct {
	authService  *Service
	cookieSecure bool
}

// NewHandler constructs a new [Handler]. cookieSecure controls the Secure
// attribute of the session cookie and should only be false for plain-HTTP
// development setups.
func NewHandler(service *Service, cookieSecure bool) *Handler {
	return &Handler{authService: service, cookieSecure: cookieSecure}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates an account and logs it in.
//   - POST /login    : Authenticates and sets the session cookie.
//   - POST /logout   : Revokes the session and clears the cookie.
//   - GET  /me       : Returns the current user, or null.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	return router
}

// # Request Payloads

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: {"user": User} and a session cookie
  - 400: invalid_json, username_required, username_length, password_length
  - 409: username_taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.Register(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Session)
	respond.Created(writer, map[string]any{FieldUser: result.User})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: {"user": User} and a session cookie
  - 401: invalid_credentials
  - 429: too_many_attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Session)
	respond.OK(writer, map[string]any{FieldUser: result.User})
}

/*
Logout revokes the caller's session.

POST /api/v1/auth/logout

Always answers 200 and clears the cookie, even for anonymous callers.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context(), requestutil.SessionToken(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.OK(writer, map[string]any{FieldOK: true})
}

/*
Me returns the authenticated user.

GET /api/v1/auth/me

Response:
  - 200: {"user": User} or {"user": null}
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.WhoAmI(request.Context(), requestutil.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}

// # Cookie Helpers

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, issued IssuedSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    issued.Token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(handler.authService.SessionTTL() / time.Second),
		Expires:  issued.ExpiresAt,
		HttpOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
