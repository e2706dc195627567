// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/ctxutil"
	"github.com/taibuivan/tasker/internal/platform/validate"
)

// maxBodyBytes bounds every JSON payload accepted by the API.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Int64Param parses a named URL parameter as a positive integer identifier.

Returns:
  - int64: The parsed identifier
  - error: a validation error (invalid_id) if the parameter is not a positive integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.FieldErr(name, apperr.CodeInvalidID, "Must be a positive integer")
	}

	return id, nil
}

/*
SessionToken returns the raw session token extracted by the session middleware.

Returns an empty string for anonymous requests.
*/
func SessionToken(request *http.Request) string {
	return ctxutil.GetSessionToken(request.Context())
}
