// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/ctxutil"
)

// SessionCookie copies the raw session token from the request cookie into the
// context.
//
// It never rejects a request. Whether the token is valid is decided by the
// auth service, which keeps anonymous endpoints (register, login, me) on the
// same chain as protected ones.
func SessionCookie() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			token := strings.TrimSpace(cookie.Value)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithSessionToken(request.Context(), token)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
