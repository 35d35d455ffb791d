package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// sessionMiddleware resolves the Bearer session token into a user and
// injects it into the request context.
func sessionMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || token == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			user, err := store.UserFromToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFrom(r *http.Request) cardtalk.User {
	return r.Context().Value(ctxKeyUser).(cardtalk.User)
}
