package httputil

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// WithUserID returns r with the authenticated user id attached to its context
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
}

// UserID returns the id set by WithUserID; ok is false for anonymous requests
func UserID(r *http.Request) (id string, ok bool) {
	id, _ = r.Context().Value(userIDKey{}).(string)
	return id, id != ""
}
