package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const authorKey contextKey = "author"

// WithAuthor records the authenticated subject. Documents created while
// serving r are attributed to it.
func WithAuthor(r *http.Request, subject string) *http.Request {
	if subject == "" {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), authorKey, subject))
}

// Author returns the authenticated subject of r, or fallback for anonymous requests
func Author(r *http.Request, fallback string) string {
	if subject, ok := r.Context().Value(authorKey).(string); ok && subject != "" {
		return subject
	}
	return fallback
}
