package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const traceIDKey contextKey = "traceID"

// TraceIDHeader carries the trace ID on every response.
const TraceIDHeader = "X-Trace-ID"

// traceMiddleware assigns each request a random trace ID for correlating
// logs with error responses.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(TraceIDHeader, id)
		ctx := context.WithValue(r.Context(), traceIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceID returns the request's trace ID, or "" outside a traced request.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
