package middleware

import (
	"context"
	"net/http"
	"strings"

	"lawflow/internal/domain"
)

// ActorHeader names the user an action is attributed to in the activity feed.
// It is informational only and carries no authentication.
const ActorHeader = "X-Actor"

const maxActorLen = 255

type contextKey string

const (
	actorContextKey     contextKey = "actor"
	requestIDContextKey contextKey = "request_id"
)

// SetActor returns a new context with the actor set.
func SetActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the actor set by Actor, or domain.DefaultActor.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorContextKey).(string); ok && v != "" {
		return v
	}
	return domain.DefaultActor
}

// Actor reads the X-Actor header into the request context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(SetActor(r.Context(), actorFromRequest(r))))
	})
}

// actorFromRequest trims and bounds the X-Actor header without splitting a rune.
func actorFromRequest(r *http.Request) string {
	actor := strings.TrimSpace(r.Header.Get(ActorHeader))
	if len(actor) > maxActorLen {
		actor = strings.ToValidUTF8(actor[:maxActorLen], "")
	}
	if actor == "" {
		return domain.DefaultActor
	}
	return actor
}

// RequestIDFromContext returns the id assigned by LoggingMiddleware, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDContextKey).(string)
	return v, ok && v != ""
}
