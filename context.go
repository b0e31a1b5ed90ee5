package reagent

import "context"

type sessionIDKey struct{}

// WithSessionID returns a context carrying the session id, so hooks can correlate events from
// one REPL session.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session id stored by [WithSessionID], or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}
