package graphql

import "context"

type contextKey string

const clientIDKey contextKey = "client_id"

// WithClientID stores the authenticated client in the context.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// ClientIDFromContext returns the authenticated client, or "" when none is set.
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}
