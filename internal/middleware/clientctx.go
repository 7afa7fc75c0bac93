package middleware

import "context"

type clientKey struct{}

// WithClient stores the authenticated intake client id on ctx.
func WithClient(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientID)
}

// ClientID returns the authenticated client, if any.
func ClientID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(clientKey{}).(string)
	return v, ok && v != ""
}
