package processor

import "context"

type suppressKey struct{}

// WithSuppression marks a context so spans started under it are ignored by
// the processor. The marker is set around each callback body, preventing
// the act of rendering from generating traced spans of its own.
func WithSuppression(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressKey{}, true)
}

// IsSuppressed reports whether the context carries the suppression marker.
func IsSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(suppressKey{}).(bool)
	return v
}
