package logging

import "context"

type contextKey string

const (
	documentKey contextKey = "document"
	triggerKey  contextKey = "trigger"
)

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey, path)
}

// WithTrigger adds the name of the event being handled to the context.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey, trigger)
}

// GetDocument retrieves the document path from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if p, ok := ctx.Value(documentKey).(string); ok {
		return p
	}
	return ""
}

// GetTrigger retrieves the trigger name from the context.
// Returns empty string if not present.
func GetTrigger(ctx context.Context) string {
	if t, ok := ctx.Value(triggerKey).(string); ok {
		return t
	}
	return ""
}
