package services

import "context"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
)

// Notifier delivers short user-facing messages to the browser session found in ctx.
type Notifier interface {
	Notify(ctx context.Context, kind NotificationKind, message string)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, NotificationKind, string) {}

type sessionIDKey struct{}

// WithSessionID tags ctx with the browser session a request belongs to.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}
