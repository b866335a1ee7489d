package domain

// NotificationLevel distinguishes confirmations from failures.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a dismissable, non-blocking message for the user.
type Notification struct {
	Message string
	Level   NotificationLevel
}

// Notifier receives user-facing notifications. Implementations must be safe
// to call from any goroutine.
type Notifier interface {
	Notify(n Notification)
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(Notification)

func (f NotifyFunc) Notify(n Notification) { f(n) }

// NoopNotifier drops every notification.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Notification) {}
