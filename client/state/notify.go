package state

import (
	"errors"
	"log/slog"

	"github.com/yogesh1825/CareerConnect-Job-Portal/client"
)

// UnreachableMessage is shown when the API did not answer at all.
const UnreachableMessage = "Server unreachable. Please verify the backend is running."

// Notifier surfaces user-visible outcomes, like a toast.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to slog.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Success(message string) {
	n.logger().Info(message)
}

func (n LogNotifier) Error(message string) {
	n.logger().Error(message)
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

// ErrorMessage picks the text shown for err: the distinct unreachable
// message, the server's own message, or fallback.
func ErrorMessage(err error, fallback string) string {
	if errors.Is(err, client.ErrServerUnreachable) {
		return UnreachableMessage
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
