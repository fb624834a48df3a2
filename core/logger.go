package core

// Logger reports app events to the configured monitoring backend.
// Implementations may inspect args for well-known types (eg. an error to
// attach a stack trace, or an identity to tag the offending account).
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
