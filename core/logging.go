package core

// Logger is any sink the app can report to.
// Implementations may inspect args for well-known values (an error, the acting
// principal, a context map) and attach them to the report.
type Logger interface {
	Enable(enabled bool)
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
