package cookiekeeper

// Logger receives best-effort diagnostics: backup pruning failures, ledger
// write failures, and similar conditions that must not fail the enclosing
// operation. Hosts plug in their own backend; the CLI binds this to zap.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}

// NopLogger returns a Logger that discards everything. It is the default
// wherever a Logger is optional.
func NopLogger() Logger { return nopLogger{} }
