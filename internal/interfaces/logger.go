package interfaces

// Logger is the structured logger used across the service. keyvals are
// alternating keys and values.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	SetLevel(level string)
	// WithContext returns a logger that adds fields to every entry.
	WithContext(fields map[string]interface{}) Logger
}
