package logger

// Logger is the formatted logging surface used across the adjustment engine.
type Logger interface {
	// Debug level logging
	Debugf(msg string, args ...any)

	// Info level logging
	Infof(msg string, args ...any)

	// Warn level logging
	Warnf(msg string, args ...any)

	// Error level logging
	Errorf(msg string, args ...any)
}
