package logger

import (
	"github.com/golang/glog"
)

// GlogLogger implements the Logger interface using the glog library with configurable call depth.
type GlogLogger struct {
	depth int
}

// Debugf logs at verbosity 2 so it stays quiet unless -v is raised.
func (logger *GlogLogger) Debugf(msg string, args ...any) {
	if glog.V(2) {
		glog.InfoDepthf(logger.depth, msg, args...)
	}
}

// Infof logs an informational-level message with the specified format and optional arguments.
func (logger *GlogLogger) Infof(msg string, args ...any) {
	glog.InfoDepthf(logger.depth, msg, args...)
}

// Warnf logs a warning-level message with the specified format and arguments.
func (logger *GlogLogger) Warnf(msg string, args ...any) {
	glog.WarningDepthf(logger.depth, msg, args...)
}

// Errorf logs an error-level message with the specified format and arguments.
func (logger *GlogLogger) Errorf(msg string, args ...any) {
	glog.ErrorDepthf(logger.depth, msg, args...)
}

func NewGlogLogger() Logger {
	return &GlogLogger{
		depth: 1,
	}
}
