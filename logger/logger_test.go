package logger

import (
	"flag"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(msg string, args ...any) {
	r.lines = append(r.lines, "D "+fmt.Sprintf(msg, args...))
}

func (r *recordingLogger) Infof(msg string, args ...any) {
	r.lines = append(r.lines, "I "+fmt.Sprintf(msg, args...))
}

func (r *recordingLogger) Warnf(msg string, args ...any) {
	r.lines = append(r.lines, "W "+fmt.Sprintf(msg, args...))
}

func (r *recordingLogger) Errorf(msg string, args ...any) {
	r.lines = append(r.lines, "E "+fmt.Sprintf(msg, args...))
}

func TestNewGlogLogger(t *testing.T) {
	flag.Set("logtostderr", "true")

	l := NewGlogLogger()

	glogLogger, ok := l.(*GlogLogger)
	assert.True(t, ok, "Logger should be of type *GlogLogger")
	assert.Equal(t, 1, glogLogger.depth, "Default depth should be 1")

	assert.NotPanics(t, func() {
		l.Debugf("debug %d", 1)
		l.Infof("info %s", "x")
		l.Warnf("warn")
		l.Errorf("error")
	})
}

func TestPackageFunctionsDelegate(t *testing.T) {
	rec := &recordingLogger{}
	prev := SetLogger(rec)
	defer SetLogger(prev)

	Debugf("a%d", 1)
	Infof("b%d", 2)
	Warnf("c%d", 3)
	Errorf("d%d", 4)

	assert.Equal(t, []string{"D a1", "I b2", "W c3", "E d4"}, rec.lines)
}

func TestSetLoggerNilRestoresGlog(t *testing.T) {
	prev := SetLogger(nil)
	defer SetLogger(prev)

	_, ok := current().(*GlogLogger)
	assert.True(t, ok)
}
