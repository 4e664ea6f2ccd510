package util

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogRandomSampleBounds(t *testing.T) {
	var buf bytes.Buffer

	mylogger := func(msg string, args ...interface{}) {
		buf.WriteString(fmt.Sprintf(fmt.Sprintln(msg), args...))
	}

	for i := 0; i < 20; i++ {
		LogRandomSample("never", mylogger, 0)
	}
	assert.Empty(t, buf.String())

	LogRandomSample("always 1", mylogger, 1)
	LogRandomSample("always 2", mylogger, 1)
	assert.Equal(t, "always 1\nalways 2\n", buf.String())
}
