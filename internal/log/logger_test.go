package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	SetLevel("info")

	Info("info %s", "message")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	Error("error message")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	SetDebug(false)
	Debug("hidden message")
	assert.Empty(t, buf.String())
	buf.Reset()

	SetDebug(true)
	Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
	buf.Reset()

	SetDebug(false)
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	SetLevel("error")
	Info("should be suppressed")
	assert.Empty(t, buf.String())

	Error("should appear")
	assert.Contains(t, buf.String(), "should appear")
	buf.Reset()

	// Unknown levels fall back to info
	SetLevel("shouting")
	Info("back to info")
	assert.Contains(t, buf.String(), "back to info")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	SetLevel("info")

	LogWithFields(F("path", "/tmp/a.txt"), F("count", 3)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "path=")
	assert.Contains(t, output, "count=3")
}
