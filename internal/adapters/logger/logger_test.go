package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.trai.ch/weft/internal/adapters/logger"
)

func TestLogger_InfoWithArgs(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("task released", "task", 7)

	out := buf.String()
	if !strings.Contains(out, "task released") || !strings.Contains(out, "task=7") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(errors.New("queue closed"))

	if !strings.Contains(buf.String(), "queue closed") {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}
