package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0).Component("vault")

	l.Info("issued", "user_id", "u1")

	assert.Contains(t, buf.String(), "component=vault")
	assert.Contains(t, buf.String(), "user_id=u1")
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 4)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
