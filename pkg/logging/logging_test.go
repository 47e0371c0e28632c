package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	Init(false, &buf)

	Debug("resolver", "picked %s", "prod/a")
	assert.Empty(t, buf.String())

	Warn("resolver", "no history yet")
	assert.Contains(t, buf.String(), "no history yet")
	assert.Contains(t, buf.String(), "subsystem=resolver")
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	Init(true, &buf)

	Debug("kubectl", "executing %s", "kubectl get namespaces")
	out := buf.String()
	assert.Contains(t, out, "executing kubectl get namespaces")
	assert.Contains(t, out, "level=DEBUG")
}

func TestErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	Init(false, &buf)

	Error("config", assert.AnError, "load failed")
	out := buf.String()
	assert.Contains(t, out, "load failed")
	assert.Contains(t, out, assert.AnError.Error())
}
