package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	in := []interface{}{"recipe_id", 4, "access_token", "abc", "AWS_SECRET_KEY", "xyz", "dangling"}
	out := redact(in)

	assert.Equal(t, []interface{}{"recipe_id", 4, "access_token", "[REDACTED]", "AWS_SECRET_KEY", "[REDACTED]", "dangling"}, out)
	assert.Equal(t, "abc", in[3], "input must not be mutated")
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	assert.NotPanics(t, func() {
		l.Info("hello", "k", "v")
		l.Sync()
	})
}
