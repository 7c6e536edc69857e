package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.messages = append(r.messages, level+" "+message)
}

func TestLoggerFromContext(t *testing.T) {
	rec := &recordingLogger{}
	ctx := WithLogger(context.Background(), rec)

	LoggerFromContext(ctx).Log(LevelInfo, "hello", nil)

	assert.Equal(t, []string{"INFO hello"}, rec.messages)
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	//nolint:staticcheck // a nil context must not panic
	assert.Equal(t, NoOp(), LoggerFromContext(nil))
	assert.Equal(t, NoOp(), LoggerFromContext(context.Background()))

	assert.NotPanics(t, func() {
		LoggerFromContext(context.Background()).Log(LevelError, "dropped", map[string]interface{}{"k": "v"})
	})
}
