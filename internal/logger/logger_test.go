package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetChildLogger_AddsComponentField(t *testing.T) {
	var buf bytes.Buffer
	root := &Logger{zerolog.New(&buf)}

	root.GetChildLogger("poller").Info().Msg("loop started")

	assert.Contains(t, buf.String(), `"component":"poller"`)
	assert.Contains(t, buf.String(), "loop started")
}

func TestGetChildLogger_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	root := &Logger{zerolog.New(&buf)}

	_ = root.GetChildLogger("gallery")
	root.Info().Msg("from root")

	assert.NotContains(t, buf.String(), `"component"`)
}

func TestNop_DiscardsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error().Msg("dropped")
	})
}
