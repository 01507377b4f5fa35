package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	logger, err := New(Config{Level: "info", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.Equal(t, "info", logger.Level())

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, "debug", logger.Level())
	assert.Error(t, logger.SetLevel("nope"))
}

func TestNopAndComponent(t *testing.T) {
	logger := Nop()
	named := logger.Component("preview.manager")
	require.NotNil(t, named)
	named.Info("discarded")
}
