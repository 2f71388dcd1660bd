package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/njchilds90/geographer/internal/config"
	"github.com/njchilds90/geographer/internal/logging"
)

func TestNew(t *testing.T) {
	log, lvl, err := logging.New(config.Log{Level: "warn", Format: "console"})
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()
	assert.Nil(t, log.Check(zap.InfoLevel, "hidden"))

	lvl.SetLevel(zap.DebugLevel)
	assert.NotNil(t, log.Check(zap.DebugLevel, "shown"))
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := logging.New(config.Log{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
