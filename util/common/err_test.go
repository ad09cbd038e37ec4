package common

import (
	"errors"
	"os"
	"testing"

	"github.com/fleetpanel/fleetpanel/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("FP_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf("open %s: attempt %d", "panel.db", 3)
	require.Error(t, err)
	assert.Equal(t, "open panel.db: attempt 3", err.Error())
}

func TestNewError(t *testing.T) {
	err := NewError("invalid db file format")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid db file format")
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	first := errors.New("shutdown timed out")
	second := errors.New("listener already closed")
	combined := Combine(first, nil, second)
	require.Error(t, combined)
	assert.Contains(t, combined.Error(), "shutdown timed out")
	assert.Contains(t, combined.Error(), "listener already closed")
}

func TestRecoverStopsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("background job")
		panic("boom")
	})
}
