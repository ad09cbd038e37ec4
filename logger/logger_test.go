package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogs(t *testing.T) {
	os.Setenv("FP_LOG_FOLDER", t.TempDir())
	InitLogger(logging.ERROR)

	for i := 0; i < 5; i++ {
		Info("background sweep", i)
	}
	Error("listener gone away")

	// the count is an upper bound, newest entries first
	got := GetLogs(3, "DEBUG")
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "listener gone away")

	// level filtering keeps only entries at or above the requested severity
	errorsOnly := GetLogs(100, "ERROR")
	require.NotEmpty(t, errorsOnly)
	for _, line := range errorsOnly {
		assert.False(t, strings.Contains(line, "background sweep"), "unexpected line: %s", line)
	}
}
