package service

import (
	"os"
	"testing"

	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("FP_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

// setupTestDB opens the shared in-memory database and wipes all tables so
// every test starts clean.
func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitTestDB())

	db := database.GetDB()
	for _, table := range []string{"users", "vehicles", "audit_records"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
}
