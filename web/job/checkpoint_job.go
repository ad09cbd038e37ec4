// Package job contains the background jobs scheduled by the web server.
package job

import (
	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/util/common"
)

// CheckpointJob flushes the SQLite write-ahead log back into the main
// database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
