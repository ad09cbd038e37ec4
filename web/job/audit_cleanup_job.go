package job

import (
	"time"

	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/util/common"
	"github.com/fleetpanel/fleetpanel/web/service"
)

// auditRetention is how long audit records are kept.
const auditRetention = 90 * 24 * time.Hour

// AuditCleanupJob removes audit records past the retention window.
type AuditCleanupJob struct {
	auditService service.AuditLogService
}

func NewAuditCleanupJob() *AuditCleanupJob {
	return new(AuditCleanupJob)
}

func (j *AuditCleanupJob) Run() {
	defer common.Recover("audit cleanup job")

	removed, err := j.auditService.DeleteOlderThan(time.Now().Add(-auditRetention))
	if err != nil {
		logger.Warning("audit cleanup failed:", err)
		return
	}
	if removed > 0 {
		logger.Debugf("audit cleanup removed %d records", removed)
	}
}
