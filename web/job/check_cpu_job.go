package job

import (
	"github.com/fleetpanel/fleetpanel/web/service"
)

// CheckCpuJob refreshes the cached CPU utilization sample used by the
// status endpoint.
type CheckCpuJob struct {
	serverService service.ServerService
}

func NewCheckCpuJob() *CheckCpuJob {
	return new(CheckCpuJob)
}

func (j *CheckCpuJob) Run() {
	j.serverService.SampleCpu()
}
