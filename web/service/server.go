package service

import (
	"io"
	"mime/multipart"
	"os"
	"runtime"
	"time"

	"github.com/fleetpanel/fleetpanel/config"
	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/util/common"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"
)

// lastCpuPercent holds the most recent CPU sample, shared between the
// sampling job and status requests so a status call never blocks on a
// measurement interval.
var lastCpuPercent atomic.Float64

// Status is the system snapshot served by the status endpoint.
type Status struct {
	Cpu      float64 `json:"cpu"`
	CpuCores int     `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime     uint64 `json:"uptime"`
	AppVersion string `json:"appVersion"`
	GoVersion  string `json:"goVersion"`
}

// ServerService reports host and application status.
type ServerService struct{}

// SampleCpu measures CPU utilization over one second and caches the result.
// Run from a background job, not per request.
func (s *ServerService) SampleCpu() {
	percents, err := cpu.Percent(time.Second, false)
	if err != nil {
		logger.Warning("sample cpu err:", err)
		return
	}
	if len(percents) > 0 {
		lastCpuPercent.Store(percents[0])
	}
}

// GetStatus assembles the current status snapshot.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		Cpu:        lastCpuPercent.Load(),
		AppVersion: config.GetVersion(),
		GoVersion:  runtime.Version(),
	}

	if cores, err := cpu.Counts(false); err == nil {
		status.CpuCores = cores
	} else {
		logger.Warning("get cpu counts err:", err)
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	} else {
		logger.Warning("get virtual memory err:", err)
	}

	if uptime, err := host.Uptime(); err == nil {
		status.Uptime = uptime
	} else {
		logger.Warning("get uptime err:", err)
	}

	return status
}

// GetLogs exposes buffered log lines for the status page.
func (s *ServerService) GetLogs(count int, level string) []string {
	return logger.GetLogs(count, level)
}

// GetDb returns the database file contents for download. The WAL is
// checkpointed first so the copy is self-contained.
func (s *ServerService) GetDb() ([]byte, error) {
	if err := database.Checkpoint(); err != nil {
		return nil, err
	}
	return os.ReadFile(config.GetDBPath())
}

// ImportDB replaces the database with an uploaded file. The upload must
// carry the SQLite signature; nothing is touched until it does.
func (s *ServerService) ImportDB(file multipart.File) error {
	isValidDb, err := database.IsSQLiteDB(file)
	if err != nil {
		return common.NewErrorf("error checking db file format: %v", err)
	}
	if !isValidDb {
		return common.NewError("invalid db file format")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return common.NewErrorf("error resetting file reader: %v", err)
	}

	dbPath := config.GetDBPath()
	tempPath := dbPath + ".temp"

	temp, err := os.Create(tempPath)
	if err != nil {
		return common.NewErrorf("error creating temporary db file: %v", err)
	}
	if _, err = io.Copy(temp, file); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return common.NewErrorf("error saving db: %v", err)
	}
	if err = temp.Close(); err != nil {
		os.Remove(tempPath)
		return common.NewErrorf("error closing temporary db file: %v", err)
	}

	if err = database.CloseDB(); err != nil {
		os.Remove(tempPath)
		return common.NewErrorf("error closing current db: %v", err)
	}
	if err = os.Rename(tempPath, dbPath); err != nil {
		return common.NewErrorf("error moving db file: %v", err)
	}

	return database.InitDB(dbPath)
}
