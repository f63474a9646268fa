// Package monitor periodically reports this node's load to the service
// registry, the way the teacher's framework/game.Monitor folds room and
// player counts together with CPU and memory usage.
package monitor

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/lamyinia/mahjongmatch/internal/controller"
	"github.com/lamyinia/mahjongmatch/internal/discovery"
	"github.com/lamyinia/mahjongmatch/internal/logging"
)

// LoadInfo is the snapshot of factors the load score is built from.
type LoadInfo struct {
	MatchCount  int
	PlayerCount int
	CPUUsage    float64
	MemUsage    float64
}

// CalculateLoad folds the snapshot into a single score a load-balancing
// gateway can compare across nodes; lower is less loaded. Match and player
// counts dominate since they bound how many more tables this node can
// safely seat, CPU/memory act as a tie-breaker.
func (l LoadInfo) CalculateLoad() float64 {
	return float64(l.MatchCount)*10 + float64(l.PlayerCount) + l.CPUUsage*0.5 + l.MemUsage*0.2
}

// Monitor samples the hub's match/player counts and host resource usage on
// an interval and republishes them through registry.
type Monitor struct {
	hub            *controller.Hub
	registry       *discovery.Registry
	updateInterval time.Duration
	stopCh         chan struct{}
}

// New creates a monitor that reports hub's stats through registry every
// updateInterval.
func New(hub *controller.Hub, registry *discovery.Registry, updateInterval time.Duration) *Monitor {
	return &Monitor{
		hub:            hub,
		registry:       registry,
		updateInterval: updateInterval,
		stopCh:         make(chan struct{}),
	}
}

// Report runs the sampling loop until ctx is cancelled or Stop is called.
func (m *Monitor) Report(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	m.reportLoad()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.reportLoad()
		}
	}
}

// Stop ends the sampling loop.
func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) reportLoad() {
	info := m.collectLoadInfo()
	load := info.CalculateLoad()

	if err := m.registry.UpdateLoad(load); err != nil {
		logging.Error("monitor: report load: %v", err)
		return
	}
	logging.Debug("monitor: load=%.2f matches=%d players=%d cpu=%.2f%% mem=%.2f%%",
		load, info.MatchCount, info.PlayerCount, info.CPUUsage, info.MemUsage)
}

func (m *Monitor) collectLoadInfo() LoadInfo {
	matchCount, playerCount := m.hub.Stats()
	return LoadInfo{
		MatchCount:  matchCount,
		PlayerCount: playerCount,
		CPUUsage:    cpuUsage(),
		MemUsage:    memUsage(),
	}
}

// cpuUsage samples system-wide CPU usage over a 200ms window, averaged
// across cores; every call blocks for that window.
func cpuUsage() float64 {
	percentages, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil || len(percentages) == 0 {
		return 0
	}
	return clampPercent(percentages[0])
}

// memUsage reports this process's reserved memory as a percentage of an
// assumed 8GB host; without a per-host total configured this is a rough
// proxy, adequate for comparing nodes of the same deployment footprint.
func memUsage() float64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	const assumedHostMemory = 8 * 1024 * 1024 * 1024
	return clampPercent(float64(stats.Sys) / assumedHostMemory * 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
