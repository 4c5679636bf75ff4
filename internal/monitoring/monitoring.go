// Package monitoring samples host vitals on a schedule and records them for
// the system-vitals API.
package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"

	"mepdesign/internal/database"
	"mepdesign/internal/logging"
	"mepdesign/internal/system"
)

// Collector periodically stores host vitals in the database.
type Collector struct {
	cron         *cron.Cron
	sampleWindow time.Duration
}

// NewCollector returns a collector using a one second CPU sample window.
func NewCollector() *Collector {
	return &Collector{
		cron:         cron.New(),
		sampleWindow: time.Second,
	}
}

// Start samples once immediately and then every five minutes.
func (c *Collector) Start() error {
	if _, err := c.cron.AddFunc("@every 5m", c.collect); err != nil {
		return err
	}
	c.cron.Start()
	go c.collect()
	return nil
}

// Stop halts the sampling schedule.
func (c *Collector) Stop() {
	c.cron.Stop()
}

func (c *Collector) collect() {
	vitals, err := system.GetVitals(c.sampleWindow)
	if err != nil {
		logging.Error("Failed to collect system vitals: %v", err)
		return
	}
	if err := database.StoreSystemVital(vitals.CPUPercent, vitals.MemPercent, vitals.DiskPercent); err != nil {
		logging.Error("Failed to store system vitals: %v", err)
	}
}

// Snapshot is the system-vitals API payload: the latest sample plus the
// last 24 hours of history.
type Snapshot struct {
	Current *database.SystemVitalLog  `json:"current"`
	History []database.SystemVitalLog `json:"history"`
}

// GetSnapshot assembles the current vitals snapshot.
func GetSnapshot() (*Snapshot, error) {
	current, err := database.LatestSystemVital()
	if err != nil {
		return nil, err
	}
	history, err := database.SystemVitalsSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	return &Snapshot{Current: current, History: history}, nil
}
