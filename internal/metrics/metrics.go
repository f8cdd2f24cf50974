package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts requests and calculation outcomes. All methods are safe
// for concurrent use.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	totalDurationUs atomic.Uint64
	calculations    atomic.Uint64
	rejected        atomic.Uint64
	payslips        atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

// Record counts one served request.
func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	c.totalDurationUs.Add(uint64(duration.Microseconds()))
}

func (c *Collector) CalculationSucceeded() { c.calculations.Add(1) }

func (c *Collector) CalculationRejected() { c.rejected.Add(1) }

func (c *Collector) PayslipRendered() { c.payslips.Add(1) }

type Snapshot struct {
	RequestsTotal     uint64  `json:"requestsTotal"`
	ErrorsTotal       uint64  `json:"errorsTotal"`
	CalculationsTotal uint64  `json:"calculationsTotal"`
	RejectedTotal     uint64  `json:"rejectedTotal"`
	PayslipsTotal     uint64  `json:"payslipsTotal"`
	AvgDurationMs     float64 `json:"avgDurationMs"`
}

func (c *Collector) Snapshot() Snapshot {
	total := c.totalRequests.Load()
	totalUs := c.totalDurationUs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalUs) / float64(total) / 1000
	}
	return Snapshot{
		RequestsTotal:     total,
		ErrorsTotal:       c.errorRequests.Load(),
		CalculationsTotal: c.calculations.Load(),
		RejectedTotal:     c.rejected.Load(),
		PayslipsTotal:     c.payslips.Load(),
		AvgDurationMs:     avg,
	}
}
