package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/analysis"
)

// ReportCache is a thread-safe LRU cache for recent analysis run reports,
// keyed by run ID. It saves a round trip to the archive backend for reports
// requested shortly after a run.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*analysis.RunReport
	order   []string // oldest first
}

// NewReportCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 20.
func NewReportCache(maxSize int) *ReportCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &ReportCache{
		maxSize: maxSize,
		entries: make(map[string]*analysis.RunReport),
	}
}

// NewReportCacheFromEnv creates a cache sized from REPORT_CACHE_SIZE.
func NewReportCacheFromEnv() *ReportCache {
	size := 20
	if v := os.Getenv("REPORT_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewReportCache(size)
}

// Get retrieves a report from the cache, or nil if not present.
func (c *ReportCache) Get(runID string) *analysis.RunReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	report, ok := c.entries[runID]
	if !ok {
		return nil
	}
	c.moveToEnd(runID)
	return report
}

// Put adds a report to the cache, evicting the oldest if full.
func (c *ReportCache) Put(report *analysis.RunReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[report.RunID]; ok {
		c.entries[report.RunID] = report
		c.moveToEnd(report.RunID)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[report.RunID] = report
	c.order = append(c.order, report.RunID)
}

func (c *ReportCache) moveToEnd(runID string) {
	for i, id := range c.order {
		if id == runID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, runID)
			return
		}
	}
}
