package metrics

import (
	"time"

	"github.com/cuemby/stow/pkg/kv"
)

// Collector periodically samples a Database's stats into the package's
// gauges. It is optional: callers that only care about operation-level
// histograms (storage_read_duration_seconds and friends, recorded by
// callers wrapping View/Update, and orm_save_duration_seconds and
// friends, recorded directly by pkg/orm) never need to construct one.
type Collector struct {
	db       *kv.DB
	sizeFunc func() (int64, error)
	stopCh   chan struct{}
}

// NewCollector creates a collector for db. sizeFunc, if non-nil, is
// polled for the backing store's on-disk size in bytes; drivers that
// have no notion of file size (or callers that don't need the metric)
// may pass nil.
func NewCollector(db *kv.DB, sizeFunc func() (int64, error)) *Collector {
	return &Collector{db: db, sizeFunc: sizeFunc, stopCh: make(chan struct{})}
}

// Start begins collecting on a 15 second tick, sampling immediately on
// call.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	stat, err := c.db.Stat()
	if err != nil {
		StorageDBOpen.Set(0)
		return
	}
	StorageDBOpen.Set(1)
	StorageBucketsTotal.Set(float64(stat.BucketCount))

	if c.sizeFunc != nil {
		if size, err := c.sizeFunc(); err == nil {
			StorageDBSizeBytes.Set(float64(size))
		}
	}
}
