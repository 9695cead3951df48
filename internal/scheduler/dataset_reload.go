package scheduler

import (
	"context"
	"time"

	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/sources/dataset"
)

// DatasetReloader loads the flight dataset into the index and republishes it
// on demand. The periodic ticker only runs when interval > 0; the manual
// trigger channel (POST /api/reload) works either way.
type DatasetReloader struct {
	loader        *dataset.Loader
	mapper        *dataset.Mapper
	index         *index.FlightIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewDatasetReloader(
	dataFile string,
	idx *index.FlightIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DatasetReloader {
	return &DatasetReloader{
		loader:        dataset.NewLoader(dataFile),
		mapper:        dataset.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start performs the initial load and begins listening for reload triggers.
//
// The initial load never fails startup: a missing or malformed dataset file
// leaves the index empty and the API serving zero results, which beats
// refusing to start over a data problem an operator can fix live.
func (r *DatasetReloader) Start(ctx context.Context) {
	if err := r.Reload(ctx); err != nil {
		r.logger.Error("dataset unavailable, starting with empty dataset",
			logger.Error(err))
	}

	go func() {
		var tick <-chan time.Time
		if r.interval > 0 {
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-tick:
				if err := r.Reload(ctx); err != nil {
					r.logger.Error("failed to reload dataset",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual dataset reload triggered")
				if err := r.Reload(ctx); err != nil {
					r.logger.Error("failed to reload dataset",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader.
func (r *DatasetReloader) Stop() {
	close(r.stopCh)
}

// Reload reads the dataset file and publishes a fresh snapshot. The previous
// snapshot stays live until the new one is fully built, so concurrent queries
// never see partial data.
func (r *DatasetReloader) Reload(_ context.Context) error {
	records, err := r.loader.Load()
	if err != nil {
		return err
	}

	flights, skipped := r.mapper.Map(records)
	if skipped > 0 {
		r.logger.Warn("skipped invalid dataset records",
			logger.Int("skipped", skipped))
	}

	r.index.Update(flights)
	r.logger.Info("flight dataset loaded",
		logger.Int("count", len(flights)))
	return nil
}
