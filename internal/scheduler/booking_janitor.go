package scheduler

import (
	"context"
	"time"

	"github.com/flyee/flights/internal/booking"
	"github.com/flyee/flights/internal/logger"
)

// DefaultBookingRetention is how long cancelled bookings are kept before the
// janitor deletes them.
const DefaultBookingRetention = 30 * 24 * time.Hour

// BookingJanitor periodically prunes cancelled bookings from the store.
type BookingJanitor struct {
	bookings  *booking.Service
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
}

func NewBookingJanitor(
	bookings *booking.Service,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *BookingJanitor {
	if retention <= 0 {
		retention = DefaultBookingRetention
	}

	return &BookingJanitor{
		bookings:  bookings,
		logger:    log,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start runs a sweep immediately, then on every interval tick.
func (j *BookingJanitor) Start(ctx context.Context) {
	if err := j.sweep(ctx); err != nil {
		j.logger.Warn("initial booking sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := j.sweep(ctx); err != nil {
					j.logger.Error("booking sweep failed",
						logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor.
func (j *BookingJanitor) Stop() {
	close(j.stopCh)
}

func (j *BookingJanitor) sweep(ctx context.Context) error {
	deleted, err := j.bookings.PruneCancelled(ctx, j.retention)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.logger.Info("pruned cancelled bookings",
			logger.Int("deleted", deleted))
	} else {
		j.logger.Debug("no bookings to prune")
	}
	return nil
}
