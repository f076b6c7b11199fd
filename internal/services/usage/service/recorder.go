// Package service implements usage recording and rollup reads
package service

import (
	"context"
	"sync/atomic"
	"time"

	"daybrief/internal/platform/logger"
	"daybrief/internal/services/usage/domain"
	"daybrief/internal/services/usage/repo"
)

const (
	defaultBuffer        = 4096
	defaultBatchSize     = 256
	defaultFlushInterval = 5 * time.Second

	// log every Nth drop so a saturated buffer does not flood the log
	dropLogEvery = 100

	flushTimeout = 10 * time.Second
)

// RecorderConfig controls buffering and flush cadence
type RecorderConfig struct {
	Buffer        int
	BatchSize     int
	FlushInterval time.Duration
}

// Recorder buffers events in memory and batch writes them to clickhouse.
// Record never blocks; when the buffer is full events are dropped and counted
type Recorder struct {
	repo repo.Storage
	log  *logger.Logger
	cfg  RecorderConfig

	events  chan domain.Event
	dropped atomic.Uint64

	now func() time.Time
}

// NewRecorder constructs a recorder; zero config fields take defaults
func NewRecorder(st repo.Storage, cfg RecorderConfig) *Recorder {
	if st == nil {
		panic("usage.Recorder requires a non nil storage")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	return &Recorder{
		repo:   st,
		log:    logger.Named("usage"),
		cfg:    cfg,
		events: make(chan domain.Event, cfg.Buffer),
		now:    time.Now,
	}
}

// Record implements domain.RecorderPort
func (r *Recorder) Record(ev domain.Event) {
	if ev.TS.IsZero() {
		ev.TS = r.now().UTC()
	}
	select {
	case r.events <- ev:
	default:
		if n := r.dropped.Add(1); n%dropLogEvery == 1 {
			r.log.Warn().Uint64("dropped_total", n).Msg("usage buffer full, dropping events")
		}
	}
}

// Dropped returns how many events were discarded since start
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Run implements domain.FlusherPort. It drains the buffer into clickhouse in
// batches, flushing on size or interval, and performs a final flush when ctx
// ends so shutdown loses as little as possible
func (r *Recorder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]domain.Event, 0, r.cfg.BatchSize)

	flush := func(parent context.Context) {
		if len(batch) == 0 {
			return
		}
		fctx, cancel := context.WithTimeout(parent, flushTimeout)
		defer cancel()
		if err := r.repo.InsertEvents(fctx, batch); err != nil {
			r.log.Error().Err(err).Int("events", len(batch)).Msg("usage flush failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			// drain what is already buffered, then write with a fresh context
			for {
				select {
				case ev := <-r.events:
					batch = append(batch, ev)
					if len(batch) >= r.cfg.BatchSize {
						flush(context.Background())
					}
					continue
				default:
				}
				break
			}
			flush(context.Background())
			return ctx.Err()

		case ev := <-r.events:
			batch = append(batch, ev)
			if len(batch) >= r.cfg.BatchSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
