// Package worker implements the buffered worker pool that writes prediction
// audit rows to ClickHouse. HTTP handlers never wait on the database:
// - Load shedding when the queue is full
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/models"
)

// Prometheus metrics
var (
	auditsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_audit_enqueued_total",
		Help: "Total number of audit rows enqueued",
	})

	auditsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_audit_written_total",
		Help: "Total number of audit rows written to ClickHouse",
	})

	auditsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_audit_failed_total",
		Help: "Total number of audit rows that failed to be written",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "golstats_audit_queue_depth",
		Help: "Current depth of the audit queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "golstats_audit_batch_insert_duration_seconds",
		Help:    "Duration of audit batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	auditsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_audit_load_shed_total",
		Help: "Total number of audit rows dropped due to load shedding",
	})
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS prediction_log (
	request_id    UUID,
	timestamp     DateTime64(3),
	model         LowCardinality(String),
	patch         LowCardinality(String),
	region        LowCardinality(String),
	blue_team     String,
	red_team      String,
	blue_win_prob Float64,
	winner        LowCardinality(String)
) ENGINE = MergeTree()
ORDER BY (timestamp, request_id)`

const insertAudit = `
	INSERT INTO prediction_log (
		request_id, timestamp, model, patch, region,
		blue_team, red_team, blue_win_prob, winner
	)
`

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool batches audit rows into ClickHouse
type Pool struct {
	config   PoolConfig
	jobQueue chan models.PredictionAudit
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan models.PredictionAudit, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// EnsureSchema creates the prediction_log table
func EnsureSchema(ctx context.Context, ch driver.Conn) error {
	return ch.Exec(ctx, auditSchema)
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Audit pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue, flushes every worker and waits for them
func (p *Pool) Stop() {
	p.logger.Info("Stopping audit pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Audit pool stopped")
}

// Enqueue adds a row to the queue. It never blocks: when the queue is full
// the row is dropped and false is returned.
func (p *Pool) Enqueue(audit models.PredictionAudit) (ok bool) {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue audit row (pool stopped)", "error", r)
			ok = false
		}
	}()

	select {
	case p.jobQueue <- audit:
		auditsEnqueued.Inc()
		return true
	default:
		auditsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes rows from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.PredictionAudit, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Audit batch failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			auditsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Audit batch written", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			auditsWritten.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case audit, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, audit)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes one batch of audit rows
func (p *Pool) processBatch(batch []models.PredictionAudit) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertAudit)
	if err != nil {
		return err
	}

	for _, a := range batch {
		err := chBatch.Append(
			a.RequestID,
			a.Timestamp,
			a.Model,
			a.Patch,
			a.Region,
			a.BlueTeam,
			a.RedTeam,
			a.BlueWinProb,
			a.Winner,
		)
		if err != nil {
			p.logger.Warnw("Failed to append audit row to batch", "error", err, "requestID", a.RequestID)
			continue
		}
	}

	return chBatch.Send()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// NopQueue discards audit rows. It is used when ClickHouse is not configured.
type NopQueue struct{}

func (NopQueue) Enqueue(models.PredictionAudit) bool { return true }
func (NopQueue) QueueDepth() int                     { return 0 }
