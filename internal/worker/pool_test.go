package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/models"
)

func auditRow(model string) models.PredictionAudit {
	return models.PredictionAudit{
		RequestID:   uuid.New(),
		Timestamp:   time.Now(),
		Model:       model,
		Patch:       "15.10",
		Region:      "kr",
		BlueTeam:    "T1",
		RedTeam:     "Gen.G",
		BlueWinProb: 0.6,
		Winner:      "Blue",
	}
}

func TestEnqueueFull(t *testing.T) {
	pool := NewPool(PoolConfig{QueueSize: 1, Logger: zap.NewNop()})

	if !pool.Enqueue(auditRow("voting")) {
		t.Fatal("Failed to enqueue first row")
	}

	start := time.Now()
	enqueued := pool.Enqueue(auditRow("elastic"))
	duration := time.Since(start)

	if enqueued {
		t.Error("Enqueue should have returned false when queue is full")
	}
	if duration > 10*time.Millisecond {
		t.Errorf("Enqueue took too long (%v), expected immediate return", duration)
	}
	if pool.QueueDepth() != 1 {
		t.Errorf("QueueDepth = %d, want 1", pool.QueueDepth())
	}
}

func TestPool_BatchesBySize(t *testing.T) {
	ch := &MockClickHouseConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     100,
		BatchSize:     4,
		FlushInterval: time.Hour,
		ClickHouse:    ch,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		if !pool.Enqueue(auditRow("voting")) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	pool.Stop()

	if got := ch.SentRows(); got != 10 {
		t.Errorf("sent %d rows, want 10", got)
	}
	// 4 + 4 + the remainder flushed on Stop
	if ch.Prepared != 3 {
		t.Errorf("prepared %d batches, want 3", ch.Prepared)
	}
}

func TestPool_FlushesOnInterval(t *testing.T) {
	ch := &MockClickHouseConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		BatchSize:     100,
		FlushInterval: 10 * time.Millisecond,
		ClickHouse:    ch,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())
	defer pool.Stop()

	pool.Enqueue(auditRow("elastic"))

	deadline := time.Now().Add(time.Second)
	for ch.SentRows() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if ch.SentRows() != 1 {
		t.Errorf("row not flushed by the ticker")
	}
}

func TestPool_SendFailureDoesNotStopWorker(t *testing.T) {
	ch := &MockClickHouseConn{SendErr: errors.New("clickhouse down")}
	pool := NewPool(PoolConfig{WorkerCount: 1, BatchSize: 1, FlushInterval: time.Hour, ClickHouse: ch, Logger: zap.NewNop()})
	pool.Start(context.Background())

	pool.Enqueue(auditRow("voting"))
	pool.Enqueue(auditRow("voting"))
	pool.Stop()

	if ch.Prepared != 2 || ch.SentRows() != 0 {
		t.Errorf("prepared=%d sent=%d", ch.Prepared, ch.SentRows())
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	pool := NewPool(PoolConfig{WorkerCount: 1, ClickHouse: &MockClickHouseConn{}, Logger: zap.NewNop()})
	pool.Start(context.Background())
	pool.Stop()

	if pool.Enqueue(auditRow("voting")) {
		t.Error("Enqueue after Stop should fail")
	}
}

func TestEnsureSchema(t *testing.T) {
	ch := &MockClickHouseConn{}
	if err := EnsureSchema(context.Background(), ch); err != nil {
		t.Fatal(err)
	}
	if len(ch.Execs) != 1 || !strings.Contains(ch.Execs[0], "prediction_log") {
		t.Errorf("Execs = %v", ch.Execs)
	}
}

func TestNopQueue(t *testing.T) {
	var q NopQueue
	if !q.Enqueue(auditRow("voting")) || q.QueueDepth() != 0 {
		t.Error("NopQueue should accept and hold nothing")
	}
}
