package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu       sync.Mutex
	Batches  []*MockBatch
	Execs    []string
	SendErr  error
	Prepared int
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prepared++
	b := &MockBatch{conn: m, sendErr: m.SendErr}
	m.Batches = append(m.Batches, b)
	return b, nil
}

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Execs = append(m.Execs, query)
	return nil
}

// SentRows counts rows of batches that were sent successfully
func (m *MockClickHouseConn) SentRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.Batches {
		if b.sent {
			n += len(b.rows)
		}
	}
	return n
}

type MockBatch struct {
	driver.Batch
	conn    *MockClickHouseConn
	rows    [][]interface{}
	sent    bool
	sendErr error
}

func (m *MockBatch) Append(v ...interface{}) error {
	if len(v) != 9 {
		return errors.New("unexpected column count")
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) Send() error {
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}
