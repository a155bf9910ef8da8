package state

import (
	"database/sql"
)

// Mock is a test double for Manager.
type Mock struct {
	queueState *QueueState
	volume     float64
	hasVolume  bool
	saves      []QueueState
	closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveQueue(state QueueState) {
	m.queueState = &state
	m.saves = append(m.saves, state)
}

func (m *Mock) GetQueue() (*QueueState, error) {
	if m.queueState == nil {
		return &QueueState{}, nil
	}
	return m.queueState, nil
}

func (m *Mock) SaveVolume(volume float64) error {
	m.volume = volume
	m.hasVolume = true
	return nil
}

func (m *Mock) GetVolume() (float64, error) {
	if !m.hasVolume {
		return 1.0, nil
	}
	return m.volume, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetQueue(state *QueueState) { m.queueState = state }

func (m *Mock) SavedQueues() []QueueState { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
