package storage

import (
	"context"
	"sync"

	"github.com/tapan77777/Transpera/models"
)

// Memory is the in-memory Store used when no database is configured.
// Reads hand out copies, so a snapshot taken for a scoring pass is
// isolated from writes that land mid-computation.
type Memory struct {
	mu     sync.RWMutex
	trades []models.Trade
	tasks  []models.ComplianceTask
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Trades(ctx context.Context) ([]models.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Trade(nil), m.trades...), nil
}

func (m *Memory) ReplaceTrades(ctx context.Context, all []models.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append([]models.Trade(nil), all...)
	return nil
}

func (m *Memory) AppendTrade(ctx context.Context, t models.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, t)
	return nil
}

func (m *Memory) Tasks(ctx context.Context) ([]models.ComplianceTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.ComplianceTask(nil), m.tasks...), nil
}

func (m *Memory) ReplaceTasks(ctx context.Context, all []models.ComplianceTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append([]models.ComplianceTask(nil), all...)
	return nil
}

func (m *Memory) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Status = status
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *Memory) Close() error {
	return nil
}
