package memory

import (
	"context"
	"sync"

	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
)

// Memory is an in-memory repository used for development and tests
type Memory struct {
	risk *riskRepository

	mu        sync.RWMutex
	observers []interfaces.MutationObserver
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{}
	m.risk = newRiskRepository(m.notify)
	return m
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) RegisterObserver(observer interfaces.MutationObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, observer)
}

func (m *Memory) Close() error {
	return nil
}

// notify runs after a successful commit, outside the store lock
func (m *Memory) notify(ctx context.Context) {
	m.mu.RLock()
	observers := make([]interfaces.MutationObserver, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, observer := range observers {
		observer.OnMutation(ctx)
	}
}
