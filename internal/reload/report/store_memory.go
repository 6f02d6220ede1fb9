// Package report keeps the most recent reload report for later retrieval.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"facilities/internal/reload"
	"facilities/pkg/platform/sentinel"
)

// InMemoryStore holds the last report in process memory.
type InMemoryStore struct {
	mu   sync.RWMutex
	last []byte
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveLast replaces the stored report. The report is kept serialized so later
// reads never alias the caller's slices.
func (s *InMemoryStore) SaveLast(_ context.Context, report *reload.Report) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = data
	return nil
}

func (s *InMemoryStore) Last(_ context.Context) (*reload.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, fmt.Errorf("last report: %w", sentinel.ErrNotFound)
	}
	return decode(s.last)
}

func decode(data []byte) (*reload.Report, error) {
	var report reload.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}
