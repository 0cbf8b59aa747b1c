package recorder

import (
	"sync"
)

type MemoryRecorder struct {
	records map[string][]byte
	mu      sync.RWMutex
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		records: make(map[string][]byte),
	}
}

func (m *MemoryRecorder) Save(record *RoundRecord) error {
	return m.save(RecordKey(record.SessionID, record.RoundNum), record)
}

func (m *MemoryRecorder) save(key string, record *RoundRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

func (m *MemoryRecorder) Load(sessionID string, roundNum int) (*RoundRecord, error) {
	return m.load(RecordKey(sessionID, roundNum))
}

func (m *MemoryRecorder) load(key string) (*RoundRecord, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return nil, NotFoundError{Key: key}
	}
	return decodeRecord(data)
}

func (m *MemoryRecorder) Remove(sessionID string, roundNum int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, RecordKey(sessionID, roundNum))
	return nil
}

// Len returns the number of stored records.
func (m *MemoryRecorder) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *MemoryRecorder) Close() error {
	return nil
}
