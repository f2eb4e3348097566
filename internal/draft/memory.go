package draft

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is the in-process draft store, used in tests and as the fallback
// when no Redis address is configured. Contents do not survive a restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]map[string][]byte)}
}

func (m *Memory) Put(ctx context.Context, sessionID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[sessionID] == nil {
		m.sessions[sessionID] = make(map[string][]byte)
	}
	m.sessions[sessionID][key] = data

	return nil
}

func (m *Memory) Get(ctx context.Context, sessionID, key string, dest any) bool {
	m.mu.RLock()
	data, ok := m.sessions[sessionID][key]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}

	return true
}

func (m *Memory) Remove(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions[sessionID], key)
	return nil
}

// Corrupt seeds raw bytes under a key, bypassing JSON encoding. Test hook
// for exercising the corrupt-entry-reads-as-absent contract.
func (m *Memory) Corrupt(sessionID, key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[sessionID] == nil {
		m.sessions[sessionID] = make(map[string][]byte)
	}
	m.sessions[sessionID][key] = raw
}
