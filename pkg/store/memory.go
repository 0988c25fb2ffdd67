package store

// Memory is an in-process Store. It backs tests and callers that opt out of
// durable persistence.
type Memory struct {
	values map[string]string
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	raw, ok := m.values[key]
	return raw, ok
}

func (m *Memory) Set(key, raw string) bool {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = raw
	return true
}
