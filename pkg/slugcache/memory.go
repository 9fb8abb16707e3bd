package slugcache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// Memory is an in-process Backend: a thread-safe LRU with optional expiry.
// When full, the least recently used entry is evicted.
type Memory struct {
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	eviction *list.List
	gen      int64
	mu       sync.Mutex
	now      func() time.Time
}

// NewMemory creates a Memory backend holding at most capacity entries, each
// living for ttl (zero means no expiry). Panics if capacity is not positive.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		panic("slugcache: memory capacity must be positive")
	}
	return &Memory{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
}

func (m *Memory) Generation(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen, nil
}

func (m *Memory) Get(_ context.Context, gen int64, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return nil, ErrMiss
	}

	elem, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.removeElement(elem)
		return nil, ErrMiss
	}
	m.eviction.MoveToFront(elem)
	return entry.value, nil
}

func (m *Memory) Set(_ context.Context, gen int64, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return nil
	}

	var expires time.Time
	if m.ttl > 0 {
		expires = m.now().Add(m.ttl)
	}

	if elem, ok := m.items[key]; ok {
		m.eviction.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expires = expires
		return nil
	}

	m.items[key] = m.eviction.PushFront(&memoryEntry{key: key, value: value, expires: expires})
	if m.eviction.Len() > m.capacity {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
	return nil
}

func (m *Memory) Purge(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.items = make(map[string]*list.Element)
	m.eviction.Init()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eviction.Len()
}

// Must be called with lock held.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry).key)
}
