package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/sonoprep/internal/store"
)

// Persister loads and saves the progress document.
type Persister interface {
	// Load returns the stored document, or nil when nothing is stored yet.
	Load(ctx context.Context) (*Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc *Document) error
}

// KVPersister keeps the document as JSON under StorageKey in a key-value repo.
type KVPersister struct {
	repo store.KVRepo
	key  string
}

// NewKVPersister returns a persister over repo.
func NewKVPersister(repo store.KVRepo) *KVPersister {
	return &KVPersister{repo: repo, key: StorageKey}
}

func (p *KVPersister) Load(ctx context.Context) (*Document, error) {
	raw, ok, err := p.repo.Get(ctx, p.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	doc, err := UnmarshalDocument([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.key, err)
	}
	return doc, nil
}

func (p *KVPersister) Save(ctx context.Context, doc *Document) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key, err)
	}
	return p.repo.Set(ctx, p.key, string(data))
}

// MemoryPersister keeps the encoded document in memory. Setting LoadErr or
// SaveErr makes the matching call fail.
type MemoryPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	LoadErr error
	SaveErr error
}

func (m *MemoryPersister) Load(_ context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.data == nil {
		return nil, nil
	}
	return UnmarshalDocument(m.data)
}

func (m *MemoryPersister) Save(_ context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

// Saves returns the number of successful saves.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Raw returns the last saved JSON, or nil.
func (m *MemoryPersister) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}
