package db

import (
	"context"
	"sync"

	"github.com/jsphweid/scorestream/model"
	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("metadata not found")
	ErrMissingId = errors.New("metadata has no score id")
)

// MetadataStore persists descriptive metadata for stored scores.
type MetadataStore interface {
	PutMetadata(ctx context.Context, md model.Metadata) error
	GetMetadata(ctx context.Context, scoreId string) (model.Metadata, error)
	GetMetadatas(ctx context.Context, scoreIds []string) (map[string]model.Metadata, error)
}

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]model.Metadata
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]model.Metadata)}
}

func (m *MemoryStore) PutMetadata(ctx context.Context, md model.Metadata) error {
	if md.ScoreId == "" {
		return errors.Wrap(ErrMissingId, "cannot store metadata")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[md.ScoreId] = md
	return nil
}

func (m *MemoryStore) GetMetadata(ctx context.Context, scoreId string) (model.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	md, ok := m.items[scoreId]
	if !ok {
		return model.Metadata{}, errors.Wrapf(ErrNotFound, "score %s", scoreId)
	}
	return md, nil
}

func (m *MemoryStore) GetMetadatas(ctx context.Context, scoreIds []string) (map[string]model.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[string]model.Metadata)
	for _, id := range scoreIds {
		if md, ok := m.items[id]; ok {
			res[id] = md
		}
	}
	return res, nil
}
