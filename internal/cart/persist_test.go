package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shopfront/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersister struct {
	data map[string][]byte
	err  error
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{data: map[string][]byte{}}
}

func (m *memoryPersister) GetJSON(_ context.Context, key string, dst any) error {
	if m.err != nil {
		return m.err
	}
	raw, ok := m.data[key]
	if !ok {
		return localstore.ErrNotFound
	}
	return json.Unmarshal(raw, dst)
}

func (m *memoryPersister) SetJSON(_ context.Context, key string, v any) error {
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryPersister) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return m.err
}

func TestStore_SaveRestore(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()

	s := NewStore(WithPersister(p))
	require.NoError(t, s.AddItem(line(1, "10.00", 2)))
	require.NoError(t, s.AddItem(line(2, "5.50", 1)))
	require.NoError(t, s.Save(ctx))
	assert.Contains(t, p.data, StorageKey)

	restored := NewStore(WithPersister(p))
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, s.Lines()[0].ProductID, restored.Lines()[0].ProductID)
	assert.Equal(t, 2, restored.Count())
	assert.Equal(t, "25.5", restored.Total().String())
}

func TestStore_RestoreMissing(t *testing.T) {
	s := NewStore(WithPersister(newMemoryPersister()), WithLines(line(1, "1", 1)))
	require.NoError(t, s.Restore(context.Background()))
	assert.True(t, s.IsEmpty())
}

func TestStore_RestoreDropsInvalidLines(t *testing.T) {
	p := newMemoryPersister()
	p.data[StorageKey] = []byte(`[{"id":1,"price":"4","quantity":1},{"id":2,"price":"1","quantity":0},{"id":1,"price":"4","quantity":2}]`)

	s := NewStore(WithPersister(p))
	require.NoError(t, s.Restore(context.Background()))
	require.Equal(t, 1, s.Count())
	assert.Equal(t, 3, s.TotalQuantity())
}

func TestStore_PersisterErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("No persister", func(t *testing.T) {
		s := NewStore()
		assert.ErrorIs(t, s.Save(ctx), ErrNoPersister)
		assert.ErrorIs(t, s.Restore(ctx), ErrNoPersister)
		assert.ErrorIs(t, s.Discard(ctx), ErrNoPersister)
	})

	t.Run("Backend failure", func(t *testing.T) {
		boom := errors.New("disk full")
		p := newMemoryPersister()
		p.err = boom

		s := NewStore(WithPersister(p), WithLines(line(1, "1", 1)))
		assert.ErrorIs(t, s.Save(ctx), boom)
		assert.ErrorIs(t, s.Restore(ctx), boom)
		assert.Equal(t, 1, s.Count())
	})

	t.Run("Discard", func(t *testing.T) {
		p := newMemoryPersister()
		s := NewStore(WithPersister(p), WithLines(line(1, "1", 1)))
		require.NoError(t, s.Save(ctx))
		require.NoError(t, s.Discard(ctx))
		assert.NotContains(t, p.data, StorageKey)
		assert.Equal(t, 1, s.Count())
	})
}
