package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/logging"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/prop"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true, Logger: logging.Discard()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSnapshot(t *testing.T, name string) *proof.Snapshot {
	t.Helper()
	p := proof.New(prop.Atom{Name: "B"})
	p.SetName(name)
	_, err := p.AddPremise(prop.Atom{Name: "A"}, "")
	require.NoError(t, err)
	snap, err := p.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()
	snap := sampleSnapshot(t, "round trip")

	require.NoError(t, s.Save(ctx, "one", snap))

	loaded, err := s.Load(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "round trip", loaded.Name)

	restored, err := proof.FromSnapshot(loaded)
	require.NoError(t, err)
	assert.Len(t, restored.Premises(), 1)
	assert.False(t, restored.IsComplete())
}

func TestSaveOverwrites(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "one", sampleSnapshot(t, "first")))
	require.NoError(t, s.Save(ctx, "one", sampleSnapshot(t, "second")))

	loaded, err := s.Load(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Name)
}

func TestLoadMissing(t *testing.T) {
	s := openInMemory(t)
	_, err := s.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsKeyOrder(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "b", sampleSnapshot(t, "beta")))
	require.NoError(t, s.Save(ctx, "a", sampleSnapshot(t, "alpha")))
	require.NoError(t, s.Save(ctx, "c", sampleSnapshot(t, "gamma")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "open", entries[0].Status)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
}

func TestListEmptyStore(t *testing.T) {
	s := openInMemory(t)
	entries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "one", sampleSnapshot(t, "doomed")))
	require.NoError(t, s.Delete(ctx, "one"))

	_, err := s.Load(ctx, "one")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "one"), ErrNotFound)
}

func TestCanceledContext(t *testing.T) {
	s := openInMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, "one", sampleSnapshot(t, "late")))
	_, err := s.Load(ctx, "one")
	assert.Error(t, err)
}

func TestNewID(t *testing.T) {
	first, second := NewID(), NewID()
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}

func TestPersistentStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "kept", sampleSnapshot(t, "durable")))
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "durable", loaded.Name)
}
