package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"), maxEntries)
}

func TestStore_AddAndRecent(t *testing.T) {
	store := newTestStore(t, 100)

	first := NewJob("a sunset", "flux-pro", "16:9")
	first.ImageURLs = []string{"https://cdn.pixeldojo.ai/img/1.png"}
	first.CreditsUsed = 1.0
	require.NoError(t, store.Add(first))

	second := NewJob("a cat", "flux-dev", "1:1")
	require.NoError(t, store.Add(second))

	jobs, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "a cat", jobs[0].Prompt, "newest first")
	assert.Equal(t, "a sunset", jobs[1].Prompt)
	assert.Equal(t, first.ID, jobs[1].ID)
	assert.Equal(t, []string{"https://cdn.pixeldojo.ai/img/1.png"}, jobs[1].ImageURLs)
}

func TestStore_RecentLimit(t *testing.T) {
	store := newTestStore(t, 100)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Add(NewJob("prompt", "flux-pro", "1:1")))
	}

	jobs, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
}

func TestStore_TrimOldest(t *testing.T) {
	store := newTestStore(t, 2)

	require.NoError(t, store.Add(NewJob("one", "flux-pro", "1:1")))
	require.NoError(t, store.Add(NewJob("two", "flux-pro", "1:1")))
	require.NoError(t, store.Add(NewJob("three", "flux-pro", "1:1")))

	jobs, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "three", jobs[0].Prompt)
	assert.Equal(t, "two", jobs[1].Prompt)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	store := NewStore(path, 100)
	require.NoError(t, store.Add(NewJob("hello", "flux-pro", "1:1")))

	reopened := NewStore(path, 100)
	jobs, err := reopened.Recent(0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "hello", jobs[0].Prompt)
}

func TestStore_EmptyFileMissing(t *testing.T) {
	store := newTestStore(t, 100)

	jobs, err := store.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, 100)

	require.NoError(t, store.Add(NewJob("hello", "flux-pro", "1:1")))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear()) // idempotent

	jobs, err := store.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestStore_Disabled(t *testing.T) {
	store := newTestStore(t, 0)

	err := store.Add(NewJob("hello", "flux-pro", "1:1"))
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestStore_FailedJobRecordsError(t *testing.T) {
	store := newTestStore(t, 100)

	job := NewJob("hello", "flux-pro", "1:1")
	job.Error = "rate limit exceeded"
	require.NoError(t, store.Add(job))

	jobs, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "rate limit exceeded", jobs[0].Error)
	assert.Empty(t, jobs[0].ImageURLs)
}
