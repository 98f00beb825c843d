package file_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/call-audit-gateway/internal/adapters/registry/file"
	"github.com/call-audit-gateway/internal/core/domain"
)

func newRecord(id, name string) *domain.MeetingRecord {
	return &domain.MeetingRecord{
		ID:             id,
		SourceFileName: name,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
		Status:         domain.StatusCompleted,
	}
}

func TestFileRegistry_MissingFileReadsAsEmpty(t *testing.T) {
	repo := file.NewMeetingRepository(filepath.Join(t.TempDir(), "meetings.json"))

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileRegistry_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetings.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o644))

	repo := file.NewMeetingRepository(path)
	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileRegistry_InsertPersistsAndOrdersMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "meetings.json")
	repo := file.NewMeetingRepository(path)

	require.NoError(t, repo.Insert(ctx, newRecord("a", "first.mp3")))
	require.NoError(t, repo.Insert(ctx, newRecord("b", "second.mp3")))

	// A fresh repository over the same file sees the persisted state.
	reopened := file.NewMeetingRepository(path)
	records, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestFileRegistry_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := file.NewMeetingRepository(filepath.Join(t.TempDir(), "meetings.json"))

	require.NoError(t, repo.Insert(ctx, newRecord("a", "call.mp3")))

	found, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "call.mp3", found.SourceFileName)

	missing, err := repo.FindByID(ctx, "z")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileRegistry_ConcurrentInsertsLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := file.NewMeetingRepository(filepath.Join(t.TempDir(), "meetings.json"))

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Insert(ctx, newRecord(fmt.Sprintf("id-%d", i), fmt.Sprintf("call-%d.mp3", i)))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "insert %d", i)
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, n)
}
