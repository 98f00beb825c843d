package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryregistry "github.com/call-audit-gateway/internal/adapters/registry/memory"
	memorystore "github.com/call-audit-gateway/internal/adapters/storage/memory"
	"github.com/call-audit-gateway/internal/core/services"
)

func TestOrphanSweeper_ReportsUnregisteredObjects(t *testing.T) {
	ctx := context.Background()
	registry := memoryregistry.NewMeetingRepository()
	store := memorystore.NewObjectStore()
	clock := services.NewFakeClock(time.Now())
	meetings := services.NewMeetingService(registry, clock)

	const bucket = "audio-uploads"
	require.NoError(t, store.Put(ctx, bucket, "audio/1-registered.mp3", []byte("a")))
	require.NoError(t, store.Put(ctx, bucket, "audio/2-orphan.mp3", []byte("b")))
	// Objects outside the upload folder are not swept.
	require.NoError(t, store.Put(ctx, bucket, "other/stray.bin", []byte("c")))

	_, err := meetings.Register(ctx, "audio/1-registered.mp3")
	require.NoError(t, err)

	sweeper := services.NewOrphanSweeper(registry, store, services.OrphanSweeperConfig{Bucket: bucket})
	orphans, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"audio/2-orphan.mp3"}, orphans)
}

func TestOrphanSweeper_MatchesOnBaseName(t *testing.T) {
	ctx := context.Background()
	registry := memoryregistry.NewMeetingRepository()
	store := memorystore.NewObjectStore()
	meetings := services.NewMeetingService(registry, services.NewFakeClock(time.Now()))

	const bucket = "audio-uploads"
	require.NoError(t, store.Put(ctx, bucket, "audio/1-call.mp3", []byte("a")))

	// The registry may hold the base name rather than the full key.
	_, err := meetings.Register(ctx, "1-call.mp3")
	require.NoError(t, err)

	sweeper := services.NewOrphanSweeper(registry, store, services.OrphanSweeperConfig{Bucket: bucket})
	orphans, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestOrphanSweeper_MatchesOriginalNameBehindTimestampPrefix(t *testing.T) {
	ctx := context.Background()
	registry := memoryregistry.NewMeetingRepository()
	store := memorystore.NewObjectStore()
	meetings := services.NewMeetingService(registry, services.NewFakeClock(time.Now()))

	const bucket = "audio-uploads"
	require.NoError(t, store.Put(ctx, bucket, "audio/1700000000000-advisor_call.mp3", []byte("a")))
	// A key whose prefix is not a timestamp must not match by stripping.
	require.NoError(t, store.Put(ctx, bucket, "audio/x-advisor_call.mp3", []byte("b")))

	// Registered under the original base name, without the issuance prefix.
	_, err := meetings.Register(ctx, "advisor_call.mp3")
	require.NoError(t, err)

	sweeper := services.NewOrphanSweeper(registry, store, services.OrphanSweeperConfig{Bucket: bucket})
	orphans, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"audio/x-advisor_call.mp3"}, orphans)
}

func TestOrphanSweeper_MissingBucketIsConfigurationError(t *testing.T) {
	sweeper := services.NewOrphanSweeper(memoryregistry.NewMeetingRepository(), memorystore.NewObjectStore(), services.OrphanSweeperConfig{})

	_, err := sweeper.Sweep(context.Background())

	var cfgErr *services.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "AUDIO_UPLOAD_BUCKET", cfgErr.Key)
}
