package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsStore(t *testing.T) *SettingsStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSettingsStore(client)
}

func TestSettingsStore_LoadMissingClient(t *testing.T) {
	store := newSettingsStore(t)

	fields, err := store.Load(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Empty(t, fields)
}

func TestSettingsStore_SaveAndLoad(t *testing.T) {
	store := newSettingsStore(t)
	ctx := context.Background()

	err := store.Save(ctx, "client-1", map[string]interface{}{
		"enabled":  "true",
		"duration": 5000,
		"volume":   0.5,
	})
	require.NoError(t, err)

	fields, err := store.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "true", fields["enabled"])
	assert.Equal(t, "5000", fields["duration"])
	assert.Equal(t, "0.5", fields["volume"])
}

func TestSettingsStore_KeysAreScopedPerClient(t *testing.T) {
	store := newSettingsStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "client-1", map[string]interface{}{"enabled": "false"}))

	fields, err := store.Load(ctx, "client-2")
	assert.NoError(t, err)
	assert.Empty(t, fields)
}
