package db_test

import (
	"context"
	"encoding/json"
	"testing"

	"eventize/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// A GeoRedisClient against a live Redis passes the same cases.
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")

			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)
		})
	}
}

func TestMockRedisClient_GetMissingKey(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	_, err := client.Get("missing")

	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestMockRedisClient_GetLocationsWithinRadius(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	// Praça da Sé, Avenida Paulista (~2.5 km away) and Campinas (~84 km away).
	require.NoError(t, client.AddLocationWithJSON(ctx, "events", "paulista", -23.5614, -46.6559, map[string]string{"id": "paulista"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "events", "se", -23.5505, -46.6333, map[string]string{"id": "se"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "events", "campinas", -22.9099, -47.0626, map[string]string{"id": "campinas"}))

	results, err := client.GetLocationsWithinRadius("events", -23.5505, -46.6333, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var ids []string
	for _, raw := range results {
		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		ids = append(ids, payload["id"])
	}
	assert.Equal(t, []string{"se", "paulista"}, ids)

	none, err := client.GetLocationsWithinRadius("unknown", 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMockRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("events_v1:b", "2"))
	require.NoError(t, client.Set("events_v1:a", "1"))
	require.NoError(t, client.Set("other", "3"))

	keys, err := client.Keys("events_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"events_v1:a", "events_v1:b"}, keys)

	require.NoError(t, client.Del("events_v1:a"))
	keys, err = client.Keys("events_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"events_v1:b"}, keys)
}

func TestMockRedisClient_DelKeepsGeoMemberUntilRemoved(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := client.GetContext()
	require.NoError(t, client.AddLocationWithJSON(ctx, "geo", "member:a", 1, 1, map[string]string{"id": "a"}))

	require.NoError(t, client.Del("member:a"))
	results, err := client.GetLocationsWithinRadius("geo", 1, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The geo set still indexes the member, so restoring the value makes it visible again.
	require.NoError(t, client.Set("member:a", `{"id":"a"}`))
	results, err = client.GetLocationsWithinRadius("geo", 1, 1, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	require.NoError(t, client.DelGeoMember("geo", "member:a"))
	results, err = client.GetLocationsWithinRadius("geo", 1, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	assert.NoError(t, client.Ping())
}
