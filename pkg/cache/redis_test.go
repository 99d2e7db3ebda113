package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)

	return client, mr
}

func TestClient_SetGet(t *testing.T) {
	client, mr := setupClient(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "key", "value", time.Minute))

	got, err := client.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestClient_Delete(t *testing.T) {
	client, mr := setupClient(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, client.Delete(ctx, "key"))

	exists, err := client.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_DeletePattern(t *testing.T) {
	client, mr := setupClient(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "campaign:1", "a", time.Minute))
	require.NoError(t, client.Set(ctx, "campaign:2", "b", time.Minute))
	require.NoError(t, client.Set(ctx, "user:1", "c", time.Minute))

	require.NoError(t, client.DeletePattern(ctx, "campaign:*"))

	exists, err := client.Exists(ctx, "campaign:1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = client.Exists(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient("not-a-url")
	assert.Error(t, err)
}
