package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/logger"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

var (
	assistido  = domain.UserKey{Role: domain.RoleAssistido, UserID: 1}
	voluntario = domain.UserKey{Role: domain.RoleVoluntario, UserID: 1}
)

func setupRedisStorage(t *testing.T) (*miniredis.Miniredis, *RedisStorage) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStorage(client, "portal", logger.NewZapLogger(zap.NewNop()))
}

func exerciseStorage(t *testing.T, storage out.StoragePort) {
	ctx := context.Background()

	_, ok, err := storage.GetItem(ctx, assistido, domain.StorageKeyUserData)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem(ctx, assistido, domain.StorageKeyUserData, `{"nome":"Maria"}`))
	require.NoError(t, storage.SetItem(ctx, assistido, domain.StorageKeyAuthToken, "token"))
	require.NoError(t, storage.SetItem(ctx, voluntario, domain.StorageKeyAuthToken, "other"))

	value, ok, err := storage.GetItem(ctx, assistido, domain.StorageKeyUserData)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"nome":"Maria"}`, value)

	// Same id under another role is another user
	value, ok, err = storage.GetItem(ctx, voluntario, domain.StorageKeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "other", value)

	require.NoError(t, storage.RemoveItems(ctx, assistido, domain.StorageKeyUserData, domain.StorageKeyAuthToken, domain.StorageKeyProfileData))
	_, ok, err = storage.GetItem(ctx, assistido, domain.StorageKeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = storage.GetItem(ctx, voluntario, domain.StorageKeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, storage.RemoveItems(ctx, assistido))
}

func TestRedisStorage(t *testing.T) {
	mr, storage := setupRedisStorage(t)
	exerciseStorage(t, storage)

	assert.True(t, mr.Exists("portal:voluntario:1:authToken"))
	assert.False(t, mr.Exists("portal:assistido:1:userData"))
}

func TestRedisStorage_KeyLayout(t *testing.T) {
	mr, storage := setupRedisStorage(t)

	require.NoError(t, storage.SetItem(context.Background(), assistido, domain.StorageKeyProfileData, "{}"))

	value, err := mr.Get("portal:assistido:1:profileData")
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
	require.NoError(t, storage.Ping(context.Background()))
}

func TestRedisStorage_Unavailable(t *testing.T) {
	mr, storage := setupRedisStorage(t)
	mr.Close()

	_, _, err := storage.GetItem(context.Background(), assistido, domain.StorageKeyUserData)
	assert.Error(t, err)
	assert.Error(t, storage.SetItem(context.Background(), assistido, domain.StorageKeyUserData, "{}"))
}

func TestMemoryStorage(t *testing.T) {
	storage, err := NewMemoryStorage(10)
	require.NoError(t, err)
	exerciseStorage(t, storage)
}

func TestMemoryStorage_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	storage, err := NewMemoryStorage(2)
	require.NoError(t, err)

	require.NoError(t, storage.SetItem(ctx, assistido, "a", "1"))
	require.NoError(t, storage.SetItem(ctx, assistido, "b", "2"))
	require.NoError(t, storage.SetItem(ctx, assistido, "c", "3"))

	_, ok, _ := storage.GetItem(ctx, assistido, "a")
	assert.False(t, ok)
	_, ok, _ = storage.GetItem(ctx, assistido, "c")
	assert.True(t, ok)
}

func TestNewMemoryStorage_InvalidSize(t *testing.T) {
	_, err := NewMemoryStorage(0)
	assert.Error(t, err)
}
