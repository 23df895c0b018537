package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
)

func TestMemoryTokenStoreRevoke(t *testing.T) {
	store := NewMemoryTokenStore()

	assert.False(t, store.IsRevoked("abc"))

	require.NoError(t, store.Revoke("abc", time.Hour))
	assert.True(t, store.IsRevoked("abc"))
	assert.False(t, store.IsRevoked("other"))
}

func TestMemoryTokenStoreExpiredTTLIsNoop(t *testing.T) {
	store := NewMemoryTokenStore()

	require.NoError(t, store.Revoke("expired", 0))
	require.NoError(t, store.Revoke("negative", -time.Minute))

	assert.False(t, store.IsRevoked("expired"))
	assert.False(t, store.IsRevoked("negative"))
}

func TestMemoryTokenStoreEntryExpires(t *testing.T) {
	store := NewMemoryTokenStore()

	require.NoError(t, store.Revoke("short", 10*time.Millisecond))
	assert.True(t, store.IsRevoked("short"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, store.IsRevoked("short"))
}

func TestNewTokenStorePicksMemoryWithoutRedis(t *testing.T) {
	store := NewTokenStore(config.RedisConfig{Enabled: false})
	_, ok := store.(*MemoryTokenStore)
	assert.True(t, ok)
}
