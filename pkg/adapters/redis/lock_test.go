package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/nocap-placify/placify/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_MutualExclusion(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:s1"))

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "s1", time.Minute)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:s1"))

	unlock2, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_StaleUnlockKeepsNewHolder(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "s1", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	_, err = locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("test:lock:s1"), "expired holder must not release the new lock")
}
