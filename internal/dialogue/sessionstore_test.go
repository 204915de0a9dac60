package dialogue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxstatmose/edu-practice-parser/internal/dialogue"
	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

func redisSessions(t *testing.T) (*dialogue.RedisSessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return dialogue.NewRedisSessions(rdb, time.Hour), mr
}

func TestRedisSessions_RoundTrip(t *testing.T) {
	store, mr := redisSessions(t)
	ctx := context.Background()

	sess := dialogue.NewSession(5, 9)
	sess.State = dialogue.StateFilters
	sess.Query = "Go"
	sess.Count = 3
	sess.Filters.Employment = search.Some("Стажировка")
	sess.LastResults = nil
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists("session:5"))

	got, err := store.Load(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, dialogue.StateFilters, got.State)
	assert.Equal(t, "Go", got.Query)
	assert.Equal(t, 3, got.Count)
	assert.False(t, got.Filters.Salary.IsSet(), "unset filter stays unset")
	emp, ok := got.Filters.Employment.Get()
	assert.True(t, ok)
	assert.Equal(t, "Стажировка", emp)
}

func TestRedisSessions_MissingAndExpired(t *testing.T) {
	store, mr := redisSessions(t)
	ctx := context.Background()

	got, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, dialogue.NewSession(1, 1)))
	mr.FastForward(2 * time.Hour)

	got, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessions_Delete(t *testing.T) {
	store, _ := redisSessions(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, dialogue.NewSession(1, 1)))
	require.NoError(t, store.Delete(ctx, 1))

	got, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessions_CorruptState(t *testing.T) {
	store, mr := redisSessions(t)
	require.NoError(t, mr.Set("session:1", `{"user_id":1,"state":"LOST"}`))

	_, err := store.Load(context.Background(), 1)
	assert.Error(t, err)
}

func TestMemorySessions(t *testing.T) {
	store := dialogue.NewMemorySessions()
	ctx := context.Background()

	got, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := dialogue.NewSession(1, 2)
	sess.Query = "Go"
	require.NoError(t, store.Save(ctx, sess))

	sess.Query = "changed after save"
	got, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Query)

	require.NoError(t, store.Delete(ctx, 1))
	got, _ = store.Load(ctx, 1)
	assert.Nil(t, got)
}
