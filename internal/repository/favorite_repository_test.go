package repository

import (
	"testing"

	"github.com/oxtna/message-board/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFavoriteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	message := testutil.CreateMessage(t, db, alice, "hello", nil)

	// 两次收藏都成功，且只有一条记录
	require.NoError(t, repo.GetOrCreate(alice.ID, message.ID))
	require.NoError(t, repo.GetOrCreate(alice.ID, message.ID))

	count, err := repo.CountByMessage(message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFavoriteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	message := testutil.CreateMessage(t, db, alice, "hello", nil)

	// 从未收藏过，取消收藏也成功
	require.NoError(t, repo.Delete(alice.ID, message.ID))

	count, err := repo.CountByMessage(message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 收藏后取消，记录清空
	require.NoError(t, repo.GetOrCreate(alice.ID, message.ID))
	require.NoError(t, repo.Delete(alice.ID, message.ID))

	count, err = repo.CountByMessage(message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCountByMessageDistinctUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFavoriteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	message := testutil.CreateMessage(t, db, alice, "hello", nil)

	require.NoError(t, repo.GetOrCreate(alice.ID, message.ID))
	require.NoError(t, repo.GetOrCreate(bob.ID, message.ID))
	require.NoError(t, repo.GetOrCreate(bob.ID, message.ID))

	count, err := repo.CountByMessage(message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMessageIDsByUserOrderedByFavoriteTime(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFavoriteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	// 创建顺序: old, new。收藏顺序相反: 先收藏new再收藏old
	old := testutil.CreateMessage(t, db, alice, "old message", nil)
	newer := testutil.CreateMessage(t, db, alice, "new message", nil)

	testutil.CreateFavorite(t, db, bob, newer)
	testutil.CreateFavorite(t, db, bob, old)

	// 按收藏时间倒序，不是消息创建时间
	ids, err := repo.MessageIDsByUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, old.ID, ids[0])
	assert.Equal(t, newer.ID, ids[1])
}

func TestExists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFavoriteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	message := testutil.CreateMessage(t, db, alice, "hello", nil)

	exists, err := repo.Exists(alice.ID, message.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.GetOrCreate(alice.ID, message.ID))

	exists, err = repo.Exists(alice.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
