package service

import (
	"testing"

	"github.com/oxtna/message-board/internal/dto"
	"github.com/oxtna/message-board/internal/repository"
	"github.com/oxtna/message-board/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewMessageRepository(db),
		repository.NewFavoriteRepository(db),
	)
}

func TestUserGetProjections(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	// alice的消息，创建顺序 m1, m2
	m1 := testutil.CreateMessage(t, db, alice, "first", nil)
	m2 := testutil.CreateMessage(t, db, alice, "second", nil)
	b1 := testutil.CreateMessage(t, db, bob, "bobs", nil)

	// alice先收藏b1再收藏m1
	testutil.CreateFavorite(t, db, alice, b1)
	testutil.CreateFavorite(t, db, alice, m1)

	resp, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	// 消息按创建时间倒序
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, dto.MessageURL(m2.ID), resp.Messages[0])
	assert.Equal(t, dto.MessageURL(m1.ID), resp.Messages[1])

	// 收藏按收藏时间倒序，不是消息创建时间
	require.Len(t, resp.Favorites, 2)
	assert.Equal(t, dto.MessageURL(m1.ID), resp.Favorites[0])
	assert.Equal(t, dto.MessageURL(b1.ID), resp.Favorites[1])
}

func TestUserGetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)

	_, err := svc.Get(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserListStableOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateMessage(t, db, bob, "hello", nil)

	users, err := svc.List()
	require.NoError(t, err)
	require.Len(t, users, 2)

	// 按ID排序
	assert.Equal(t, alice.ID, users[0].ID)
	assert.Equal(t, bob.ID, users[1].ID)

	// 投影字段总是存在，没有消息的用户为空切片
	assert.Empty(t, users[0].Messages)
	assert.Len(t, users[1].Messages, 1)
}
