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

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewFavoriteRepository(db),
	)
}

func TestCreateForcesOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")

	resp, err := svc.Create(alice, &dto.CreateMessageRequest{Text: "hello"})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, resp.Owner.ID)
	assert.Equal(t, "alice", resp.Owner.Username)
	assert.Equal(t, "hello", resp.Text)
	assert.Nil(t, resp.ParentID)
	assert.Equal(t, int64(0), resp.FavoriteCount)
	assert.False(t, resp.Favorited)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")

	missing := uint(99999)
	_, err := svc.Create(alice, &dto.CreateMessageRequest{Text: "orphan", Parent: &missing})
	require.Error(t, err)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "parent")

	// 验证失败不产生任何写入
	messages, listErr := svc.List(nil, &dto.MessageFilters{})
	require.NoError(t, listErr)
	assert.Empty(t, messages)
}

func TestThreadScenario(t *testing.T) {
	// 规约场景：A发hello，B回复reply，parent过滤和posts过滤各自精确
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	m1, err := svc.Create(alice, &dto.CreateMessageRequest{Text: "hello"})
	require.NoError(t, err)
	m2, err := svc.Create(bob, &dto.CreateMessageRequest{Text: "reply", Parent: &m1.ID})
	require.NoError(t, err)

	replies, err := svc.List(nil, &dto.MessageFilters{Parent: &m1.ID})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, m2.ID, replies[0].ID)

	posts, err := svc.List(nil, &dto.MessageFilters{Posts: "true"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, m1.ID, posts[0].ID)
	assert.Contains(t, posts[0].Children, dto.MessageURL(m2.ID))

	// posts参数不区分大小写
	upper, err := svc.List(nil, &dto.MessageFilters{Posts: "True"})
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, m1.ID, upper[0].ID)

	noPosts, err := svc.List(nil, &dto.MessageFilters{Posts: "FALSE"})
	require.NoError(t, err)
	require.Len(t, noPosts, 1)
	assert.Equal(t, m2.ID, noPosts[0].ID)

	// posts参数的无效值被忽略
	all, err := svc.List(nil, &dto.MessageFilters{Posts: "banana"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateOwnerOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	message := testutil.CreateMessage(t, db, alice, "original", nil)

	// 非所有者被拒绝，403而不是404
	_, err := svc.Update(bob, message.ID, &dto.UpdateMessageRequest{Text: "hacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	// 匿名也被拒绝
	_, err = svc.Update(nil, message.ID, &dto.UpdateMessageRequest{Text: "hacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	// 所有者成功
	resp, err := svc.Update(alice, message.ID, &dto.UpdateMessageRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Text)

	// 不存在的消息是404
	_, err = svc.Update(alice, 99999, &dto.UpdateMessageRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchPartial(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	top := testutil.CreateMessage(t, db, alice, "top", nil)
	message := testutil.CreateMessage(t, db, alice, "original", nil)

	// 只改parent，text保持不变
	resp, err := svc.Patch(alice, message.ID, &dto.PatchMessageRequest{Parent: &top.ID})
	require.NoError(t, err)
	assert.Equal(t, "original", resp.Text)
	require.NotNil(t, resp.ParentID)
	assert.Equal(t, top.ID, *resp.ParentID)

	// 空text拒绝
	empty := ""
	_, err = svc.Patch(alice, message.ID, &dto.PatchMessageRequest{Text: &empty})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "text")
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	message := testutil.CreateMessage(t, db, alice, "to delete", nil)

	assert.ErrorIs(t, svc.Delete(bob, message.ID), ErrForbidden)
	require.NoError(t, svc.Delete(alice, message.ID))
	assert.ErrorIs(t, svc.Delete(alice, message.ID), ErrNotFound)
}

func TestFavoriteLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	message := testutil.CreateMessage(t, db, alice, "hello", nil)

	// 不存在的消息不能收藏
	assert.ErrorIs(t, svc.Favorite(bob, 99999), ErrNotFound)

	// 重复收藏幂等
	require.NoError(t, svc.Favorite(bob, message.ID))
	require.NoError(t, svc.Favorite(bob, message.ID))

	resp, err := svc.Get(bob, message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.FavoriteCount)
	assert.True(t, resp.Favorited)

	// 其他视角看到计数但favorited为false
	resp, err = svc.Get(alice, message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.FavoriteCount)
	assert.False(t, resp.Favorited)

	// 匿名视角favorited为false
	resp, err = svc.Get(nil, message.ID)
	require.NoError(t, err)
	assert.False(t, resp.Favorited)

	// 取消收藏，再次取消也成功
	require.NoError(t, svc.Unfavorite(bob, message.ID))
	require.NoError(t, svc.Unfavorite(bob, message.ID))

	resp, err = svc.Get(bob, message.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.FavoriteCount)
	assert.False(t, resp.Favorited)
}

func TestListFilterByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newMessageService(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateMessage(t, db, alice, "a1", nil)
	testutil.CreateMessage(t, db, alice, "a2", nil)
	testutil.CreateMessage(t, db, bob, "b1", nil)

	rows, err := svc.List(nil, &dto.MessageFilters{User: "alice"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "alice", row.Owner.Username)
	}
}
