// Package testutil 提供测试用的数据库和数据构造辅助。
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/oxtna/message-board/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// NewTestDB 创建每个测试独立的内存数据库
// 开启外键约束，级联删除行为和生产环境一致
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("testdb_%d", atomic.AddInt64(&dbCounter, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "打开测试数据库失败")

	require.NoError(t, models.AutoMigrate(db), "迁移测试数据库失败")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateUser 创建测试用户
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$unusable.test.hash.not.a.real.password.hash...",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "创建测试用户失败")
	return user
}

// CreateMessage 创建测试消息
func CreateMessage(t *testing.T, db *gorm.DB, owner *models.User, text string, parentID *uint) *models.Message {
	t.Helper()

	message := &models.Message{
		Text:     text,
		ParentID: parentID,
		OwnerID:  owner.ID,
	}
	require.NoError(t, db.Create(message).Error, "创建测试消息失败")
	return message
}

// CreateFavorite 创建测试收藏
func CreateFavorite(t *testing.T, db *gorm.DB, user *models.User, message *models.Message) *models.Favorite {
	t.Helper()

	favorite := &models.Favorite{
		UserID:    user.ID,
		MessageID: message.ID,
	}
	require.NoError(t, db.Create(favorite).Error, "创建测试收藏失败")
	return favorite
}
