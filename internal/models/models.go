package models

import (
	"github.com/oxtna/message-board/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化数据库
func InitDB(cfg *config.Config) error {
	var err error

	// 配置GORM
	DB, err = gorm.Open(sqlite.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // 使用静默模式
	})
	if err != nil {
		return err
	}

	return AutoMigrate(DB)
}

// AutoMigrate 自动迁移数据库表
// 外键级联和(user_id, message_id)唯一索引都在表结构里，不靠应用层保证
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Message{},
		&Favorite{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
