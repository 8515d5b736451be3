package models

import (
	"time"
)

// Favorite 收藏模型
// (user_id, message_id) 唯一，同一用户对同一消息至多一条记录
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_message;not null" json:"user_id"`
	MessageID uint      `gorm:"uniqueIndex:idx_favorites_user_message;not null" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	// user外键的级联约束在User.Favorites上；message侧没有反向has-many，约束声明在这里
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"message,omitempty"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
