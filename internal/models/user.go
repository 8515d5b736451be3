package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:40;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`

	// 关联
	// 级联约束声明在has-many一侧，GORM从这一侧生成外键DDL
	Messages  []Message  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAuthenticated 是否为已认证用户（nil表示匿名请求者）
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}
