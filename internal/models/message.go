package models

import (
	"time"
)

// MaxTextLength 消息文本最大长度
const MaxTextLength = 250

// Message 消息模型
// parent 自引用外键构成回复树，删除父消息级联删除所有后代
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"size:250;not null" json:"text"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	// 自引用外键的级联约束声明在has-many一侧，owner外键的约束在User.Messages上
	Parent   *Message  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Message `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// IsPost 是否为顶层消息（无父消息）
func (m *Message) IsPost() bool {
	return m.ParentID == nil
}
