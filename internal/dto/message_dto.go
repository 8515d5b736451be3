package dto

import (
	"fmt"
	"time"
)

// CreateMessageRequest 创建消息请求
// owner 由认证信息决定，请求体里不接受
type CreateMessageRequest struct {
	Text   string `json:"text" binding:"required,max=250"`
	Parent *uint  `json:"parent"`
}

// UpdateMessageRequest 全量更新消息请求(PUT)
// parent 为空表示改为顶层消息
type UpdateMessageRequest struct {
	Text   string `json:"text" binding:"required,max=250"`
	Parent *uint  `json:"parent"`
}

// PatchMessageRequest 部分更新消息请求(PATCH)
type PatchMessageRequest struct {
	Text   *string `json:"text" binding:"omitempty,max=250"`
	Parent *uint   `json:"parent"`
}

// MessageFilters 消息列表过滤条件
type MessageFilters struct {
	// 按所有者用户名过滤
	User string `form:"user"`
	// 只看某条消息的直接回复
	Parent *uint `form:"parent"`
	// true只看顶层消息，false只看回复，其他值忽略
	Posts string `form:"posts"`
}

// OwnerRef 消息所有者引用
type OwnerRef struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// MessageResponse 消息响应
// favorite_count/favorited 是查询时计算的视角相关字段，不落库
type MessageResponse struct {
	ID            uint      `json:"id"`
	URL           string    `json:"url"`
	Text          string    `json:"text"`
	Created       time.Time `json:"created"`
	Owner         OwnerRef  `json:"owner"`
	Parent        *string   `json:"parent"`
	ParentID      *uint     `json:"parent_id"`
	Children      []string  `json:"children"`
	FavoriteCount int64     `json:"favorite_count"`
	Favorited     bool      `json:"favorited"`
}

// MessageURL 构造消息详情路径
func MessageURL(id uint) string {
	return fmt.Sprintf("/api/messages/%d", id)
}

// UserURL 构造用户详情路径
func UserURL(id uint) string {
	return fmt.Sprintf("/api/users/%d", id)
}
