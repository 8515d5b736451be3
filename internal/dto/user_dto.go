package dto

// UserResponse 用户响应
// messages 按消息创建时间倒序，favorites 按收藏时间倒序
type UserResponse struct {
	ID        uint     `json:"id"`
	URL       string   `json:"url"`
	Username  string   `json:"username"`
	Messages  []string `json:"messages"`
	Favorites []string `json:"favorites"`
}
