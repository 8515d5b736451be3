package repository

import (
	"github.com/oxtna/message-board/internal/models"

	"gorm.io/gorm"
)

// AnnotatedMessage 消息查询投影
// favorite_count/favorited 由聚合查询计算，favorited 相对当前请求者
type AnnotatedMessage struct {
	models.Message
	OwnerUsername string `json:"owner_username"`
	FavoriteCount int64  `json:"favorite_count"`
	Favorited     bool   `json:"favorited"`
}

// MessageListOptions 消息列表过滤选项
type MessageListOptions struct {
	// 按所有者用户名过滤，空串表示不过滤
	Username string
	// 只看某条消息的直接回复
	ParentID *uint
	// true只看顶层消息，false只看回复，nil不过滤
	Posts *bool
}

// MessageRepository 消息数据访问层
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息Repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// annotated 构造带统计字段的基础查询
// 单条聚合SQL算出每行的favorite_count和favorited，避免逐行子查询
// viewerID为0表示匿名请求者，favorited恒为false
func (r *MessageRepository) annotated(viewerID uint) *gorm.DB {
	return r.db.Model(&models.Message{}).
		Select("messages.*, users.username AS owner_username, "+
			"COUNT(DISTINCT favorites.user_id) AS favorite_count, "+
			"MAX(CASE WHEN favorites.user_id = ? THEN 1 ELSE 0 END) AS favorited", viewerID).
		Joins("JOIN users ON users.id = messages.owner_id").
		Joins("LEFT JOIN favorites ON favorites.message_id = messages.id").
		Group("messages.id")
}

// List 获取消息列表，按创建时间倒序
func (r *MessageRepository) List(viewerID uint, opts MessageListOptions) ([]AnnotatedMessage, error) {
	query := r.annotated(viewerID)

	if opts.Username != "" {
		query = query.Where("users.username = ?", opts.Username)
	}
	if opts.ParentID != nil {
		query = query.Where("messages.parent_id = ?", *opts.ParentID)
	}
	if opts.Posts != nil {
		if *opts.Posts {
			query = query.Where("messages.parent_id IS NULL")
		} else {
			query = query.Where("messages.parent_id IS NOT NULL")
		}
	}

	var rows []AnnotatedMessage
	err := query.Order("messages.created_at DESC, messages.id DESC").Find(&rows).Error
	return rows, err
}

// GetAnnotated 获取单条消息及其统计字段
func (r *MessageRepository) GetAnnotated(id uint, viewerID uint) (*AnnotatedMessage, error) {
	var rows []AnnotatedMessage
	err := r.annotated(viewerID).Where("messages.id = ?", id).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// GetByID 根据ID获取消息
func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Exists 检查消息是否存在
func (r *MessageRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create 创建消息
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// Update 更新消息的可变字段(text/parent)
func (r *MessageRepository) Update(message *models.Message) error {
	return r.db.Model(message).Select("text", "parent_id").Updates(map[string]interface{}{
		"text":      message.Text,
		"parent_id": message.ParentID,
	}).Error
}

// Delete 删除消息，后代消息和相关收藏由外键级联删除
func (r *MessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}

// ChildrenIDs 批量获取一组消息的直接回复ID
// 一次查询取回整页的children，避免逐行查询
func (r *MessageRepository) ChildrenIDs(messageIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(messageIDs))
	if len(messageIDs) == 0 {
		return result, nil
	}

	type childRow struct {
		ID       uint
		ParentID uint
	}
	var rows []childRow
	err := r.db.Model(&models.Message{}).
		Select("id, parent_id").
		Where("parent_id IN ?", messageIDs).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ParentID] = append(result[row.ParentID], row.ID)
	}
	return result, nil
}

// IDsByOwner 获取用户的消息ID，按创建时间倒序
func (r *MessageRepository) IDsByOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Message{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Pluck("id", &ids).Error
	return ids, err
}

// IDsGroupedByOwner 一次查询取回所有用户的消息ID，按创建时间倒序
func (r *MessageRepository) IDsGroupedByOwner() (map[uint][]uint, error) {
	type ownerRow struct {
		ID      uint
		OwnerID uint
	}
	var rows []ownerRow
	err := r.db.Model(&models.Message{}).
		Select("id, owner_id").
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint][]uint)
	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], row.ID)
	}
	return result, nil
}
