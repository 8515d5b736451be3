package repository

import (
	"github.com/oxtna/message-board/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository 收藏数据访问层
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏Repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// GetOrCreate 幂等创建收藏
// 并发时靠(user_id, message_id)唯一索引仲裁，重复创建不报错也不产生重复行
func (r *FavoriteRepository) GetOrCreate(userID, messageID uint) error {
	favorite := models.Favorite{
		UserID:    userID,
		MessageID: messageID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
		DoNothing: true,
	}).Create(&favorite).Error
}

// Delete 删除收藏，不存在时为空操作
func (r *FavoriteRepository) Delete(userID, messageID uint) error {
	return r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Favorite{}).Error
}

// Exists 检查收藏是否存在
func (r *FavoriteRepository) Exists(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// CountByMessage 统计消息的收藏数
func (r *FavoriteRepository) CountByMessage(messageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	return count, err
}

// MessageIDsByUser 获取用户收藏的消息ID，按收藏时间倒序（不是消息创建时间）
func (r *FavoriteRepository) MessageIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("message_id", &ids).Error
	return ids, err
}

// MessageIDsGroupedByUser 一次查询取回所有用户的收藏消息ID，按收藏时间倒序
func (r *FavoriteRepository) MessageIDsGroupedByUser() (map[uint][]uint, error) {
	var rows []models.Favorite
	err := r.db.Model(&models.Favorite{}).
		Select("user_id, message_id").
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint][]uint)
	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.MessageID)
	}
	return result, nil
}
