package service

import (
	"errors"
	"fmt"

	"github.com/oxtna/message-board/internal/dto"
	"github.com/oxtna/message-board/internal/models"
	"github.com/oxtna/message-board/internal/repository"

	"gorm.io/gorm"
)

// UserService 用户查询服务
type UserService struct {
	userRepo     *repository.UserRepository
	messageRepo  *repository.MessageRepository
	favoriteRepo *repository.FavoriteRepository
}

// NewUserService 创建用户查询服务
func NewUserService(userRepo *repository.UserRepository, messageRepo *repository.MessageRepository, favoriteRepo *repository.FavoriteRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		messageRepo:  messageRepo,
		favoriteRepo: favoriteRepo,
	}
}

// List 获取用户列表
// messages/favorites投影用两次分组查询取回，不逐用户查询
func (s *UserService) List() ([]dto.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}

	messagesByOwner, err := s.messageRepo.IDsGroupedByOwner()
	if err != nil {
		return nil, fmt.Errorf("查询用户消息失败: %w", err)
	}
	favoritesByUser, err := s.favoriteRepo.MessageIDsGroupedByUser()
	if err != nil {
		return nil, fmt.Errorf("查询用户收藏失败: %w", err)
	}

	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = userResponse(&user, messagesByOwner[user.ID], favoritesByUser[user.ID])
	}
	return responses, nil
}

// Get 获取单个用户
func (s *UserService) Get(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	messageIDs, err := s.messageRepo.IDsByOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("查询用户消息失败: %w", err)
	}
	favoriteIDs, err := s.favoriteRepo.MessageIDsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("查询用户收藏失败: %w", err)
	}

	response := userResponse(user, messageIDs, favoriteIDs)
	return &response, nil
}

// userResponse 用户模型转响应
func userResponse(user *models.User, messageIDs, favoriteIDs []uint) dto.UserResponse {
	messages := make([]string, len(messageIDs))
	for i, id := range messageIDs {
		messages[i] = dto.MessageURL(id)
	}
	favorites := make([]string, len(favoriteIDs))
	for i, id := range favoriteIDs {
		favorites[i] = dto.MessageURL(id)
	}

	return dto.UserResponse{
		ID:        user.ID,
		URL:       dto.UserURL(user.ID),
		Username:  user.Username,
		Messages:  messages,
		Favorites: favorites,
	}
}
