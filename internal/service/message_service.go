package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oxtna/message-board/internal/dto"
	"github.com/oxtna/message-board/internal/models"
	"github.com/oxtna/message-board/internal/permission"
	"github.com/oxtna/message-board/internal/repository"

	"gorm.io/gorm"
)

// MessageService 消息服务
type MessageService struct {
	messageRepo  *repository.MessageRepository
	favoriteRepo *repository.FavoriteRepository
}

// NewMessageService 创建消息服务
func NewMessageService(messageRepo *repository.MessageRepository, favoriteRepo *repository.FavoriteRepository) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		favoriteRepo: favoriteRepo,
	}
}

// List 获取消息列表
// viewer为nil表示匿名请求者，favorited恒为false
func (s *MessageService) List(viewer *models.User, filters *dto.MessageFilters) ([]dto.MessageResponse, error) {
	opts := repository.MessageListOptions{
		Username: filters.User,
		ParentID: filters.Parent,
	}
	// posts参数不区分大小写，只认true/false，其他值忽略
	switch strings.ToLower(filters.Posts) {
	case "true":
		t := true
		opts.Posts = &t
	case "false":
		f := false
		opts.Posts = &f
	}

	rows, err := s.messageRepo.List(viewerID(viewer), opts)
	if err != nil {
		return nil, fmt.Errorf("查询消息列表失败: %w", err)
	}

	return s.toResponses(rows)
}

// Get 获取单条消息
func (s *MessageService) Get(viewer *models.User, id uint) (*dto.MessageResponse, error) {
	row, err := s.messageRepo.GetAnnotated(id, viewerID(viewer))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询消息失败: %w", err)
	}

	responses, err := s.toResponses([]repository.AnnotatedMessage{*row})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Create 创建消息
// owner强制为当前请求者，请求体里的任何owner值都不生效
func (s *MessageService) Create(actor *models.User, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if err := s.validateParent(req.Parent); err != nil {
		return nil, err
	}

	message := &models.Message{
		Text:     req.Text,
		ParentID: req.Parent,
		OwnerID:  actor.ID,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("创建消息失败: %w", err)
	}

	return s.Get(actor, message.ID)
}

// Update 全量更新消息(text/parent)，只允许所有者
func (s *MessageService) Update(actor *models.User, id uint, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	message, err := s.loadForWrite(actor, id, permission.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.validateParent(req.Parent); err != nil {
		return nil, err
	}

	message.Text = req.Text
	message.ParentID = req.Parent
	if err := s.messageRepo.Update(message); err != nil {
		return nil, fmt.Errorf("更新消息失败: %w", err)
	}

	return s.Get(actor, id)
}

// Patch 部分更新消息，只允许所有者
func (s *MessageService) Patch(actor *models.User, id uint, req *dto.PatchMessageRequest) (*dto.MessageResponse, error) {
	message, err := s.loadForWrite(actor, id, permission.ActionPartialUpdate)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if *req.Text == "" {
			return nil, FieldErrors{"text": "该字段不能为空"}
		}
		message.Text = *req.Text
	}
	if req.Parent != nil {
		if err := s.validateParent(req.Parent); err != nil {
			return nil, err
		}
		message.ParentID = req.Parent
	}

	if err := s.messageRepo.Update(message); err != nil {
		return nil, fmt.Errorf("更新消息失败: %w", err)
	}

	return s.Get(actor, id)
}

// Delete 删除消息，只允许所有者，后代消息级联删除
func (s *MessageService) Delete(actor *models.User, id uint) error {
	if _, err := s.loadForWrite(actor, id, permission.ActionDestroy); err != nil {
		return err
	}

	if err := s.messageRepo.Delete(id); err != nil {
		return fmt.Errorf("删除消息失败: %w", err)
	}
	return nil
}

// Favorite 幂等收藏消息，已收藏时为空操作
func (s *MessageService) Favorite(actor *models.User, messageID uint) error {
	if err := s.requireMessage(messageID); err != nil {
		return err
	}

	if err := s.favoriteRepo.GetOrCreate(actor.ID, messageID); err != nil {
		return fmt.Errorf("创建收藏失败: %w", err)
	}
	return nil
}

// Unfavorite 幂等取消收藏，未收藏时为空操作
func (s *MessageService) Unfavorite(actor *models.User, messageID uint) error {
	if err := s.requireMessage(messageID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Delete(actor.ID, messageID); err != nil {
		return fmt.Errorf("删除收藏失败: %w", err)
	}
	return nil
}

// loadForWrite 加载消息并做对象级权限检查
// 对未授权的请求者不隐藏消息存在性：非所有者得到403而不是404
func (s *MessageService) loadForWrite(actor *models.User, id uint, action permission.Action) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询消息失败: %w", err)
	}

	if permission.CheckObject(action, actor, message) != permission.Allow {
		return nil, ErrForbidden
	}
	return message, nil
}

// requireMessage 检查目标消息存在
func (s *MessageService) requireMessage(id uint) error {
	exists, err := s.messageRepo.Exists(id)
	if err != nil {
		return fmt.Errorf("查询消息失败: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

// validateParent 验证parent引用的消息存在
func (s *MessageService) validateParent(parent *uint) error {
	if parent == nil {
		return nil
	}

	exists, err := s.messageRepo.Exists(*parent)
	if err != nil {
		return fmt.Errorf("查询父消息失败: %w", err)
	}
	if !exists {
		return FieldErrors{"parent": "父消息不存在"}
	}
	return nil
}

// toResponses 消息投影转响应，children用一次批量查询取回
func (s *MessageService) toResponses(rows []repository.AnnotatedMessage) ([]dto.MessageResponse, error) {
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	children, err := s.messageRepo.ChildrenIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("查询回复失败: %w", err)
	}

	responses := make([]dto.MessageResponse, len(rows))
	for i, row := range rows {
		childURLs := make([]string, 0, len(children[row.ID]))
		for _, childID := range children[row.ID] {
			childURLs = append(childURLs, dto.MessageURL(childID))
		}

		var parentURL *string
		if row.ParentID != nil {
			url := dto.MessageURL(*row.ParentID)
			parentURL = &url
		}

		responses[i] = dto.MessageResponse{
			ID:      row.ID,
			URL:     dto.MessageURL(row.ID),
			Text:    row.Text,
			Created: row.CreatedAt,
			Owner: dto.OwnerRef{
				ID:       row.OwnerID,
				URL:      dto.UserURL(row.OwnerID),
				Username: row.OwnerUsername,
			},
			Parent:        parentURL,
			ParentID:      row.ParentID,
			Children:      childURLs,
			FavoriteCount: row.FavoriteCount,
			Favorited:     row.Favorited,
		}
	}
	return responses, nil
}

// viewerID 请求者ID，匿名为0
func viewerID(viewer *models.User) uint {
	if viewer == nil {
		return 0
	}
	return viewer.ID
}
