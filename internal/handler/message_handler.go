package handler

import (
	"errors"
	"strconv"

	"github.com/oxtna/message-board/internal/dto"
	"github.com/oxtna/message-board/internal/middleware"
	"github.com/oxtna/message-board/internal/service"
	"github.com/oxtna/message-board/internal/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息处理器
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// List 获取消息列表
// @Summary 获取消息列表
// @Tags 消息
// @Produce json
// @Param user query string false "按所有者用户名过滤"
// @Param parent query int false "只看某条消息的直接回复"
// @Param posts query string false "true只看顶层消息，false只看回复"
// @Success 200 {object} utils.Response{data=[]dto.MessageResponse}
// @Router /api/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	var filters dto.MessageFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	messages, err := h.messageService.List(middleware.CurrentUser(c), &filters)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, messages)
}

// Get 获取单条消息
// @Summary 获取单条消息
// @Tags 消息
// @Produce json
// @Param id path int true "消息ID"
// @Success 200 {object} utils.Response{data=dto.MessageResponse}
// @Router /api/messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	message, err := h.messageService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, message)
}

// Create 创建消息
// @Summary 创建消息
// @Tags 消息
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMessageRequest true "消息内容"
// @Success 201 {object} utils.Response{data=dto.MessageResponse}
// @Router /api/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, utils.BindingErrorFields(err))
		return
	}

	message, err := h.messageService.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, message)
}

// Update 全量更新消息
// @Summary 全量更新消息
// @Tags 消息
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消息ID"
// @Param request body dto.UpdateMessageRequest true "消息内容"
// @Success 200 {object} utils.Response{data=dto.MessageResponse}
// @Router /api/messages/{id} [put]
func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, utils.BindingErrorFields(err))
		return
	}

	message, err := h.messageService.Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, message)
}

// Patch 部分更新消息
// @Summary 部分更新消息
// @Tags 消息
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消息ID"
// @Param request body dto.PatchMessageRequest true "要更新的字段"
// @Success 200 {object} utils.Response{data=dto.MessageResponse}
// @Router /api/messages/{id} [patch]
func (h *MessageHandler) Patch(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	var req dto.PatchMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, utils.BindingErrorFields(err))
		return
	}

	message, err := h.messageService.Patch(middleware.CurrentUser(c), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, message)
}

// Delete 删除消息
// @Summary 删除消息
// @Tags 消息
// @Produce json
// @Security BearerAuth
// @Param id path int true "消息ID"
// @Success 200 {object} utils.Response
// @Router /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	if err := h.messageService.Delete(middleware.CurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// Favorite 收藏消息
// @Summary 收藏消息(幂等)
// @Tags 消息
// @Produce json
// @Security BearerAuth
// @Param id path int true "消息ID"
// @Success 201 {object} utils.Response
// @Router /api/messages/{id}/favorite [post]
func (h *MessageHandler) Favorite(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	if err := h.messageService.Favorite(middleware.CurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	// 已收藏时同样返回201，幂等
	utils.CreatedResponse(c, nil)
}

// Unfavorite 取消收藏消息
// @Summary 取消收藏消息(幂等)
// @Tags 消息
// @Produce json
// @Security BearerAuth
// @Param id path int true "消息ID"
// @Success 200 {object} utils.Response
// @Router /api/messages/{id}/favorite [delete]
func (h *MessageHandler) Unfavorite(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	if err := h.messageService.Unfavorite(middleware.CurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "取消收藏成功", nil)
}

// messageID 解析路径中的消息ID
func messageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的消息ID")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError 业务错误转HTTP响应
// 403与404区分开：非所有者的写操作得到403，不隐藏消息存在性
func respondServiceError(c *gin.Context, err error) {
	var fields service.FieldErrors
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.As(err, &fields):
		utils.ValidationError(c, fields)
	default:
		utils.InternalError(c, err.Error())
	}
}
