package handler

import (
	"errors"
	"strconv"

	"github.com/oxtna/message-board/internal/middleware"
	"github.com/oxtna/message-board/internal/repository"
	"github.com/oxtna/message-board/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	userRepo *repository.UserRepository
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(userRepo *repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		userRepo: userRepo,
	}
}

// ListUsers 获取所有用户
// @Summary 获取所有用户(管理员)
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=[]models.User}
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, users)
}

// DeactivateUser 禁用用户
// 软禁用，保留用户的消息和收藏
// @Summary 禁用用户(管理员)
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Response
// @Router /api/admin/users/{id}/deactivate [put]
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "用户不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	user.IsActive = false
	if err := h.userRepo.Update(user); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "用户已禁用", nil)
}

// DeleteUser 删除用户
// 硬删除，其消息和收藏级联删除
// @Summary 删除用户(管理员)
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Response
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	// 不允许删除自己
	if actorID, exists := middleware.GetUserID(c); exists && actorID == id {
		utils.BadRequest(c, "不能删除当前登录的账户")
		return
	}

	if _, err := h.userRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "用户不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	if err := h.userRepo.Delete(id); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "用户已删除", nil)
}

// userID 解析路径中的用户ID
func (h *AdminHandler) userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的用户ID")
		return 0, false
	}
	return uint(id), true
}
