package handler

import (
	"strconv"

	"github.com/oxtna/message-board/internal/service"
	"github.com/oxtna/message-board/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户查询处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建用户查询处理器
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List 获取用户列表
// @Summary 获取用户列表
// @Tags 用户
// @Produce json
// @Success 200 {object} utils.Response{data=[]dto.UserResponse}
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, users)
}

// Get 获取单个用户
// @Summary 获取单个用户
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的用户ID")
		return
	}

	user, err := h.userService.Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}
