package middleware

import (
	"github.com/oxtna/message-board/internal/permission"
	"github.com/oxtna/message-board/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequirePermission 集合级权限中间件
// 在加载任何对象之前按策略判定，未认证的写请求在这里短路
func RequirePermission(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if permission.CheckCollection(action, CurrentUser(c)) != permission.Allow {
			utils.Unauthorized(c, "未认证")
			c.Abort()
			return
		}
		c.Next()
	}
}
