package middleware

import (
	"strings"

	"github.com/oxtna/message-board/internal/models"
	"github.com/oxtna/message-board/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware JWT认证中间件
// 集合级检查在这里短路：写操作的路由挂上它之后，未认证请求不会触达任何对象加载
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtManager)
		if !ok {
			utils.Unauthorized(c, "未认证")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证中间件
// 读操作对匿名开放，但携带有效Token时要识别请求者，favorited才有意义
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtManager); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// parseBearer 解析并验证Bearer Token
func parseBearer(c *gin.Context, jwtManager *utils.JWTManager) (*utils.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// setClaims 将用户信息存入上下文
func setClaims(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_staff", claims.IsStaff)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get("username")
	if !exists {
		return "", false
	}
	return username.(string), true
}

// IsStaff 从上下文判断是否为管理员
func IsStaff(c *gin.Context) bool {
	isStaff, exists := c.Get("is_staff")
	if !exists {
		return false
	}
	return isStaff.(bool)
}

// CurrentUser 从上下文构造当前请求者，匿名返回nil
func CurrentUser(c *gin.Context) *models.User {
	userID, ok := GetUserID(c)
	if !ok {
		return nil
	}
	username, _ := GetUsername(c)
	return &models.User{
		ID:       userID,
		Username: username,
		IsStaff:  IsStaff(c),
	}
}
