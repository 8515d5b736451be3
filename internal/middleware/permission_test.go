package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oxtna/message-board/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newPermissionRouter 挂载策略中间件的最小路由，authed为true时注入已认证用户
func newPermissionRouter(action permission.Action, authed bool) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", uint(1))
			c.Set("username", "alice")
			c.Set("is_staff", false)
			c.Next()
		})
	}
	reached := new(bool)
	r.POST("/x", RequirePermission(action), func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusOK)
	})
	return r, reached
}

func TestRequirePermission(t *testing.T) {
	cases := []struct {
		name   string
		action permission.Action
		authed bool
		want   int
	}{
		{"匿名列表放行", permission.ActionList, false, http.StatusOK},
		{"匿名查看放行", permission.ActionRetrieve, false, http.StatusOK},
		{"匿名创建拒绝", permission.ActionCreate, false, http.StatusUnauthorized},
		{"匿名更新拒绝", permission.ActionUpdate, false, http.StatusUnauthorized},
		{"匿名删除拒绝", permission.ActionDestroy, false, http.StatusUnauthorized},
		{"匿名收藏拒绝", permission.ActionFavorite, false, http.StatusUnauthorized},
		{"认证创建放行", permission.ActionCreate, true, http.StatusOK},
		{"认证部分更新放行", permission.ActionPartialUpdate, true, http.StatusOK},
		{"认证取消收藏放行", permission.ActionUnfavorite, true, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, reached := newPermissionRouter(tc.action, tc.authed)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			assert.Equal(t, tc.want == http.StatusOK, *reached)
		})
	}
}
