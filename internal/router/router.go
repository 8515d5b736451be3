package router

import (
	"github.com/oxtna/message-board/internal/config"
	"github.com/oxtna/message-board/internal/handler"
	"github.com/oxtna/message-board/internal/middleware"
	"github.com/oxtna/message-board/internal/permission"
	"github.com/oxtna/message-board/internal/repository"
	"github.com/oxtna/message-board/internal/service"
	"github.com/oxtna/message-board/internal/utils"
	"github.com/oxtna/message-board/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	limiter *ratelimit.Limiter,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 注册自定义验证到Gin的绑定验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	messageService := service.NewMessageService(messageRepo, favoriteRepo)
	userService := service.NewUserService(userRepo, messageRepo, favoriteRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userRepo)

	// API路由组
	api := r.Group("/api")
	{
		// API根，列出各资源入口
		api.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"users":         "/api/users",
				"messages":      "/api/messages",
				"register":      "/api/register",
				"obtain_token":  "/api/login",
				"refresh_token": "/api/login/refresh",
			})
		})

		// 公开路由，注册和登录走限流
		limited := api.Group("")
		limited.Use(middleware.RateLimitMiddleware(limiter, logger))
		{
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)
			limited.POST("/login/refresh", authHandler.Refresh)
		}

		// 用户只读接口，匿名可访问
		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.Get)

		// 消息接口，集合级权限统一由策略中间件判定
		// 读操作匿名可访问，带Token时favorited相对请求者，写操作要求已认证
		messages := api.Group("/messages")
		messages.Use(middleware.OptionalAuthMiddleware(jwtManager))
		{
			messages.GET("", middleware.RequirePermission(permission.ActionList), messageHandler.List)
			messages.GET("/:id", middleware.RequirePermission(permission.ActionRetrieve), messageHandler.Get)
			messages.POST("", middleware.RequirePermission(permission.ActionCreate), messageHandler.Create)
			messages.PUT("/:id", middleware.RequirePermission(permission.ActionUpdate), messageHandler.Update)
			messages.PATCH("/:id", middleware.RequirePermission(permission.ActionPartialUpdate), messageHandler.Patch)
			messages.DELETE("/:id", middleware.RequirePermission(permission.ActionDestroy), messageHandler.Delete)

			// 收藏接口
			messages.POST("/:id/favorite", middleware.RequirePermission(permission.ActionFavorite), messageHandler.Favorite)
			messages.DELETE("/:id/favorite", middleware.RequirePermission(permission.ActionUnfavorite), messageHandler.Unfavorite)
		}

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		{
			// 用户信息
			authorized.GET("/me", authHandler.GetMe)

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.PUT("/users/:id/deactivate", adminHandler.DeactivateUser)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			}
		}
	}

	return r
}
