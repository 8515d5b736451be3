package main

import (
	"log"
	"os"

	"github.com/oxtna/message-board/internal/config"
	"github.com/oxtna/message-board/internal/models"
	"github.com/oxtna/message-board/internal/repository"
	"github.com/oxtna/message-board/internal/router"
	"github.com/oxtna/message-board/internal/service"
	"github.com/oxtna/message-board/internal/utils"
	"github.com/oxtna/message-board/pkg/ratelimit"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化限流器，未配置Redis时不启用
	var limiter *ratelimit.Limiter
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		limiter = ratelimit.NewLimiter(redisClient, cfg.Redis.RateLimit, "ratelimit:auth:", cfg.Redis.GetRateWindow())
	} else {
		logger.Warn("未配置Redis，注册/登录限流已禁用")
	}

	// 初始化工具
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetAccessExpireDuration(),
		cfg.JWT.GetRefreshExpireDuration(),
	)

	// 初始化管理员账户
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	if err := authService.InitAdmin(); err != nil {
		logger.Warnf("初始化管理员失败: %v", err)
	}

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, logger, db, limiter)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
