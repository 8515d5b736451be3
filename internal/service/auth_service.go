package service

import (
	"errors"
	"fmt"

	"github.com/oxtna/message-board/internal/config"
	"github.com/oxtna/message-board/internal/dto"
	"github.com/oxtna/message-board/internal/models"
	"github.com/oxtna/message-board/internal/repository"
	"github.com/oxtna/message-board/internal/utils"
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	cfg        *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

// Register 用户注册
// 密码一致性和格式在绑定层校验，这里只处理唯一性和落库
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	fields := FieldErrors{}

	// 验证用户名是否已存在
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("检查用户名失败: %w", err)
	}
	if exists {
		fields["username"] = "用户名已存在"
	}

	// 验证邮箱是否已存在
	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("检查邮箱失败: %w", err)
	}
	if exists {
		fields["email"] = "邮箱已被注册"
	}

	if len(fields) > 0 {
		return nil, fields
	}

	// 哈希密码，明文不落库
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// Login 用户登录，签发访问Token和刷新Token
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 获取用户
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, errors.New("用户名或密码错误")
	}

	// 验证密码
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, errors.New("用户名或密码错误")
	}

	// 检查用户是否激活
	if !user.IsActive {
		return nil, errors.New("用户已被禁用")
	}

	access, refresh, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         userInfo(user),
	}, nil
}

// Refresh 用刷新Token换取新的访问Token
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	access, err := s.jwtManager.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.New("刷新Token无效或已过期")
	}

	return &dto.RefreshResponse{
		AccessToken: access,
		TokenType:   "bearer",
	}, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	info := userInfo(user)
	return &info, nil
}

// InitAdmin 初始化管理员账户
func (s *AuthService) InitAdmin() error {
	// 检查是否已有管理员
	staff, err := s.userRepo.GetStaff()
	if err == nil && staff != nil {
		return nil // 已存在管理员
	}

	hashedPassword, err := utils.HashPassword(s.cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Username:     s.cfg.Admin.Username,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	return nil
}

// userInfo 用户模型转响应
func userInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
	}
}
