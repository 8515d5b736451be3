package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token类型
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTClaims JWT声明
type JWTClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey     []byte
	algorithm     jwt.SigningMethod
	accessExpire  time.Duration
	refreshExpire time.Duration
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey string, algorithm string, accessExpire, refreshExpire time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		algorithm:     jwt.GetSigningMethod(algorithm),
		accessExpire:  accessExpire,
		refreshExpire: refreshExpire,
	}
}

// GenerateTokenPair 生成访问Token和刷新Token
func (j *JWTManager) GenerateTokenPair(userID uint, username string, isStaff bool) (access string, refresh string, err error) {
	access, err = j.generateToken(userID, username, isStaff, TokenTypeAccess, j.accessExpire)
	if err != nil {
		return "", "", err
	}

	refresh, err = j.generateToken(userID, username, isStaff, TokenTypeRefresh, j.refreshExpire)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// generateToken 生成Token
func (j *JWTManager) generateToken(userID uint, username string, isStaff bool, tokenType string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:    userID,
		Username:  username,
		IsStaff:   isStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(j.algorithm, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken 验证访问Token
func (j *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	return j.validate(tokenString, TokenTypeAccess)
}

// RefreshToken 用刷新Token换取新的访问Token
func (j *JWTManager) RefreshToken(refreshToken string) (string, error) {
	claims, err := j.validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	return j.generateToken(claims.UserID, claims.Username, claims.IsStaff, TokenTypeAccess, j.accessExpire)
}

// validate 验证Token并检查类型
func (j *JWTManager) validate(tokenString string, tokenType string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != j.algorithm {
			return nil, errors.New("无效的签名算法")
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的Token")
	}

	if claims.TokenType != tokenType {
		return nil, errors.New("Token类型不匹配")
	}

	return claims, nil
}
