package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mojay6111/football-signup/config"
)

// InterfaceJWTService 定义会话令牌签名服务接口
type InterfaceJWTService interface {
	GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error)
	ParseSessionToken(tokenString string) (string, error)
}

// JWTService 负责会话 Cookie 令牌的签名与校验。
// 令牌只携带服务端会话ID，管理员绑定始终以会话存储为准。
type JWTService struct {
	secretKey string
	issuer    string
}

// SessionClaims 定义会话令牌的声明结构
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "football-signup",
	}
}

// GenerateSessionToken 为指定会话ID生成签名令牌
func (s *JWTService) GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseSessionToken 校验令牌并返回其中的会话ID
func (s *JWTService) ParseSessionToken(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}

	return claims.SessionID, nil
}
