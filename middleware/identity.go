package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// ErrNoIdentity 请求未携带身份信息
var ErrNoIdentity = errors.New("未提供用户标识")

// Resolver 从请求中解析用户身份。数据访问层只认解析结果，
// 替换认证方式时无需改动任何controller。
type Resolver interface {
	Resolve(c *gin.Context) (string, error)
}

// HeaderResolver 直接信任 x-user-id 请求头（默认模式，无真实认证）
type HeaderResolver struct{}

func (HeaderResolver) Resolve(c *gin.Context) (string, error) {
	uid := c.GetHeader("x-user-id")
	if uid == "" {
		return "", ErrNoIdentity
	}
	return uid, nil
}

// TokenResolver 从 Authorization Bearer 令牌中解析用户ID
type TokenResolver struct {
	Secret []byte
}

type identityClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (r TokenResolver) Resolve(c *gin.Context) (string, error) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		return "", ErrNoIdentity
	}

	token, err := jwt.ParseWithClaims(tokenString, &identityClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 只接受HMAC签名
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", token.Header["alg"])
		}
		return r.Secret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*identityClaims); ok && token.Valid && claims.UserID != "" {
		return claims.UserID, nil
	}
	return "", fmt.Errorf("无效的令牌")
}

// NewResolver 根据配置选择身份解析实现
func NewResolver(mode, jwtSecret string) Resolver {
	if mode == "jwt" {
		return TokenResolver{Secret: []byte(jwtSecret)}
	}
	return HeaderResolver{}
}

// IdentityMiddleware 身份中间件，解析失败直接400，不触达存储层
func IdentityMiddleware(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := resolver.Resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
			return
		}

		// 将 uid 存储在 gin.Context 中
		c.Set("uid", uid)
		c.Next()
	}
}
