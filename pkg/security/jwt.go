package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omertagame/omerta/pkg/config"
)

// JWTConfig JWT 配置
type JWTConfig struct {
	// 签名密钥（HS256 对称算法）
	SecretKey string `mapstructure:"secret_key" json:"secret_key" yaml:"secret_key"`

	// Token 过期时间（默认 24 小时）
	ExpiresIn time.Duration `mapstructure:"expires_in" json:"expires_in" yaml:"expires_in"`

	// 签发者
	Issuer string `mapstructure:"issuer" json:"issuer" yaml:"issuer"`

	// Token 前缀（默认 "Bearer "）
	TokenPrefix string `mapstructure:"token_prefix" json:"token_prefix" yaml:"token_prefix"`

	// Header 名称（默认 "Authorization"）
	HeaderName string `mapstructure:"header_name" json:"header_name" yaml:"header_name"`
}

// DefaultJWTConfig 返回默认 JWT 配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		ExpiresIn:   24 * time.Hour,
		TokenPrefix: "Bearer ",
		HeaderName:  "Authorization",
	}
}

// Claims JWT Claims,Payload 由调用方决定内容
type Claims struct {
	jwt.RegisteredClaims

	Payload map[string]any `json:"payload,omitempty"`
}

// Get 获取 Payload 中指定 key 的值
func (c *Claims) Get(key string) any {
	if c.Payload == nil {
		return nil
	}
	return c.Payload[key]
}

// GetString 获取 Payload 中指定 key 的字符串值
func (c *Claims) GetString(key string) string {
	if v, ok := c.Get(key).(string); ok {
		return v
	}
	return ""
}

// JWTManager JWT 管理器（HS256）
type JWTManager struct {
	config *JWTConfig
}

// NewJWTManager 创建 JWT 管理器
func NewJWTManager(cfg *JWTConfig) (*JWTManager, error) {
	merged, err := config.MergeConfig(DefaultJWTConfig(), cfg)
	if err != nil {
		return nil, err
	}
	if merged.SecretKey == "" {
		return nil, ErrSecretKeyEmpty
	}
	return &JWTManager{config: merged}, nil
}

// GenerateToken 生成 Token
func (m *JWTManager) GenerateToken(claims *Claims) (string, error) {
	now := time.Now()

	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.config.ExpiresIn))
	}
	if m.config.Issuer != "" && claims.Issuer == "" {
		claims.Issuer = m.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateToken 验证 Token
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = m.stripPrefix(tokenString)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgorithmMismatch
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// GetConfig 获取配置
func (m *JWTManager) GetConfig() *JWTConfig {
	return m.config
}

// stripPrefix 移除 Token 前缀
func (m *JWTManager) stripPrefix(tokenString string) string {
	if m.config.TokenPrefix != "" {
		return strings.TrimPrefix(tokenString, m.config.TokenPrefix)
	}
	return tokenString
}

// wrapError 包装 jwt 库错误
func wrapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotValidYet
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}

// Context key 类型
type contextKey string

// ClaimsContextKey 用于在 context 中存储 Claims
const ClaimsContextKey contextKey = "jwt_claims"

// SetClaimsToContext 将 Claims 存入 context
func SetClaimsToContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// GetClaimsFromContext 从 context 获取 Claims
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}
