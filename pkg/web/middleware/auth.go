package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/pkg/security"
)

const (
	// ClaimsKey Context 中存储 Claims 的 key
	ClaimsKey = "jwt_claims"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// JWTManager JWT 管理器
	JWTManager *security.JWTManager
	// SkipPaths 跳过验证的路径
	SkipPaths []string
	// SkipPrefixes 跳过验证的路径前缀
	SkipPrefixes []string
}

// Auth JWT 认证中间件
func Auth(cfg *AuthConfig) gin.HandlerFunc {
	skipPaths := make(map[string]struct{})
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// 检查跳过路径
		if _, skip := skipPaths[path]; skip {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// 提取 Token
		token := extractToken(c, cfg.JWTManager.GetConfig())
		if token == "" {
			handleAuthError(c, security.ErrTokenMissing)
			return
		}

		// 验证 Token
		claims, err := cfg.JWTManager.ValidateToken(token)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		// Claims 存入 Context
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims 从 gin.Context 中取出 Claims
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok
}

// extractToken 从请求头提取 Token
func extractToken(c *gin.Context, cfg *security.JWTConfig) string {
	header := c.GetHeader(cfg.HeaderName)
	if header == "" {
		return ""
	}
	return header
}

// handleAuthError 统一认证错误响应
// 不能引用 pkg/web(会造成循环导入),响应结构和错误码与 web.Response / web.CodeToken* 保持一致
func handleAuthError(c *gin.Context, err error) {
	var code int
	var message string
	switch {
	case errors.Is(err, security.ErrTokenMissing):
		code, message = 40101, "missing token" // web.CodeTokenMissing
	case errors.Is(err, security.ErrTokenExpired):
		code, message = 40102, "token expired" // web.CodeTokenExpired
	default:
		code, message = 40103, "invalid token" // web.CodeTokenInvalid
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    code,
		"message": message,
		"data":    nil,
	})
}
