package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/pkg/web"
	"github.com/omertagame/omerta/pkg/web/middleware"
)

// currentUserID 从认证中间件写入的 Claims 中取出玩家 ID
func currentUserID(c *gin.Context) (string, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return "", false
	}
	uid := claims.GetString("uid")
	return uid, uid != ""
}

// respondError 统一业务错误到 HTTP 状态码的映射
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, dao.ErrNotFound):
		web.Error(c, http.StatusNotFound, web.CodeNotFound, "not found")
	case errors.Is(err, service.ErrInvalidState):
		web.Error(c, http.StatusConflict, web.CodeInvalidState, err.Error())
	case errors.Is(err, dao.ErrVersionConflict):
		// 并发写冲突,客户端可直接重试
		web.Error(c, http.StatusConflict, web.CodeVersionConflict, "profile was modified concurrently, try again")
	case errors.Is(err, service.ErrInvalidCredentials):
		web.Error(c, http.StatusUnauthorized, web.CodeBadCredentials, "invalid email or password")
	case errors.Is(err, service.ErrDuplicateAccount):
		web.Error(c, http.StatusConflict, web.CodeDuplicateAccount, "email or username already taken")
	default:
		web.Error(c, http.StatusInternalServerError, web.CodeInternal, "internal error")
	}
}
