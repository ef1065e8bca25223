package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/web"
)

// ProfileHandler 档案处理器
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   logger.Logger
}

// NewProfileHandler 创建档案处理器
func NewProfileHandler(profiles *service.ProfileService, l logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   l.Named("handler.profile"),
	}
}

// Register 注册路由
func (h *ProfileHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1/profile")
	{
		api.GET("", h.GetProfile)
		api.GET("/stats", h.GetStats)
	}
}

// GetProfile 读取当前玩家档案和军衔进度
// @Summary 当前玩家档案
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	view, err := h.profiles.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, view)
}

// GetStats 读取当前玩家的犯罪统计
func (h *ProfileHandler) GetStats(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	stats, err := h.profiles.GetCrimeStats(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, stats)
}
