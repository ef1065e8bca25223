package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/web"
)

// JailHandler 监狱处理器
type JailHandler struct {
	jail   *service.JailService
	tables *gamedata.Tables
	logger logger.Logger
}

// NewJailHandler 创建监狱处理器
func NewJailHandler(jail *service.JailService, tables *gamedata.Tables, l logger.Logger) *JailHandler {
	return &JailHandler{
		jail:   jail,
		tables: tables,
		logger: l.Named("handler.jail"),
	}
}

// Register 注册路由
func (h *JailHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1/jail")
	{
		api.GET("/status", h.Status)
		api.POST("/breakout", h.Breakout)
		api.GET("/activities", h.ListActivities)
		api.POST("/activities/:id", h.PerformActivity)
	}
}

// Status 查询监禁状态
// @Summary 监禁状态,含剩余刑期秒数
// @Tags jail
// @Router /api/v1/jail/status [get]
func (h *JailHandler) Status(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	status, err := h.jail.Status(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, status)
}

// Breakout 尝试越狱
func (h *JailHandler) Breakout(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	result, err := h.jail.AttemptBreakout(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, result)
}

// ListActivities 列出监狱活动
func (h *JailHandler) ListActivities(c *gin.Context) {
	web.Success(c, h.tables.JailActivities())
}

// PerformActivity 执行监狱活动
func (h *JailHandler) PerformActivity(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	activityID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		web.Error(c, http.StatusBadRequest, web.CodeBadRequest, "invalid activity id")
		return
	}

	result, err := h.jail.PerformActivity(c.Request.Context(), uid, int32(activityID))
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, result)
}
