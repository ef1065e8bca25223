package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/web"
)

// CrimeHandler 犯罪处理器
type CrimeHandler struct {
	crimes *service.CrimeService
	tables *gamedata.Tables
	logger logger.Logger
}

// NewCrimeHandler 创建犯罪处理器
func NewCrimeHandler(crimes *service.CrimeService, tables *gamedata.Tables, l logger.Logger) *CrimeHandler {
	return &CrimeHandler{
		crimes: crimes,
		tables: tables,
		logger: l.Named("handler.crime"),
	}
}

// CrimeView 犯罪列表项,附带派生风险等级
type CrimeView struct {
	ID               int32           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	MinReward        int64           `json:"min_reward"`
	MaxReward        int64           `json:"max_reward"`
	ExperienceReward int64           `json:"experience_reward"`
	Difficulty       int32           `json:"difficulty"`
	Risk             model.RiskLevel `json:"risk"`
}

// Register 注册路由
func (h *CrimeHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1/crimes")
	{
		api.GET("", h.List)
		api.POST("/:id/commit", h.Commit)
	}
}

// List 按难度升序列出犯罪项目
// @Summary 犯罪列表
// @Tags crime
// @Router /api/v1/crimes [get]
func (h *CrimeHandler) List(c *gin.Context) {
	crimes := h.tables.Crimes()
	views := make([]CrimeView, 0, len(crimes))
	for _, crime := range crimes {
		views = append(views, CrimeView{
			ID:               crime.ID,
			Name:             crime.Name,
			Description:      crime.Description,
			MinReward:        crime.MinReward,
			MaxReward:        crime.MaxReward,
			ExperienceReward: crime.ExperienceReward,
			Difficulty:       crime.Difficulty,
			Risk:             crime.Risk(),
		})
	}
	web.Success(c, views)
}

// Commit 结算一次犯罪
// @Summary 作案
// @Tags crime
// @Router /api/v1/crimes/{id}/commit [post]
func (h *CrimeHandler) Commit(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	crimeID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		web.Error(c, http.StatusBadRequest, web.CodeBadRequest, "invalid crime id")
		return
	}

	result, err := h.crimes.CommitCrime(c.Request.Context(), uid, int32(crimeID))
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, result)
}
