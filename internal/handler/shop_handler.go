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

// ShopHandler 商店处理器
type ShopHandler struct {
	shop   *service.ShopService
	tables *gamedata.Tables
	logger logger.Logger
}

// NewShopHandler 创建商店处理器
func NewShopHandler(shop *service.ShopService, tables *gamedata.Tables, l logger.Logger) *ShopHandler {
	return &ShopHandler{
		shop:   shop,
		tables: tables,
		logger: l.Named("handler.shop"),
	}
}

// Register 注册路由
func (h *ShopHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1/weapons")
	{
		api.GET("", h.List)
		api.POST("/:id/buy", h.Buy)
	}
}

// List 按售价升序列出武器
func (h *ShopHandler) List(c *gin.Context) {
	web.Success(c, h.tables.Weapons())
}

// Buy 购买武器
// @Summary 购买并装备武器
// @Tags shop
// @Router /api/v1/weapons/{id}/buy [post]
func (h *ShopHandler) Buy(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	weaponID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		web.Error(c, http.StatusBadRequest, web.CodeBadRequest, "invalid weapon id")
		return
	}

	result, err := h.shop.BuyWeapon(c.Request.Context(), uid, int32(weaponID))
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, result)
}
