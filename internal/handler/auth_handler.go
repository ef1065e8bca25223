package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/web"
)

// AuthHandler 账号处理器
type AuthHandler struct {
	auth   *service.AuthService
	logger logger.Logger
}

// NewAuthHandler 创建账号处理器
func NewAuthHandler(auth *service.AuthService, l logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: l.Named("handler.auth"),
	}
}

// SignUpRequest 注册请求
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=24"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignInRequest 登录请求
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse 登录响应
type SignInResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Register 注册路由
func (h *AuthHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1/auth")
	{
		api.POST("/signup", h.SignUp)
		api.POST("/signin", h.SignIn)
		api.POST("/signout", h.SignOut)
	}
}

// SignUp 注册接口
// @Summary 注册账号并创建初始档案
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Error(c, http.StatusBadRequest, web.CodeBadRequest, "invalid request: "+err.Error())
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// SignIn 登录接口
// @Summary 登录并签发 Token
// @Tags auth
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Error(c, http.StatusBadRequest, web.CodeBadRequest, "invalid request: "+err.Error())
		return
	}

	token, user, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, SignInResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}

// SignOut 注销接口
func (h *AuthHandler) SignOut(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, nil)
}
