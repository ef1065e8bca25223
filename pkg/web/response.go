package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码,前三位是 HTTP 状态,后两位区分场景
const (
	CodeOK = 0

	CodeBadRequest = 40001

	CodeTokenMissing   = 40101
	CodeTokenExpired   = 40102
	CodeTokenInvalid   = 40103
	CodeBadCredentials = 40104

	CodeNotFound = 40401

	CodeInvalidState     = 40901 // 当前状态不允许该操作(如在押时犯罪)
	CodeVersionConflict  = 40902 // 乐观锁冲突,可重试
	CodeDuplicateAccount = 40903

	CodeInternal = 50001
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`    // 业务错误码,0 表示成功
	Message string `json:"message"` // 提示信息
	Data    any    `json:"data"`    // 数据载体
}

// Success 成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// AbortWithError 中断并返回错误
func AbortWithError(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
