package util

import (
	"github.com/gin-gonic/gin"
)

// 业务错误码
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeConflict     = 40002
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// ErrorAbort 同 Error，但中断后续 handler（用于中间件）
func ErrorAbort(c *gin.Context, httpStatus int, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
