package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lesson-tracker/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件，maxBytes <= 0 表示不限制
// 声明长度超限直接拒绝；未声明长度的请求在读取时由 MaxBytesReader 截断，
// 由 Handler 的绑定错误处理返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
