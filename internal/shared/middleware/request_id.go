package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestID là context key chứa request id, dùng chung với Logger/Recovery
const CtxRequestID = "request_id"

// RequestID gắn một request id vào mỗi request để trace qua logs
// Honor X-Request-ID từ client (load balancer / gateway) nếu có
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(CtxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
