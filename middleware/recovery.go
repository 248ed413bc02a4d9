package middleware

import (
	"fmt"
	"runtime/debug"

	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger turns a panic into a 500 with the generic body and logs
// the panic value and stack.
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("ip", c.ClientIP()),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.String("stack", string(debug.Stack())),
				}
				if err, ok := rec.(error); ok {
					fields = append(fields, zap.Error(err))
				} else {
					fields = append(fields, zap.String("panic_value", fmt.Sprintf("%v", rec)))
				}
				logger.Error("recovered from panic", fields...)
				TrackError("panic")

				utils.InternalError(c, utils.MsgInternalError)
			}
		}()
		c.Next()
	}
}
