package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logFormat := fmt.Sprintf("[%s] %s %s %d %s %s",
			param.TimeStamp.Format(time.RFC3339),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
		if param.ErrorMessage != "" {
			logFormat = fmt.Sprintf("%s  %s", logFormat, strings.TrimSpace(param.ErrorMessage))
		}
		return logFormat + "\n"
	})
}
