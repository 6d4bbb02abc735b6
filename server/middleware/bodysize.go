package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partsearch/partsearch/util"
)

const defaultMaxBodySize = 1024 * 1024 // 1MB

// BodySizeLimit returns a Gin middleware that restricts the request body to
// the given size string (e.g. "10MB", "512KB", "1GB").
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
