package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects request bodies larger than limit before the route
// handler runs. Bodies with a declared Content-Length above the limit are
// refused up front through reject; bodies of unknown length are capped with
// http.MaxBytesReader so the multipart parser fails once it crosses limit.
func BodyLimit(limit int64, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength > limit {
			reject(ctx)
			ctx.Abort()
			return
		}

		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		}
		ctx.Next()
	}
}
