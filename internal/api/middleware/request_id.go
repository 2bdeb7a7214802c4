// Package middleware provides HTTP middleware for the Gin router.
//
// Go Learning Note — Middleware Pattern (Gin):
// In Gin, middleware is any function with the signature `gin.HandlerFunc`, which
// is `func(*gin.Context)`. Middleware functions form a chain: each one runs,
// optionally calls c.Next() to pass control to the next handler, and can call
// c.Abort() to stop the chain.
package middleware

import (
	"github.com/gin-gonic/gin"

	"meshcode/pkg/utils"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// RequestID reuses a well-formed incoming X-Request-ID or mints a new one,
// stores it on the context, and echoes it in the response.
//
// Go Learning Note — Returning Functions (Closures):
// RequestID() returns a gin.HandlerFunc. The outer function is where
// configuration would be captured; the inner closure runs per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = utils.GenerateID("")
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retrieves the id set by RequestID, or "" if the middleware
// did not run.
//
// Go Learning Note — Type Assertion:
// c.Get() returns (any, bool). The two-value form `id, _ := v.(string)`
// yields "" instead of panicking when the value is missing or not a string.
func GetRequestID(c *gin.Context) string {
	v, _ := c.Get(RequestIDKey)
	id, _ := v.(string)
	return id
}
