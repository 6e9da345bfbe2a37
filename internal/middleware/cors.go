package middleware

import (
	"github.com/gin-gonic/gin"
)

// Fixed cross-origin policy of the RSVP endpoint
var rsvpCORSHeaders = [][2]string{
	{"Access-Control-Allow-Credentials", "true"},
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET,OPTIONS,PATCH,DELETE,POST,PUT"},
	{"Access-Control-Allow-Headers", "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, " +
		"Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"},
}

// CORSHeadersMiddleware sets the permissive cross-origin headers before any
// other handler runs, so throttled, rejected and recovered responses carry
// them as well. Preflight answering is left to the route handler.
func CORSHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range rsvpCORSHeaders {
			c.Header(h[0], h[1])
		}
		c.Next()
	}
}
