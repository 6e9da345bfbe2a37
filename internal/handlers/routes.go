package handlers

import (
	"github.com/apexadvisory/rsvp-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// MaxRSVPBodyBytes caps an RSVP request body
const MaxRSVPBodyBytes = 64 * 1024

// RegisterRSVPRoutes mounts the submission endpoint on /api/rsvp and the
// legacy /rsvp for every HTTP method; Submit does its own method gate.
func RegisterRSVPRoutes(router gin.IRoutes, handler *RSVPHandler, limiter *middleware.RateLimiter) {
	chain := []gin.HandlerFunc{
		middleware.CORSHeadersMiddleware(),
		limiter.Middleware(),
		middleware.BodySizeLimitMiddleware(MaxRSVPBodyBytes),
		handler.Submit,
	}

	router.Any("/api/rsvp", chain...)
	router.Any("/rsvp", chain...)
}
