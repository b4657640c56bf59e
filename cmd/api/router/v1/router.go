package v1

import (
	"github.com/gin-gonic/gin"

	msgHTTP "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, deps msgHTTP.Deps) {
	v1 := r.Group("/api/v1")
	msgHTTP.RegisterRoutes(v1, deps)
}
