package http

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine: CORS, gzip, request logging, and a
// recovery handler that renders panics as the service's JSON error
// envelope instead of an empty 500.
func NewRouter(s *Server, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprint(recovered),
		})
	}))

	corsCfg := cors.DefaultConfig()
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsCfg))
	router.Use(gzip.Gzip(gzip.BestSpeed))

	router.GET("/", s.handleHome)
	router.GET("/health", s.handleHealth)
	router.GET("/models", s.handleListModels)
	router.POST("/generate-soap", s.handleGenerateSOAP)
	router.POST("/generate-differentials", s.handleGenerateDifferentials)

	return router
}
