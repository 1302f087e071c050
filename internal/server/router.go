package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = s.cfg.MaxUploadBytes()

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.GET("/meetings", s.handleList)
		api.GET("/meetings/:id", s.handleGet)
		api.PUT("/meetings/:id", s.handleUpdate)
		api.POST("/meetings/:id/process", s.handleProcess)
		api.GET("/meetings/:id/download", s.handleDownload)
		api.DELETE("/meetings/:id", s.handleDelete)
		api.GET("/stats", s.handleStats)
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "meeting-minutes",
	})
}
