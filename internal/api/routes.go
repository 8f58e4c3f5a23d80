package api

import "github.com/gin-gonic/gin"

func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/status", s.status)
		api.POST("/filter", s.filterHandler)

		d := api.Group("/deck")
		d.GET("", s.deckHandler)
		d.POST("/cards", s.addCardHandler)
		d.POST("/cards/:id/increment", s.incrementHandler)
		d.POST("/cards/:id/decrement", s.decrementHandler)
		d.DELETE("/cards/:id", s.removeHandler)
		d.PUT("/name", s.nameHandler)
		d.POST("/reset", s.resetHandler)
		d.GET("/code", s.codeHandler)
		d.POST("/import", s.importHandler)
		d.GET("/export", s.exportHandler)
		d.GET("/qr", s.qrHandler)
	}
}
