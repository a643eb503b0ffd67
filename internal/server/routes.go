package server

import "github.com/gin-gonic/gin"

func (s *implServer) routes() {
	r := s.engine
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	r.POST("/batches", s.startBatch)
	r.GET("/batches/current", s.currentBatch)

	r.GET("/transcripts", s.listTranscripts)
	r.GET("/transcripts/download", s.downloadTranscript)

	r.GET("/logs/:channel", s.listLogs)
	r.DELETE("/session", s.clearSession)
}
