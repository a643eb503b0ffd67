package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubescribe/internal/config"
	"github.com/nguyentantai21042004/tubescribe/internal/exporter"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/processor"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type BatchRequest struct {
	URLs           []string `json:"urls"`
	ChunkSeconds   *int     `json:"chunk_seconds"`
	OverlapSeconds *int     `json:"overlap_seconds"`
}

type BatchResponse struct {
	Message  string `json:"message"`
	BatchID  string `json:"batch_id"`
	URLCount int    `json:"url_count"`
}

var errBatchRunning = errors.New("a batch is already running")

// startBatch validates the request and runs the batch in the background.
func (s *implServer) startBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	urls := processor.NormalizeURLs(req.URLs)
	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please enter at least one URL."})
		return
	}

	chunk, overlap := s.opts.ChunkSeconds, s.opts.OverlapSeconds
	if req.ChunkSeconds != nil {
		chunk = *req.ChunkSeconds
	}
	if req.OverlapSeconds != nil {
		overlap = *req.OverlapSeconds
	}
	if err := config.ValidateChunking(chunk, overlap); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid chunking parameters", Details: err.Error()})
		return
	}

	if !s.tryStart() {
		c.JSON(http.StatusConflict, ErrorResponse{Error: errBatchRunning.Error()})
		return
	}

	id := uuid.New().String()
	s.deps.Tracker.start(id, len(urls))
	s.batches.Add(1)
	go s.runBatch(id, urls, int64(chunk)*1000, int64(overlap)*1000)

	c.JSON(http.StatusAccepted, BatchResponse{
		Message:  "Batch started",
		BatchID:  id,
		URLCount: len(urls),
	})
}

func (s *implServer) runBatch(id string, urls []string, windowMs, overlapMs int64) {
	defer s.batches.Done()
	defer s.setRunning(false)

	ctx := logger.WithBatchID(s.baseCtx, id)
	transcript, err := s.deps.Processor.Run(ctx, s.deps.Session, urls, windowMs, overlapMs)
	if err != nil {
		s.logger.Error(ctx, "Batch %s ended with error: %v", id, err)
	}
	if s.deps.Exporter != nil && transcript.Len() > 0 {
		if _, exportErr := s.deps.Exporter.Export(ctx, transcript); exportErr != nil && err == nil {
			err = exportErr
		}
	}
	s.deps.Tracker.finish(err)
}

func (s *implServer) currentBatch(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Tracker.Status())
}

func (s *implServer) listTranscripts(c *gin.Context) {
	tr := s.deps.Session.Transcript()
	c.JSON(http.StatusOK, gin.H{"order": tr.Order, "transcripts": tr.Texts})
}

// downloadTranscript serves one transcript as a text attachment.
func (s *implServer) downloadTranscript(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url query parameter is required"})
		return
	}
	text, ok := s.deps.Session.Text(url)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No transcript for this URL"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName(url)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (s *implServer) listLogs(c *gin.Context) {
	ch, err := store.ParseChannel(c.Param("channel"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid log channel", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": ch, "entries": s.deps.Session.Entries(ch)})
}

// clearSession drops logs and results and empties the scratch directories.
func (s *implServer) clearSession(c *gin.Context) {
	if !s.tryStart() {
		c.JSON(http.StatusConflict, ErrorResponse{Error: errBatchRunning.Error()})
		return
	}
	defer s.setRunning(false)

	s.deps.Session.Clear()
	s.deps.Processor.ClearScratch(c.Request.Context(), s.deps.Session)
	c.JSON(http.StatusOK, gin.H{"message": "Session cleared"})
}

// tryStart marks the server busy. It reports false when it already was.
func (s *implServer) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *implServer) setRunning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = v
}
