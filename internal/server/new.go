package server

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/tubescribe/internal/exporter"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/processor"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
)

// Options configures the HTTP server.
type Options struct {
	Addr           string
	Mode           string // gin mode: debug, release or test
	ChunkSeconds   int    // default when a request omits it
	OverlapSeconds int
}

// Dependencies are the components the handlers drive. Exporter may be nil.
type Dependencies struct {
	Processor processor.Processor
	Session   *store.Session
	Exporter  exporter.Exporter
	Tracker   *Tracker
}

type implServer struct {
	deps    Dependencies
	opts    Options
	logger  logger.Logger
	engine  *gin.Engine
	baseCtx context.Context

	mu      sync.Mutex
	running bool
	batches sync.WaitGroup
}

// New creates a Server and registers its routes.
func New(deps Dependencies, opts Options, log logger.Logger) Server {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if deps.Tracker == nil {
		deps.Tracker = NewTracker()
	}

	s := &implServer{
		deps:    deps,
		opts:    opts,
		logger:  log,
		baseCtx: context.Background(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	s.engine = engine
	s.routes()
	return s
}
