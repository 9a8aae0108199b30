// Package server exposes the authoring workflow and the document exports
// over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/auth"
	"github.com/alnah/go-bnccdoc/internal/config"
	"github.com/alnah/go-bnccdoc/internal/planning"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// DocumentComposer builds HTML documents. Implemented by *bnccdoc.Composer.
type DocumentComposer interface {
	ComposePlan(ctx context.Context, in bnccdoc.PlanInput) (string, error)
	ComposeYearly(ctx context.Context, in bnccdoc.YearlyInput) (string, error)
}

// Renderer turns a composed document into a download. Implemented by
// *bnccdoc.Engine.
type Renderer interface {
	RenderPDF(ctx context.Context, doc string, profile bnccdoc.PDFProfile) ([]byte, error)
	RenderDOCX(ctx context.Context, doc string) ([]byte, error)
	RenderHTML(ctx context.Context, doc string) ([]byte, error)
}

// Exporter builds the all-plans archive. Implemented by
// *bnccdoc.BatchExporter.
type Exporter interface {
	Export(ctx context.Context, settings *bnccdoc.Settings, records []bnccdoc.BatchRecord) ([]byte, error)
	ExportConcurrent(ctx context.Context, settings *bnccdoc.Settings, records []bnccdoc.BatchRecord, workers int) ([]byte, error)
}

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Store    *store.Store
	Auth     *auth.Service
	Planning *planning.Service
	Composer DocumentComposer
	Renderer Renderer
	Exporter Exporter
	Logger   *zap.Logger
}

// Options tune request handling.
type Options struct {
	CORSOrigins  []string
	DOCXFilename string
	BatchWorkers int           // 1 = sequential export
	BatchTimeout time.Duration // budget of one archive export
}

// OptionsFromConfig maps the service configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		DOCXFilename: cfg.Export.DOCXFilename,
		BatchWorkers: cfg.Batch.Workers,
		BatchTimeout: cfg.Batch.Timeout,
	}
}

// Server holds the handlers and their dependencies.
type Server struct {
	deps Deps
	opts Options
	log  *zap.Logger
}

// New creates a Server. Missing options fall back to the configuration
// defaults.
func New(deps Deps, opts Options) *Server {
	defaults := config.DefaultConfig()
	if opts.DOCXFilename == "" {
		opts.DOCXFilename = defaults.Export.DOCXFilename
	}
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = 1
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = defaults.Batch.Timeout
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, opts: opts, log: log}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(s.log))
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(CORS(s.opts.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)

		api.GET("/skills", s.listSkills)

		authorized := api.Group("")
		authorized.Use(Authenticate(s.deps.Auth.Tokens()))

		plans := authorized.Group("/plans")
		{
			plans.GET("", s.listPlans)
			plans.POST("/start", s.startPlan)
			plans.POST("/update", s.updatePlan)
			plans.POST("/delete", s.deletePlans)
			plans.GET("/batch-pdf", s.yearlyPDF)
			plans.GET("/:id", s.getPlan)
			plans.POST("/:id/generate", s.generateStage)
			plans.POST("/:id/resources", s.generateResource)
			plans.GET("/:id/pdf", s.planPDF)
			plans.GET("/:id/docx", s.planDOCX)
			plans.GET("/:id/html", s.planHTML)
		}

		authorized.GET("/settings", s.getSettings)
		authorized.POST("/settings", RequireAdmin(msgSettingsForbidden), s.putSettings)

		authorized.GET("/admin/batch-export", RequireAdmin(msgAccessDenied), s.batchExport)
	}

	return r
}

// Run serves on addr until ctx is canceled, then drains in-flight requests
// for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
