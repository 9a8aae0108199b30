package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/assets"
	"github.com/alnah/go-bnccdoc/internal/config"
	"github.com/alnah/go-bnccdoc/internal/generation"
	"github.com/alnah/go-bnccdoc/internal/hints"
	"github.com/alnah/go-bnccdoc/internal/logger"
	"github.com/alnah/go-bnccdoc/internal/planning"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// ErrMissingSecret is returned when serve starts without a signing key.
var ErrMissingSecret = errors.New("JWT secret not configured")

// loadConfig reads the named config file, or the defaults when name and
// BNCCDOC_CONFIG are both empty, then applies environment overrides and
// validates the result.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	if name == "" {
		name = envCfg.ConfigPath
	}
	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app is the wired object graph shared by serve and export.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *gorm.DB
	store    *store.Store
	composer *bnccdoc.Composer
	engine   *bnccdoc.Engine
	exporter *bnccdoc.BatchExporter
}

// newApp opens the database and builds the document stack.
func newApp(ctx context.Context, cfg *config.Config, env *Environment) (*app, error) {
	log, err := logger.NewWriter(cfg.Log, env.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.Database.Path, log)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForDatabase(cfg.Database.Path))
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		_ = store.Close(db)
		return nil, fmt.Errorf("assets: %w", err)
	}
	if loader.HasCustomLoader() {
		log.Info("using custom assets", zap.String("path", cfg.Assets.BasePath))
	}

	opts := []bnccdoc.Option{
		bnccdoc.WithLogger(log),
		bnccdoc.WithClock(env.Now),
		bnccdoc.WithDomain(cfg.App.Domain),
		bnccdoc.WithBrand(cfg.App.Brand),
		bnccdoc.WithAssetLoader(loader),
		bnccdoc.WithBrowser(cfg.Render.BrowserBin, cfg.Render.NoSandbox),
		bnccdoc.WithLoadTimeout(cfg.Render.LoadTimeout),
		bnccdoc.WithRenderTimeout(cfg.Render.PDFTimeout),
	}
	composer, err := bnccdoc.NewComposer(opts...)
	if err != nil {
		_ = store.Close(db)
		return nil, err
	}
	engine := bnccdoc.NewEngine(opts...)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		store:    store.New(db),
		composer: composer,
		engine:   engine,
		exporter: bnccdoc.NewBatchExporter(composer, engine, opts...),
	}, nil
}

// generator returns the text generator, or nil when no API key is set so
// generation routes answer 503 instead of failing at startup.
func (a *app) generator(ctx context.Context) (planning.ContentGenerator, error) {
	gc := a.cfg.Generation
	if gc.APIKey == "" {
		return nil, nil
	}
	model, err := generation.NewGeminiModel(ctx, generation.GeminiConfig{
		APIKey:  gc.APIKey,
		Model:   gc.Model,
		BaseURL: gc.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return generation.NewGenerator(model,
		generation.WithRetry(gc.MaxAttempts, gc.BaseBackoff),
		generation.WithLogger(a.log.Named("generation")),
	), nil
}

// Close releases the database and flushes the logger.
func (a *app) Close() error {
	_ = a.log.Sync()
	return store.Close(a.db)
}
