package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-bnccdoc/internal/auth"
	"github.com/alnah/go-bnccdoc/internal/hints"
	"github.com/alnah/go-bnccdoc/internal/planning"
	"github.com/alnah/go-bnccdoc/internal/server"
)

// runServe starts the HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.common.dbPath != "" {
		cfg.Database.Path = f.common.dbPath
	}
	if cfg.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, env)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	gen, err := a.generator(ctx)
	if err != nil {
		return err
	}
	if gen == nil {
		a.log.Warn("text generation disabled: no API key configured")
		fmt.Fprintf(env.Stderr, "warning: text generation disabled%s\n", hints.ForGenerationKey())
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(server.Deps{
		Store:    a.store,
		Auth:     auth.NewService(a.store.Users, tokens),
		Planning: planning.NewService(a.store.Plans, gen, a.log.Named("planning")),
		Composer: a.composer,
		Renderer: a.engine,
		Exporter: a.exporter,
		Logger:   a.log.Named("http"),
	}, server.OptionsFromConfig(cfg))

	a.log.Info("starting bnccdoc",
		zap.String("version", Version),
		zap.String("database", cfg.Database.Path),
		zap.Int("batch_workers", cfg.Batch.Workers),
		zap.Bool("generation", gen != nil))

	return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout)
}
