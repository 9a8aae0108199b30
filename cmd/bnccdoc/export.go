package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/fileutil"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// Sentinel errors for the export command.
var (
	ErrExportTarget = errors.New("choose exactly one of --plan, --year or --all")
	ErrExportFormat = errors.New("unsupported export format")
	ErrMissingUser  = errors.New("--user is required for plan and year exports")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// Output formats.
const (
	formatPDF  = "pdf"
	formatDOCX = "docx"
	formatHTML = "html"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// runExport renders documents from the database without the HTTP server.
func runExport(ctx context.Context, args []string, env *Environment) error {
	f, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := f.validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if f.common.dbPath != "" {
		cfg.Database.Path = f.common.dbPath
	}
	if f.workers > 0 {
		cfg.Batch.Workers = bnccdoc.ResolvePoolSize(f.workers)
	}

	a, err := newApp(ctx, cfg, env)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var (
		data []byte
		name string
	)
	switch {
	case f.all:
		data, name, err = exportAll(ctx, a)
	case f.plan > 0:
		data, name, err = exportPlan(ctx, a, f.user, f.plan, f.format)
	default:
		data, name, err = exportYear(ctx, a, f.user, f.year, f.format)
	}
	if err != nil {
		return err
	}

	out := f.output
	if out == "" {
		out = name
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	a.log.Info("export written", zap.String("path", out), zap.Int("bytes", len(data)))
	fmt.Fprintf(env.Stdout, "%s (%d bytes)\n", out, len(data))
	return nil
}

// validate checks the target and format combination before anything is opened.
func (f *exportFlags) validate() error {
	targets := 0
	if f.plan > 0 {
		targets++
	}
	if strings.TrimSpace(f.year) != "" {
		targets++
	}
	if f.all {
		targets++
	}
	if targets != 1 {
		return ErrExportTarget
	}
	if !f.all && f.user <= 0 {
		return ErrMissingUser
	}

	f.format = strings.ToLower(strings.TrimSpace(f.format))
	switch {
	case f.all:
		// The archive always holds PDFs.
	case f.format == formatPDF, f.format == formatHTML:
	case f.format == formatDOCX && f.plan > 0:
	default:
		return fmt.Errorf("%w: %q", ErrExportFormat, f.format)
	}
	return nil
}

func exportAll(ctx context.Context, a *app) ([]byte, string, error) {
	records, err := a.store.Plans.ListWithOwners(ctx)
	if err != nil {
		return nil, "", err
	}
	settings, err := a.store.Settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	exportCtx, cancel := context.WithTimeout(ctx, a.cfg.Batch.Timeout)
	defer cancel()

	var archive []byte
	if a.cfg.Batch.Workers > 1 {
		archive, err = a.exporter.ExportConcurrent(exportCtx, settings, records, a.cfg.Batch.Workers)
	} else {
		archive, err = a.exporter.Export(exportCtx, settings, records)
	}
	if err != nil {
		return nil, "", err
	}
	return archive, bnccdoc.ArchiveFilename, nil
}

func exportPlan(ctx context.Context, a *app, userID, planID int64, format string) ([]byte, string, error) {
	p, err := a.store.Plans.Get(ctx, planID, userID)
	if err != nil {
		return nil, "", fmt.Errorf("plan %d: %w", planID, err)
	}
	settings, user, err := branding(ctx, a, userID)
	if err != nil {
		return nil, "", err
	}

	doc, err := a.composer.ComposePlan(ctx, bnccdoc.PlanInput{Plan: p, Settings: settings, User: user})
	if err != nil {
		return nil, "", err
	}

	base := "Planejamento_" + fileutil.SanitizeFilename(p.SkillCode)
	switch format {
	case formatDOCX:
		data, err := a.engine.RenderDOCX(ctx, doc)
		return data, a.cfg.Export.DOCXFilename, err
	case formatHTML:
		data, err := a.engine.RenderHTML(ctx, doc)
		return data, base + ".html", err
	default:
		data, err := a.engine.RenderPDF(ctx, doc, bnccdoc.ProfilePlan)
		return data, base + ".pdf", err
	}
}

func exportYear(ctx context.Context, a *app, userID int64, year, format string) ([]byte, string, error) {
	year = strings.TrimSpace(year)
	plans, err := a.store.Plans.ListByYear(ctx, userID, year)
	if err != nil {
		return nil, "", err
	}
	if len(plans) == 0 {
		return nil, "", fmt.Errorf("%w: %s", bnccdoc.ErrEmptyPlanSet, year)
	}
	settings, user, err := branding(ctx, a, userID)
	if err != nil {
		return nil, "", err
	}

	doc, err := a.composer.ComposeYearly(ctx, bnccdoc.YearlyInput{
		Year: year, Plans: plans, Settings: settings, User: user,
	})
	if err != nil {
		return nil, "", err
	}

	base := "Curriculo_Anual_" + fileutil.SanitizeFilename(year)
	if format == formatHTML {
		data, err := a.engine.RenderHTML(ctx, doc)
		return data, base + ".html", err
	}
	data, err := a.engine.RenderPDF(ctx, doc, bnccdoc.ProfileYearly)
	return data, base + ".pdf", err
}

// branding loads the settings singleton and the owner. A missing user
// yields nil so the composer prints its placeholder.
func branding(ctx context.Context, a *app, userID int64) (*bnccdoc.Settings, *bnccdoc.User, error) {
	settings, err := a.store.Settings.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	user, err := a.store.Users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return settings, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return settings, user, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- exported documents are meant to be shared
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
