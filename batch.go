package bnccdoc

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-bnccdoc/internal/fileutil"
)

// ArchiveFilename is the download name of the batch export.
const ArchiveFilename = "Exportacao_Lote_BNCC_IA.zip"

// BatchRecord is one plan of a batch export with the user who owns it.
// A nil Owner renders as DefaultTeacherName.
type BatchRecord struct {
	Plan  *Plan
	Owner *User
}

// BatchExporter renders many plans into one ZIP archive of PDFs.
type BatchExporter struct {
	composer *Composer
	engine   *Engine
	log      *zap.Logger
}

// NewBatchExporter creates an exporter from a composer and an engine.
func NewBatchExporter(c *Composer, e *Engine, opts ...Option) *BatchExporter {
	o := applyOptions(opts)
	return &BatchExporter{composer: c, engine: e, log: o.logger}
}

// Export renders records in order against one browser and returns the ZIP
// bytes. Any failure aborts the whole batch and no partial archive is
// returned; the browser is released on every path.
func (b *BatchExporter) Export(ctx context.Context, settings *Settings, records []BatchRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrEmptyPlanSet
	}
	if err := checkRecords(records); err != nil {
		return nil, err
	}

	started := time.Now()
	guard, err := acquireBrowser(ctx, b.engine.launcher, b.log)
	if err != nil {
		return nil, err
	}
	defer func() { _ = guard.Release() }()

	names := entryNames(records)
	docs := make([][]byte, len(records))
	for i, rec := range records {
		pdf, err := b.renderRecord(ctx, settings, rec, func(ctx context.Context, doc string) ([]byte, error) {
			return b.engine.printDocument(ctx, guard, doc, ProfileArchive)
		})
		if err != nil {
			b.log.Error("batch export aborted",
				zap.Int("index", i), zap.Int64("plan_id", rec.Plan.ID), zap.Error(err))
			return nil, err
		}
		docs[i] = pdf
		b.log.Debug("batch entry rendered", zap.String("entry", names[i]), zap.Int("bytes", len(pdf)))
	}

	out, err := b.archive(names, docs)
	if err != nil {
		return nil, err
	}
	b.log.Info("batch export complete",
		zap.Int("documents", len(records)), zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(started)))
	return out, nil
}

// ExportConcurrent is Export with up to workers pages rendering at once on
// the same browser. Archive entries keep the order of records. The first
// failure cancels the remaining renders.
func (b *BatchExporter) ExportConcurrent(ctx context.Context, settings *Settings, records []BatchRecord, workers int) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrEmptyPlanSet
	}
	if err := checkRecords(records); err != nil {
		return nil, err
	}
	workers = min(ResolvePoolSize(workers), len(records))

	started := time.Now()
	guard, err := acquireBrowser(ctx, b.engine.launcher, b.log)
	if err != nil {
		return nil, err
	}
	defer func() { _ = guard.Release() }()

	pool := newPagePool(guard, workers)
	defer func() {
		if cerr := pool.close(); cerr != nil {
			b.log.Debug("closing batch pages failed", zap.Error(cerr))
		}
	}()

	names := entryNames(records)
	docs := make([][]byte, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		g.Go(func() error {
			pdf, err := b.renderRecord(gctx, settings, rec, func(ctx context.Context, doc string) ([]byte, error) {
				return b.printPooled(ctx, pool, doc)
			})
			if err != nil {
				return fmt.Errorf("plan %d: %w", rec.Plan.ID, err)
			}
			docs[i] = pdf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.log.Error("concurrent batch export aborted", zap.Int("workers", workers), zap.Error(err))
		return nil, err
	}

	out, err := b.archive(names, docs)
	if err != nil {
		return nil, err
	}
	b.log.Info("batch export complete",
		zap.Int("documents", len(records)), zap.Int("workers", workers),
		zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(started)))
	return out, nil
}

// renderRecord composes one plan and prints it within the per-document
// render budget.
func (b *BatchExporter) renderRecord(ctx context.Context, settings *Settings, rec BatchRecord, printDoc func(context.Context, string) ([]byte, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.engine.renderTimeout)
	defer cancel()

	doc, err := b.composer.ComposePlan(ctx, PlanInput{Plan: rec.Plan, Settings: settings, User: rec.Owner})
	if err != nil {
		return nil, err
	}
	pdf, err := printDoc(ctx, doc)
	if err != nil {
		return nil, b.engine.budgetError(ctx, err)
	}
	return pdf, nil
}

// printPooled prints doc on a pooled page. The page goes back to the pool
// only after a successful print; a failed page is left for pool close.
func (b *BatchExporter) printPooled(ctx context.Context, pool *pagePool, doc string) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	page, err := pool.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := page.Load(ctx, "file://"+path, b.engine.loadTimeout); err != nil {
		return nil, err
	}
	pdf, err := page.PDF(ctx, ProfileArchive.printOptions(b.engine.brand, b.engine.now()))
	if err != nil {
		return nil, err
	}
	pool.release(page)
	return pdf, nil
}

// archive writes the rendered documents into an in-memory ZIP in order.
func (b *BatchExporter) archive(names []string, docs [][]byte) ([]byte, error) {
	modified := b.engine.now()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, name := range names {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, name, err)
		}
		if _, err := f.Write(docs[i]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return buf.Bytes(), nil
}

func checkRecords(records []BatchRecord) error {
	for i, rec := range records {
		if rec.Plan == nil {
			return fmt.Errorf("record %d: %w", i, ErrNilPlan)
		}
	}
	return nil
}

// EntryName returns the archive entry of one plan:
// Planejamento_<owner>_<skill>_<id>.pdf with both names made file-safe.
func EntryName(p *Plan, owner *User) string {
	name := DefaultTeacherName
	if owner != nil {
		name = orDefault(owner.Name, DefaultTeacherName)
	}
	return "Planejamento_" + fileutil.SanitizeFilename(name) + "_" +
		fileutil.SanitizeFilename(p.SkillCode) + "_" + strconv.FormatInt(p.ID, 10) + ".pdf"
}

// entryNames names every record, suffixing repeats so no entry overwrites
// another inside the archive.
func entryNames(records []BatchRecord) []string {
	names := make([]string, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		name := EntryName(rec.Plan, rec.Owner)
		seen[name]++
		for n := seen[name]; n > 1; n = seen[name] {
			candidate := name[:len(name)-len(".pdf")] + "_" + strconv.Itoa(n) + ".pdf"
			if seen[candidate] == 0 {
				seen[candidate] = 1
				name = candidate
				break
			}
			seen[name]++
		}
		names[i] = name
	}
	return names
}
