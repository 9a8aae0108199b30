package bnccdoc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-bnccdoc/internal/docx"
	"github.com/alnah/go-bnccdoc/internal/fileutil"
	"github.com/alnah/go-bnccdoc/internal/pipeline"
)

// DOCXMIMEType is the content type of RenderDOCX output.
const DOCXMIMEType = docx.MIMEType

// Engine renders composed documents to PDF, DOCX or HTML.
// Every PDF render owns its browser; nothing is shared between calls.
type Engine struct {
	launcher      browserLauncher
	loadTimeout   time.Duration
	renderTimeout time.Duration
	brand         string
	now           func() time.Time
	log           *zap.Logger
}

// NewEngine creates an Engine. Chrome is launched lazily on each PDF render.
func NewEngine(opts ...Option) *Engine {
	o := applyOptions(opts)

	e := &Engine{
		launcher:      o.launcher,
		loadTimeout:   o.loadTimeout,
		renderTimeout: o.renderTimeout,
		brand:         o.brand,
		now:           o.now,
		log:           o.logger,
	}
	// Create the rod launcher if not injected (e.g., by tests)
	if e.launcher == nil {
		e.launcher = newRodLauncher(o.browserBin, o.noSandbox, o.logger)
	}
	return e
}

// RenderPDF prints doc with the given profile. The browser is launched for
// this call and released on every path, including load timeouts.
func (e *Engine) RenderPDF(ctx context.Context, doc string, profile PDFProfile) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.renderTimeout)
	defer cancel()

	started := time.Now()
	guard, err := acquireBrowser(ctx, e.launcher, e.log)
	if err != nil {
		return nil, e.budgetError(ctx, err)
	}
	defer func() { _ = guard.Release() }()

	pdf, err := e.printDocument(ctx, guard, doc, profile)
	if err != nil {
		e.log.Error("pdf render failed",
			zap.Stringer("profile", profile), zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return nil, e.budgetError(ctx, err)
	}

	e.log.Info("pdf rendered",
		zap.Stringer("profile", profile), zap.Int("bytes", len(pdf)), zap.Duration("elapsed", time.Since(started)))
	return pdf, nil
}

// printDocument renders doc on a fresh page of an acquired browser and
// closes the page before returning.
func (e *Engine) printDocument(ctx context.Context, guard *browserGuard, doc string, profile PDFProfile) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	page, err := guard.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			e.log.Debug("page close failed", zap.Error(cerr))
		}
	}()

	if err := page.Load(ctx, "file://"+path, e.loadTimeout); err != nil {
		return nil, err
	}
	return page.PDF(ctx, profile.printOptions(e.brand, e.now()))
}

// budgetError tags failures caused by the render budget running out, so
// callers can tell a slow render from a broken one.
func (e *Engine) budgetError(ctx context.Context, err error) error {
	if errors.Is(err, ErrRenderTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	return err
}

// RenderDOCX converts the body of doc to a Word document with unbreakable
// table rows and a brand footer carrying page numbers.
func (e *Engine) RenderDOCX(ctx context.Context, doc string) ([]byte, error) {
	body, err := pipeline.ExtractBody(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXGeneration, err)
	}

	out, err := docx.Convert(ctx, body, docx.Options{
		CantSplitRows: true,
		Footer:        e.brand,
		PageNumbers:   true,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrDOCXGeneration, err)
	}
	return out, nil
}

// RenderHTML returns doc unchanged. No browser is involved.
func (e *Engine) RenderHTML(ctx context.Context, doc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
