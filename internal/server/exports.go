package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/fileutil"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// Download content types.
const (
	mimePDF  = "application/pdf"
	mimeZIP  = "application/zip"
	mimeHTML = "text/html; charset=utf-8"
)

// planDocument loads the plan, settings and requesting user and composes
// the single-plan HTML.
func (s *Server) planDocument(c *gin.Context) (*bnccdoc.Plan, string, error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return nil, "", err
	}
	ctx := c.Request.Context()
	owner := currentUserID(c)

	p, err := s.deps.Planning.Get(ctx, owner, id)
	if err != nil {
		return nil, "", err
	}
	settings, user, err := s.branding(ctx, owner)
	if err != nil {
		return nil, "", err
	}

	doc, err := s.deps.Composer.ComposePlan(ctx, bnccdoc.PlanInput{Plan: p, Settings: settings, User: user})
	if err != nil {
		return nil, "", err
	}
	return p, doc, nil
}

// branding loads the settings singleton and the requesting user. A missing
// user yields nil so the composer falls back to its placeholder.
func (s *Server) branding(ctx context.Context, userID int64) (*bnccdoc.Settings, *bnccdoc.User, error) {
	settings, err := s.deps.Store.Settings.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.deps.Store.Users.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, err
		}
		user = nil
	}
	return settings, user, nil
}

// renderContext detaches a render from client disconnects. The engine and
// the exporter enforce their own time budgets.
func renderContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// GET /api/plans/:id/pdf
func (s *Server) planPDF(c *gin.Context) {
	p, doc, err := s.planDocument(c)
	if err != nil {
		fail(c, err, msgPDFFailed)
		return
	}
	pdf, err := s.deps.Renderer.RenderPDF(renderContext(c), doc, bnccdoc.ProfilePlan)
	if err != nil {
		fail(c, err, msgPDFFailed)
		return
	}
	attachment(c, mimePDF, "Planejamento_"+fileutil.SanitizeFilename(p.SkillCode)+".pdf", pdf)
}

// GET /api/plans/:id/docx
func (s *Server) planDOCX(c *gin.Context) {
	_, doc, err := s.planDocument(c)
	if err != nil {
		fail(c, err, msgDOCXFailed)
		return
	}
	docx, err := s.deps.Renderer.RenderDOCX(c.Request.Context(), doc)
	if err != nil {
		fail(c, err, msgDOCXFailed)
		return
	}
	attachment(c, bnccdoc.DOCXMIMEType, s.opts.DOCXFilename, docx)
}

// GET /api/plans/:id/html
func (s *Server) planHTML(c *gin.Context) {
	_, doc, err := s.planDocument(c)
	if err != nil {
		fail(c, err, msgHTMLFailed)
		return
	}
	html, err := s.deps.Renderer.RenderHTML(c.Request.Context(), doc)
	if err != nil {
		fail(c, err, msgHTMLFailed)
		return
	}
	c.Data(http.StatusOK, mimeHTML, html)
}

// GET /api/plans/batch-pdf?year=
func (s *Server) yearlyPDF(c *gin.Context) {
	year := strings.TrimSpace(c.Query("year"))
	if year == "" {
		abort(c, http.StatusBadRequest, msgYearRequired)
		return
	}
	ctx := c.Request.Context()
	owner := currentUserID(c)

	plans, err := s.deps.Store.Plans.ListByYear(ctx, owner, year)
	if err != nil {
		fail(c, err, msgYearlyFailed)
		return
	}
	if len(plans) == 0 {
		abort(c, http.StatusNotFound, msgNoPlansForYear)
		return
	}
	settings, user, err := s.branding(ctx, owner)
	if err != nil {
		fail(c, err, msgYearlyFailed)
		return
	}

	doc, err := s.deps.Composer.ComposeYearly(ctx, bnccdoc.YearlyInput{
		Year: year, Plans: plans, Settings: settings, User: user,
	})
	if err != nil {
		fail(c, err, msgYearlyFailed)
		return
	}
	pdf, err := s.deps.Renderer.RenderPDF(renderContext(c), doc, bnccdoc.ProfileYearly)
	if err != nil {
		fail(c, err, msgYearlyFailed)
		return
	}
	attachment(c, mimePDF, "Curriculo_Anual_"+yearFilename(year)+".pdf", pdf)
}

// GET /api/admin/batch-export (administrators only)
func (s *Server) batchExport(c *gin.Context) {
	ctx := c.Request.Context()
	records, err := s.deps.Store.Plans.ListWithOwners(ctx)
	if err != nil {
		fail(c, err, msgBatchFailed)
		return
	}
	settings, err := s.deps.Store.Settings.Get(ctx)
	if err != nil {
		fail(c, err, msgBatchFailed)
		return
	}

	exportCtx, cancel := context.WithTimeout(renderContext(c), s.opts.BatchTimeout)
	defer cancel()

	var archive []byte
	if s.opts.BatchWorkers > 1 {
		archive, err = s.deps.Exporter.ExportConcurrent(exportCtx, settings, records, s.opts.BatchWorkers)
	} else {
		archive, err = s.deps.Exporter.Export(exportCtx, settings, records)
	}
	if err != nil {
		fail(c, err, msgBatchFailed)
		return
	}
	s.log.Info("batch export completed",
		zap.Int("plans", len(records)), zap.Int("bytes", len(archive)), zap.Int("workers", s.opts.BatchWorkers))
	attachment(c, mimeZIP, bnccdoc.ArchiveFilename, archive)
}

// attachment sends data as a named download.
func attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// yearFilename turns a school year label into a file name component:
// "5º Ano" becomes "5_Ano".
func yearFilename(year string) string {
	return fileutil.SanitizeFilename(year)
}
