package bnccdoc

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilPlan      = errors.New("plan cannot be nil")
	ErrEmptyPlanSet = errors.New("no plans to export")
	ErrEmptyYear    = errors.New("school year cannot be empty")
	ErrCompose      = errors.New("document composition failed")
	ErrTemplate     = errors.New("document template rendering failed")

	// Browser and PDF errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRenderTimeout  = errors.New("render exceeded its time budget")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Other outputs.
	ErrDOCXGeneration = errors.New("DOCX generation failed")
	ErrArchive        = errors.New("archive creation failed")

	// Export config errors.
	ErrInvalidExportConfig = errors.New("invalid export configuration")
)
