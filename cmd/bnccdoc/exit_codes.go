package main

import (
	"errors"
	"os"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/config"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// Exit codes for the bnccdoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or arguments
	ExitIO       = 3 // Output not writable, database unreachable
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitNotFound = 5 // Requested plans do not exist
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, bnccdoc.ErrBrowserConnect) ||
		errors.Is(err, bnccdoc.ErrPageCreate) ||
		errors.Is(err, bnccdoc.ErrPageLoad) ||
		errors.Is(err, bnccdoc.ErrRenderTimeout) ||
		errors.Is(err, bnccdoc.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, bnccdoc.ErrEmptyPlanSet) {
		return ExitNotFound
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, store.ErrOpen) ||
		errors.Is(err, store.ErrMigrate) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrMissingSecret) ||
		errors.Is(err, ErrExportTarget) ||
		errors.Is(err, ErrExportFormat) ||
		errors.Is(err, ErrMissingUser) {
		return ExitUsage
	}

	return ExitGeneral
}
