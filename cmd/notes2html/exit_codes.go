package main

import (
	"errors"
	"os"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
	"github.com/lsy641/notes2html/internal/devserver"
)

// Exit codes for the notes2html CLI.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for err. Callers must wrap with %w so
// errors.Is sees the sentinels.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, notes2html.ErrBrowserConnect) ||
		errors.Is(err, notes2html.ErrPageCreate) ||
		errors.Is(err, notes2html.ErrPageLoad) ||
		errors.Is(err, notes2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, devserver.ErrListen) ||
		errors.Is(err, devserver.ErrRootNotDir) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, notes2html.ErrEmptyMarkdown) ||
		errors.Is(err, notes2html.ErrUnknownEngine) ||
		errors.Is(err, notes2html.ErrInvalidDate) ||
		errors.Is(err, notes2html.ErrInvalidPageSize) ||
		errors.Is(err, notes2html.ErrStyleNotFound) ||
		errors.Is(err, notes2html.ErrTemplateNotFound) ||
		errors.Is(err, notes2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
