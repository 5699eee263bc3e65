package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
	"github.com/lsy641/notes2html/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the markdown files to convert. output is an explicit
// file or directory; empty falls back to out.DefaultDir, then to the
// input's own directory.
func discoverFiles(inputPath, output string, out config.OutputConfig) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveSingleOutput(inputPath, output, out),
		}}, nil
	}

	outputDir := firstNonEmpty(output, out.DefaultDir)
	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath, out.Suffix),
		})
		return nil
	})

	return files, err
}

// resolveSingleOutput picks the output for a single note. An explicit
// output naming an existing directory, or ending in a separator, receives
// the default file name.
func resolveSingleOutput(inputPath, output string, out config.OutputConfig) string {
	if output == "" {
		return resolveOutputPath(inputPath, out.DefaultDir, "", out.Suffix)
	}
	if strings.HasSuffix(output, string(filepath.Separator)) || strings.HasSuffix(output, "/") || fileutil.DirExists(output) {
		return resolveOutputPath(inputPath, output, "", out.Suffix)
	}
	return output
}

// resolveOutputPath returns <base><suffix>.html, placed in outputDir (keeping
// the path relative to baseInputDir) or next to the input.
func resolveOutputPath(inputPath, outputDir, baseInputDir, suffix string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext) + suffix + ".html"

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// defaultTitle derives a page title from a file name: "my_reading-notes.md"
// becomes "My Reading Notes".
func defaultTitle(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	if strings.TrimSpace(base) == "" {
		return notes2html.DefaultTitle
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(base)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > notes2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, notes2html.MaxPoolSize)
	}
	return nil
}
