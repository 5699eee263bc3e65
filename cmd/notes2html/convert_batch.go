package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/fileutil"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently, one pooled converter per
// worker. Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// Without a converter this worker fails every job it takes.
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one note and writes its page, plus the PDF when
// requested.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, params.input(f.InputPath, string(content)))
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	page := res.HTML
	if params.fragment {
		page = res.Fragment
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, page, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if res.PDF != nil {
		result.PDFPath = pdfPath(f.OutputPath)
		if err := fileutil.WriteFileAtomic(result.PDFPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// input builds the converter input for one note.
func (p *conversionParams) input(path, markdown string) notes2html.Input {
	in := notes2html.Input{
		Markdown:     markdown,
		Title:        p.title,
		Description:  p.description,
		Keywords:     p.cfg.Keywords,
		CSS:          p.css,
		SourceDir:    filepath.Dir(path),
		FragmentOnly: p.fragment,
	}
	if in.Title == "" {
		in.Title = defaultTitle(path)
	}
	if p.pdf && !p.fragment {
		in.PDF = &notes2html.PDFSettings{Size: p.cfg.PDF.Size}
	}
	return in
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each conversion and returns the failure count. A
// lone failure is left for the caller to report as the command error.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}
		if quiet {
			continue
		}

		fmt.Fprintf(env.Stdout, "Successfully converted '%s' to '%s'", r.InputPath, r.OutputPath)
		if verbose {
			fmt.Fprintf(env.Stdout, " (%v)", r.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Exported PDF '%s'\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}
