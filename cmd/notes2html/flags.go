package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page metadata flags.
type pageFlags struct {
	title       string
	author      string
	domain      string
	description string
}

// assetFlags holds rendering and styling flags.
type assetFlags struct {
	engine    string
	style     string // name or path of the page style
	assetPath string // override asset directory
	css       string // extra CSS file appended to the page
	highlight bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	fragment bool // write the note body only
	pdf      bool // also export a PDF next to the page
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	page       pageFlags
	assets     assetFlags
	outputMode outputFlags
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	port    int
	noOpen  bool
	noBuild bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addPageFlags adds page metadata flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.title, "title", "", "page title (default: from file name)")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.domain, "domain", "", "site base URL")
	fs.StringVar(&f.description, "description", "", "page description (default: first prose line)")
}

// addAssetFlags adds rendering flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.engine, "engine", "", "markdown engine: notes, commonmark")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.css, "css", "", "extra CSS file")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.fragment, "fragment", false, "write the HTML fragment only")
	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF (needs Chrome)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &serveFlags{}

	fs.IntVarP(&f.port, "port", "p", 0, "port to listen on (default 8000)")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open a browser")
	fs.BoolVar(&f.noBuild, "no-build", false, "do not rebuild notes on change")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
