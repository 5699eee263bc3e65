package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notes2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert research notes to article pages")
	fmt.Fprintln(w, "  serve      Serve notes with live reload")
	fmt.Fprintln(w, "  doctor     Check config, assets and PDF readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A markdown file given without a command is converted.")
	fmt.Fprintln(w, "Run 'notes2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notes2html convert <input> [output] [title] [author] [domain] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown notes to SEO-ready HTML article pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Markdown file or directory of notes")
	fmt.Fprintln(w, "  output    Output file (default: <name>-seo.html next to the input)")
	fmt.Fprintln(w, "  title     Page title (default: from the file name)")
	fmt.Fprintln(w, "  author    Author name")
	fmt.Fprintln(w, "  domain    Site base URL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --title <s>           Page title")
	fmt.Fprintln(w, "      --author <s>          Author name")
	fmt.Fprintln(w, "      --domain <url>        Site base URL")
	fmt.Fprintln(w, "      --description <s>     Page description (default: first prose line)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>          Markdown engine: notes, commonmark")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Mode:")
	fmt.Fprintln(w, "      --fragment            Write the HTML fragment only")
	fmt.Fprintln(w, "      --pdf                 Also export a PDF (needs Chrome)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NOTES2HTML_CONFIG, NOTES2HTML_AUTHOR, NOTES2HTML_DOMAIN,")
	fmt.Fprintln(w, "  NOTES2HTML_STYLE, NOTES2HTML_TIMEOUT override config values")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notes2html serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a notes directory and reload the browser on changes.")
	fmt.Fprintln(w, "Changed notes are rebuilt to their HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -p, --port <n>            Port to listen on (default 8000)")
	fmt.Fprintln(w, "      --no-open             Do not open a browser")
	fmt.Fprintln(w, "      --no-build            Do not rebuild notes on change")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log requests and file events")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notes2html doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that notes convert with the current config, and whether PDF")
	fmt.Fprintln(w, "export can find a browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --pdf                 Treat a missing browser as an error")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: notes2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: notes2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
