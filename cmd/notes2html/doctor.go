package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
	"github.com/lsy641/notes2html/internal/fileutil"
	"github.com/lsy641/notes2html/internal/hints"
)

// Check outcomes, worst last.
const (
	checkOK    = "ok"
	checkWarn  = "warn"
	checkError = "error"
)

// doctorCheck is one line of the report.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// doctorReport is what doctor prints, as text or JSON.
type doctorReport struct {
	Status string        `json:"status"`
	Checks []doctorCheck `json:"checks"`
}

func (r *doctorReport) add(name, status, format string, args ...any) {
	r.Checks = append(r.Checks, doctorCheck{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
	if rank(status) > rank(r.Status) {
		r.Status = status
	}
}

func rank(status string) int {
	switch status {
	case checkWarn:
		return 1
	case checkError:
		return 2
	}
	return 0
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	pdf    bool
	json   bool
}

// runDoctor checks that notes convert with the current settings. The
// browser only matters for PDF export: without --pdf or pdf.enabled a
// missing Chrome is a warning.
func runDoctor(args []string, env *Environment) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stdout)
	f := &doctorFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.pdf, "pdf", false, "require PDF export")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	report := diagnose(f, env)
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == checkError {
		return errDoctorFailed
	}
	return nil
}

// diagnose runs every check. Later checks use the config the first one
// loaded, or the defaults when it failed.
func diagnose(f *doctorFlags, env *Environment) *doctorReport {
	report := &doctorReport{Status: checkOK}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(f.config, envCfg)
	switch {
	case err != nil:
		report.add("config", checkError, "%v", err)
		cfg = config.DefaultConfig()
	default:
		applyEnvConfig(envCfg, cfg)
		if err := cfg.Validate(); err != nil {
			report.add("config", checkError, "%v", err)
			cfg = config.DefaultConfig()
		} else {
			report.add("config", checkOK, "%s", firstNonEmpty(f.config, envCfg.ConfigPath, "built-in defaults"))
		}
	}

	checkAssets(report, cfg, env)
	checkTempDir(report)
	checkBrowser(report, f.pdf || cfg.PDF.Enabled)
	return report
}

// checkAssets builds a converter, which resolves the engine, style and
// page template named by cfg.
func checkAssets(report *doctorReport, cfg *config.Config, env *Environment) {
	conv, err := notes2html.NewConverter(converterOptions(cfg, 0, env)...)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, notes2html.ErrStyleNotFound) {
			detail += " (available: " + strings.Join(notes2html.Styles(), ", ") + ")"
		}
		report.add("assets", checkError, "%s", detail)
		return
	}
	_ = conv.Close()
	report.add("assets", checkOK, "engine %s, style %s, template %s", cfg.Engine, cfg.Style.Name, cfg.Page.Template)
}

// checkTempDir verifies the directory PDF export stages pages in.
func checkTempDir(report *doctorReport) {
	_, cleanup, err := fileutil.WriteTempFile("doctor", "html")
	if err != nil {
		report.add("temp dir", checkError, "%s not writable: %v", os.TempDir(), err)
		return
	}
	cleanup()
	report.add("temp dir", checkOK, "%s writable", os.TempDir())
}

// checkBrowser locates Chrome the way PDF export does. required raises a
// missing browser from a warning to an error.
func checkBrowser(report *doctorReport, required bool) {
	missing := checkWarn
	if required {
		missing = checkError
	}

	path := os.Getenv("ROD_BROWSER_BIN")
	if path != "" && !fileutil.FileExists(path) {
		report.add("browser", checkError, "ROD_BROWSER_BIN points to a missing file: %s", path)
		return
	}
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			report.add("browser", missing, "Chrome/Chromium not found; PDF export needs it (install Chrome or set ROD_BROWSER_BIN)")
			return
		}
	}

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or lookup
	if err != nil {
		report.add("browser", checkWarn, "%s (version unknown: %v)", path, err)
	} else {
		report.add("browser", checkOK, "%s", strings.TrimSpace(string(out)))
	}

	if os.Getenv("ROD_NO_SANDBOX") != "1" && (hints.IsInContainer() || os.Getenv("CI") != "") {
		report.add("sandbox", checkWarn, "container or CI detected; set ROD_NO_SANDBOX=1 if Chrome fails to start")
	}
}

// printDoctorReport writes the report as one line per check.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "notes2html doctor")
	fmt.Fprintln(w)
	for _, c := range r.Checks {
		fmt.Fprintf(w, "  [%s] %-9s %s\n", strings.ToUpper(c.Status), c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case checkOK:
		fmt.Fprintln(w, "Status: Ready to convert and export PDF")
	case checkWarn:
		fmt.Fprintln(w, "Status: Ready to convert (see warnings)")
	default:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
