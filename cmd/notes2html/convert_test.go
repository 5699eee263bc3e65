package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
)

func TestParsePositional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    positionalArgs
		wantErr error
	}{
		{"none", nil, positionalArgs{}, ErrNoInput},
		{"input only", []string{"a.md"}, positionalArgs{input: "a.md"}, nil},
		{
			name: "all five",
			args: []string{"a.md", "out.html", "A Title", "Ada", "https://x.org"},
			want: positionalArgs{input: "a.md", output: "out.html", title: "A Title", author: "Ada", domain: "https://x.org"},
		},
		{"too many", []string{"1", "2", "3", "4", "5", "6"}, positionalArgs{}, ErrUsage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePositional(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parsePositional() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(positionalArgs{})); diff != "" {
				t.Errorf("parsePositional() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flag wins over positional", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &convertFlags{page: pageFlags{author: "Flag Author"}}
		mergeFlags(flags, positionalArgs{author: "Positional Author", domain: "https://pos.example.org"}, cfg)

		if cfg.Site.Author != "Flag Author" {
			t.Errorf("Site.Author = %q, want %q", cfg.Site.Author, "Flag Author")
		}
		if cfg.Site.Domain != "https://pos.example.org" {
			t.Errorf("Site.Domain = %q, want the positional value", cfg.Site.Domain)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "paper"
		mergeFlags(&convertFlags{}, positionalArgs{}, cfg)

		if diff := cmp.Diff(config.DefaultConfig().Site, cfg.Site); diff != "" {
			t.Errorf("Site changed (-want +got):\n%s", diff)
		}
		if cfg.Style.Name != "paper" {
			t.Errorf("Style.Name = %q, want %q", cfg.Style.Name, "paper")
		}
	})

	t.Run("rendering flags", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &convertFlags{assets: assetFlags{engine: "commonmark", style: "paper", assetPath: "/assets", highlight: true}}
		mergeFlags(flags, positionalArgs{}, cfg)

		if cfg.Engine != "commonmark" || cfg.Style.Name != "paper" || cfg.Assets.BasePath != "/assets" || !cfg.Style.Highlight {
			t.Errorf("rendering flags not applied: engine=%q style=%q assets=%q highlight=%v",
				cfg.Engine, cfg.Style.Name, cfg.Assets.BasePath, cfg.Style.Highlight)
		}
	})
}

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"neither", "", 0, 0, false},
		{"env only", "", 45 * time.Second, 45 * time.Second, false},
		{"flag wins", "2m", 45 * time.Second, 2 * time.Minute, false},
		{"invalid flag", "later", 0, 0, true},
		{"zero flag", "0s", 0, 0, true},
		{"negative flag", "-1s", 0, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeoutWithEnv(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Fatalf("error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("timeout = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadCSSFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"extra.css": "body { color: red; }"})

	got, err := readCSSFile(filepath.Join(dir, "extra.css"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "body { color: red; }" {
		t.Errorf("readCSSFile() = %q", got)
	}

	if got, err := readCSSFile(""); err != nil || got != "" {
		t.Errorf("readCSSFile(\"\") = %q, %v; want empty, nil", got, err)
	}

	if _, err := readCSSFile(filepath.Join(dir, "missing.css")); !errors.Is(err, ErrReadCSS) {
		t.Errorf("error = %v, want ErrReadCSS", err)
	}
}

func TestPDFPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"note-seo.html":        "note-seo.pdf",
		"out/dir/page.html":    "out/dir/page.pdf",
		"no-extension":         "no-extension.pdf",
		"dotted.name.seo.html": "dotted.name.seo.pdf",
	}
	for in, want := range tests {
		if got := pdfPath(in); got != want {
			t.Errorf("pdfPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	cfg := config.DefaultConfig()
	cfg.Site.Author = "Ada Lovelace"

	conv, err := notes2html.NewConverter(converterOptions(cfg, 10*time.Second, env)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer func() { _ = conv.Close() }()

	res, err := conv.Convert(context.Background(), notes2html.Input{Markdown: sampleNote, Title: "Transformer"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), "Ada Lovelace") {
		t.Error("page does not carry the configured author")
	}
}

func TestRunConvert(t *testing.T) {
	t.Parallel()

	t.Run("single file default output", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"attention.md": sampleNote})
		env, stdout, stderr := testEnv()
		input := filepath.Join(dir, "attention.md")

		code := runMain([]string{"notes2html", "convert", input}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		out := filepath.Join(dir, "attention-seo.html")
		page := readFile(t, out)
		if !strings.Contains(page, "<title>Attention - Research Notes") {
			t.Errorf("page title not derived from file name:\n%s", page)
		}
		want := "Successfully converted '" + input + "' to '" + out + "'"
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout = %q, want %q", stdout, want)
		}
	})

	t.Run("bare markdown argument", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"note.md": sampleNote})
		env, _, stderr := testEnv()

		if code := runMain([]string{"notes2html", filepath.Join(dir, "note.md")}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "note-seo.html")); err != nil {
			t.Errorf("output missing: %v", err)
		}
	})

	t.Run("positional output title author", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"note.md": sampleNote})
		env, _, stderr := testEnv()
		out := filepath.Join(dir, "site", "page.html")

		code := runMain([]string{"notes2html", "convert",
			filepath.Join(dir, "note.md"), out, "Transformer Notes", "Ada Lovelace"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		page := readFile(t, out)
		if !strings.Contains(page, "<title>Transformer Notes - Research Notes | Ada Lovelace") {
			t.Errorf("positional title and author not applied:\n%s", page)
		}
	})

	t.Run("fragment", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"note.md": sampleNote})
		env, _, stderr := testEnv()

		code := runMain([]string{"notes2html", "convert", "--fragment", filepath.Join(dir, "note.md")}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		page := readFile(t, filepath.Join(dir, "note-seo.html"))
		if strings.Contains(page, "<html") {
			t.Error("fragment output contains the page shell")
		}
		if !strings.Contains(page, "Multi-head attention") {
			t.Errorf("fragment missing note content:\n%s", page)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, _, stderr := testEnv()
		input := filepath.Join(dir, "absent.md")

		code := runMain([]string{"notes2html", "convert", input}, env)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "Input file '"+input+"' not found.") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"note.txt": sampleNote})
		env, _, _ := testEnv()

		if code := runMain([]string{"notes2html", "convert", filepath.Join(dir, "note.txt")}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("empty note", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"empty.md": "   \n"})
		env, _, _ := testEnv()

		if code := runMain([]string{"notes2html", "convert", filepath.Join(dir, "empty.md")}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("directory batch", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"notes/a.md":         sampleNote,
			"notes/deep/b.md":    sampleNote,
			"notes/.drafts/c.md": sampleNote,
			"notes/readme.txt":   "ignored",
		})
		env, stdout, stderr := testEnv()
		outDir := filepath.Join(dir, "site")

		code := runMain([]string{"notes2html", "convert", "-w", "2", "-o", outDir, filepath.Join(dir, "notes")}, env)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		for _, rel := range []string{"a-seo.html", filepath.Join("deep", "b-seo.html")} {
			if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
				t.Errorf("missing %s: %v", rel, err)
			}
		}
		if _, err := os.Stat(filepath.Join(outDir, ".drafts")); err == nil {
			t.Error("hidden directory was converted")
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"note.md": sampleNote})
		env, stdout, _ := testEnv()

		if code := runMain([]string{"notes2html", "convert", "-q", filepath.Join(dir, "note.md")}, env); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if stdout.Len() != 0 {
			t.Errorf("quiet run wrote %q", stdout)
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := runMain([]string{"notes2html", "convert", "-w", "-1", "note.md"}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}
