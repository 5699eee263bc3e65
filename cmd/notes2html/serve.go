package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
	"github.com/lsy641/notes2html/internal/devserver"
	"github.com/lsy641/notes2html/internal/hints"
)

// runServe starts the live-reload development server over a notes
// directory.
func runServe(ctx context.Context, args []string, flags *serveFlags, env *Environment) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: serve takes at most one directory", ErrUsage)
	}
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if flags.port != 0 {
		cfg.Server.Port = flags.port
	}
	if flags.noOpen {
		cfg.Server.Open = false
	}
	if flags.noBuild {
		cfg.Server.Build = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := env.logger()
	opts := devserver.Options{
		Root:   root,
		Addr:   net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
		Logger: logger,
		Stdout: env.Stdout,
	}
	if cfg.Server.Open {
		opts.OpenBrowser = env.OpenBrowser
	}

	if cfg.Server.Build {
		conv, err := notes2html.NewConverter(converterOptions(cfg, envCfg.Timeout, env)...)
		if err != nil {
			return err
		}
		defer func() { _ = conv.Close() }()
		opts.Builder = newNoteBuilder(conv, cfg)
	}

	srv, err := devserver.New(opts)
	if err != nil {
		return err
	}
	if err := srv.Run(ctx); err != nil {
		if errors.Is(err, devserver.ErrListen) {
			return fmt.Errorf("%w%s", err, hints.ForPortInUse(cfg.Server.Port))
		}
		return err
	}
	return nil
}

// newNoteBuilder rebuilds a changed note to its default page path. The
// watcher calls it from a single goroutine, so one converter suffices.
func newNoteBuilder(conv CLIConverter, cfg *config.Config) devserver.BuildFunc {
	params := &conversionParams{cfg: cfg}
	return func(ctx context.Context, path string) (string, error) {
		f := FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, "", "", cfg.Output.Suffix),
		}
		res := convertFile(ctx, conv, f, params)
		return res.OutputPath, res.Err
	}
}
