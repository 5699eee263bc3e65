package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *zap.Logger      // operational logs; nil means discard
	OpenBrowser func(url string) // used by serve
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		OpenBrowser: launcher.Open,
	}
}

// logger returns env.Logger or a no-op logger.
func (env *Environment) logger() *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}
