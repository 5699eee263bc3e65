package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lsy641/notes2html/internal/config"
)

const envPrefix = "NOTES2HTML_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // NOTES2HTML_CONFIG: config file name or path
	Author     string        // NOTES2HTML_AUTHOR: site author
	Domain     string        // NOTES2HTML_DOMAIN: site base URL
	Style      string        // NOTES2HTML_STYLE: CSS style name or path
	Timeout    time.Duration // NOTES2HTML_TIMEOUT: conversion timeout
}

// knownEnvVars lists valid NOTES2HTML_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"NOTES2HTML_CONFIG":  true,
	"NOTES2HTML_AUTHOR":  true,
	"NOTES2HTML_DOMAIN":  true,
	"NOTES2HTML_STYLE":   true,
	"NOTES2HTML_TIMEOUT": true,
}

// loadEnvConfig reads NOTES2HTML_* values. An unparsable or non-positive
// timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("NOTES2HTML_CONFIG"),
		Author:     os.Getenv("NOTES2HTML_AUTHOR"),
		Domain:     os.Getenv("NOTES2HTML_DOMAIN"),
		Style:      os.Getenv("NOTES2HTML_STYLE"),
	}
	if timeout := os.Getenv("NOTES2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized NOTES2HTML_*
// variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the set variables. Flags are
// merged afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Author != "" {
		cfg.Site.Author = env.Author
	}
	if env.Domain != "" {
		cfg.Site.Domain = env.Domain
	}
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
}
