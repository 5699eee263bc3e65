package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no topic", nil, "Commands:"},
		{"convert", []string{"convert"}, "[output] [title] [author] [domain]"},
		{"serve", []string{"serve"}, "--no-build"},
		{"doctor", []string{"doctor"}, "--json"},
		{"version", []string{"version"}, "Show version information."},
		{"help", []string{"help"}, "notes2html help [command]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			if err := runHelp(tt.args, env); err != nil {
				t.Fatalf("runHelp() error = %v", err)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, stdout)
			}
		})
	}

	t.Run("unknown topic", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		err := runHelp([]string{"publish"}, env)
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("error = %v, want ErrUnknownCommand", err)
		}
		if stdout.Len() != 0 || !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("stdout=%q stderr=%q", stdout, stderr)
		}
	})
}
