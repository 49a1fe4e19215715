package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitSuccess, "Usage: md2html <command>", ""},
		{"build", []string{"build"}, ExitSuccess, "Usage: md2html build", ""},
		{"convert", []string{"convert"}, ExitSuccess, "Usage: md2html convert <input>", ""},
		{"completion", []string{"completion"}, ExitSuccess, "Usage: md2html completion <shell>", ""},
		{"version", []string{"version"}, ExitSuccess, "Usage: md2html version", ""},
		{"help", []string{"help"}, ExitSuccess, "Usage: md2html help [command]", ""},
		{"unknown", []string{"serve"}, ExitUsage, "", "unknown command: serve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv("")
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUsage_DocumentsEveryFlag - Help text stays in sync with FlagSets
// ---------------------------------------------------------------------------

func TestUsage_DocumentsEveryFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fs    *flag.FlagSet
		usage func(io.Writer)
	}{
		{"build", newBuildFlagSet(&buildFlags{}), printBuildUsage},
		{"convert", newConvertFlagSet(&convertFlags{}), printConvertUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.usage(&buf)
			text := buf.String()

			tt.fs.VisitAll(func(f *flag.Flag) {
				if !strings.Contains(text, "--"+f.Name) {
					t.Errorf("usage does not document --%s", f.Name)
				}
				if f.Shorthand != "" && !strings.Contains(text, "-"+f.Shorthand+", --"+f.Name) {
					t.Errorf("usage does not document -%s for --%s", f.Shorthand, f.Name)
				}
			})
		})
	}
}

func TestPrintEnvironment_ListsKnownVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printEnvironment(&buf)
	for name := range knownEnvVars {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("environment help missing %s", name)
		}
	}
}
