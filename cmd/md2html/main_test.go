package main

// Notes:
// - runMain: we test dispatch and exit codes. Full builds and conversions
//   are covered in build_test.go and convert_test.go.
// - main() itself only wires os.Args and os.Exit and is not tested.

import (
	"bytes"
	"strings"
	"testing"
)

// newTestEnv returns an Environment with captured output.
func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"build", true},
		{"convert", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"doc.md", false},
		{"Build", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"md2html"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2html"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"md2html", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2html " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"md2html", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2html", "Commands:"},
		},
		{
			name:         "--help shows usage",
			args:         []string{"md2html", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:"},
		},
		{
			name:         "help build shows build help",
			args:         []string{"md2html", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2html build", "MD2HTML_CONTENT_DIR"},
		},
		{
			name:         "help unknown command exits with ExitUsage",
			args:         []string{"md2html", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: nope"},
		},
		{
			name:         "build -h prints usage and exits 0",
			args:         []string{"md2html", "build", "-h"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2html build"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"md2html", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"md2html", "build", "--nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage"},
		},
		{
			name:         "build rejects positional args",
			args:         []string{"md2html", "build", "extra"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"takes no arguments"},
		},
		{
			name:         "invalid worker count exits with ExitUsage",
			args:         []string{"md2html", "build", "-w", "99"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "unsupported shell exits with ExitUsage",
			args:         []string{"md2html", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "convert without input exits with ExitIO",
			args:         []string{"md2html", "convert"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified"},
		},
		{
			name:     "convert nonexistent file exits with ExitIO",
			args:     []string{"md2html", "convert", "nonexistent.md"},
			wantCode: ExitIO,
		},
		{
			name:     "convert non-markdown file exits with ExitUsage",
			args:     []string{"md2html", "convert", "notes.txt"},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv("")
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSetMaxProcs - Verbose reporting
// ---------------------------------------------------------------------------

func TestSetMaxProcs(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	setMaxProcs([]string{"md2html", "build"}, &quiet)
	if quiet.Len() != 0 {
		t.Errorf("non-verbose run wrote %q", quiet.String())
	}
}
