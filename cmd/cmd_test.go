package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/talchemy/logoforge/internal/adapters/repository"
	"github.com/talchemy/logoforge/internal/core/services"
	"github.com/talchemy/logoforge/pkg/workspace"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"init", "generate", "gallery", "list", "show", "copy", "review",
		"open", "watch", "stats", "clean", "doctor", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Errorf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Errorf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "logoforge" {
		t.Errorf("Expected root command Use to be 'logoforge', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "empty",
			text:  "",
			width: 20,
			want:  "",
		},
		{
			name:  "fits on one line",
			text:  "flat vector logo",
			width: 20,
			want:  "flat vector logo",
		},
		{
			name:  "wraps on word boundary",
			text:  "minimal flat vector logo",
			width: 15,
			want:  "minimal flat\nvector logo",
		},
		{
			name:  "collapses whitespace",
			text:  "a   b\n\tc",
			width: 20,
			want:  "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestIsFinderAbort(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "abort",
			err:  fuzzyfinder.ErrAbort,
			want: true,
		},
		{
			name: "wrapped abort",
			err:  fmt.Errorf("finder: %w", fuzzyfinder.ErrAbort),
			want: true,
		},
		{
			name: "terminal failure",
			err:  errors.New("failed to open tty"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFinderAbort(tt.err); got != tt.want {
				t.Errorf("isFinderAbort(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestListConcepts_CorruptPicksWarns(t *testing.T) {
	t.Setenv("LOGOFORGE_ROOT", t.TempDir())
	ws, err := workspace.New()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	runID := "2026-08-29-10-00-00"
	runDir := ws.RunPath(runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatalf("failed to create run dir: %v", err)
	}
	manifest := `[{"id":1,"title":"Crucible T","prompt":"a crucible forming a T","file":"01-crucible-t.png"}]`
	if err := os.WriteFile(filepath.Join(runDir, "generated.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "picks.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("failed to write picks: %v", err)
	}

	prevRunRepo := runRepo
	prevListService := listService
	prevReviewService := reviewService
	prevListRun := listRun
	t.Cleanup(func() {
		runRepo = prevRunRepo
		listService = prevListService
		reviewService = prevReviewService
		listRun = prevListRun
	})

	runRepo = repository.NewFileRunRepository(ws)
	listService = services.NewListService(runRepo)
	reviewService = services.NewReviewService(runRepo)
	listRun = runID

	output := captureStdout(t, func() {
		if err := listConcepts(); err != nil {
			t.Errorf("listConcepts() returned error: %v", err)
		}
	})

	// A broken picks file is reported, but the concepts still render
	if !strings.Contains(output, "Could not read picks") {
		t.Errorf("expected a picks warning in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Crucible T") {
		t.Errorf("expected concept listing in output, got:\n%s", output)
	}
}
