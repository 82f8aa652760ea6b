package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/talchemy/logoforge/internal/core/domain"
)

// resolveRun returns the run with the given ID, or the latest run when the ID is empty.
func resolveRun(ctx context.Context, runID string) (*domain.Run, error) {
	if runID == "" {
		return runRepo.Latest(ctx)
	}
	return runRepo.Get(ctx, runID)
}

// OpenFile opens a file using a custom viewer or the OS default application.
func OpenFile(path string, viewer string) error {
	var cmd *exec.Cmd

	if viewer != "" {
		// Use user-configured viewer (e.g. firefox, feh)
		cmd = exec.Command(viewer, path)
	} else {
		// Fallback to OS default
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", path)
		default:
			cmd = exec.Command("xdg-open", path)
		}
	}

	// We use Start() to detach the process so logoforge can exit while the viewer stays open
	if err := cmd.Start(); err != nil {
		if viewer != "" {
			return fmt.Errorf("failed to open '%s' with '%s': %w", path, viewer, err)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}
