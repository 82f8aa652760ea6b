package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace represents the project directory logoforge operates in: the
// prompts manifest lives at its root and runs are written under out/.
type Workspace struct {
	RootPath   string
	OutPath    string
	ConfigPath string
}

// New creates a Workspace rooted at LOGOFORGE_ROOT or the current directory
func New() (*Workspace, error) {
	root := os.Getenv("LOGOFORGE_ROOT")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Workspace{
		RootPath:   root,
		OutPath:    filepath.Join(root, "out"),
		ConfigPath: configPath,
	}, nil
}

// PromptsPath returns the absolute path of a prompts manifest. Relative
// names resolve against the workspace root.
func (w *Workspace) PromptsPath(name string) string {
	if name == "" {
		name = "prompts.json"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.RootPath, name)
}

// RunPath returns the directory for a run id
func (w *Workspace) RunPath(id string) string {
	return filepath.Join(w.OutPath, id)
}

// EnvPath returns the .env file location at the workspace root
func (w *Workspace) EnvPath() string {
	return filepath.Join(w.RootPath, ".env")
}

// EnsureOut creates the out/ directory if missing
func (w *Workspace) EnsureOut() error {
	if err := os.MkdirAll(w.OutPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// getConfigPath returns the config file location
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "logoforge", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "logoforge", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "logoforge", "config.yaml"), nil
}
