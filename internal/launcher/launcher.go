package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"workflow-toolbox/internal/logger"
)

// Tool describes one launchable toolbox binary.
type Tool struct {
	Name   string // display name
	Binary string // executable base name, without extension
}

// Tools returns the registry of tools the launcher can start.
func Tools() []Tool {
	return []Tool{
		{Name: "Daily Tracker", Binary: "daily-tracker"},
		{Name: "Image Automator", Binary: "image-automator"},
	}
}

// Launcher resolves and starts tool binaries as independent processes.
type Launcher struct {
	log logger.Logger
	// selfDir is the directory of the running launcher executable,
	// searched before PATH so a sibling install wins.
	selfDir string
}

func New(log logger.Logger) *Launcher {
	selfDir := ""
	if exe, err := os.Executable(); err == nil {
		selfDir = filepath.Dir(exe)
	}
	return &Launcher{log: log, selfDir: selfDir}
}

// Resolve finds the binary for a tool, preferring the launcher's own
// directory over PATH.
func (l *Launcher) Resolve(tool Tool) (string, error) {
	name := tool.Binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if l.selfDir != "" {
		candidate := filepath.Join(l.selfDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(tool.Binary)
	if err != nil {
		return "", fmt.Errorf("tool %q not found: %w", tool.Name, err)
	}
	return path, nil
}

// Start launches a tool as a detached process. The child shares no state
// with the launcher and is not waited on.
func (l *Launcher) Start(tool Tool) error {
	path, err := l.Resolve(tool)
	if err != nil {
		return err
	}

	cmd := exec.Command(path)
	cmd.Dir = l.selfDir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", tool.Name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		l.log.Warning("launcher", "release child process failed", map[string]interface{}{
			"tool": tool.Name,
			"pid":  pid,
		})
	}

	l.log.Info("launcher", "tool started", map[string]interface{}{
		"tool": tool.Name,
		"path": path,
		"pid":  pid,
	})
	return nil
}
