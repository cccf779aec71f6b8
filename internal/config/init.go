package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ProjectConfigFilename = "." + appName + ".json"
)

// ProjectNeedsInitialization reports whether workingDir has no project
// configuration file yet.
func ProjectNeedsInitialization(workingDir string) (bool, error) {
	for _, name := range []string{appName + ".json", ProjectConfigFilename} {
		_, err := os.Stat(filepath.Join(workingDir, name))
		if err == nil {
			return false, nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to check project config file: %w", err)
		}
	}
	return true, nil
}

// InitProject writes a project configuration file holding the defaults, so
// they can be edited in place. An existing file is left alone.
func InitProject(workingDir string) (string, error) {
	path := filepath.Join(workingDir, ProjectConfigFilename)
	needed, err := ProjectNeedsInitialization(workingDir)
	if err != nil {
		return "", err
	}
	if !needed {
		return "", fmt.Errorf("project already has a config file in %s", workingDir)
	}

	animation := int(defaultViewport().ScrollAnimation().Milliseconds())
	cfg := Config{Viewport: defaultViewport()}
	cfg.Viewport.ScrollAnimationMS = &animation

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal project config: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create project config file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return "", fmt.Errorf("failed to write project config file: %w", err)
	}
	return path, nil
}

func defaultViewport() *ViewportConfig {
	return &ViewportConfig{
		Orientation:  OrientationVertical,
		ScrollTarget: ScrollTargetSelf,
	}
}
