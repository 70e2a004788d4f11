package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noOpenxrTomlMessage = "no openxr.toml found\nplease specify the registry explicitly, e.g.:\n  openxr-zig generate path/to/xr.xml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Generate generateConfig `toml:"generate"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type generateConfig struct {
	Registry string   `toml:"registry"`
	Out      string   `toml:"out"`
	Tags     []string `toml:"tags"`
}

func findOpenxrToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "openxr.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findOpenxrToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("generate") {
		return projectConfig{}, fmt.Errorf("%s: missing [generate]", path)
	}
	if !meta.IsDefined("generate", "registry") || strings.TrimSpace(cfg.Generate.Registry) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [generate].registry", path)
	}
	return cfg, nil
}

// registryPath resolves the manifest's registry path relative to the
// manifest root.
func (m *projectManifest) registryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Generate.Registry)))
}

// extraTags returns additional author tags declared by the manifest.
func (m *projectManifest) extraTags() []string {
	tags := make([]string, 0, len(m.Config.Generate.Tags))
	for _, t := range m.Config.Generate.Tags {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// outPath resolves the manifest's output path, empty when unset.
func (m *projectManifest) outPath() string {
	out := strings.TrimSpace(m.Config.Generate.Out)
	if out == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}
