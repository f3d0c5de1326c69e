// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"macdev-cli/internal/issue"
)

// writeConfigFile writes content to config.cue in a fresh temp config
// dir and points the package override at it.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Build.Command != defaults.Build.Command {
		t.Errorf("build command = %q, want default %q", cfg.Build.Command, defaults.Build.Command)
	}
	if cfg.Test.Runner != defaults.Test.Runner {
		t.Errorf("test runner = %q, want default %q", cfg.Test.Runner, defaults.Test.Runner)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	writeConfigFile(t, `
test: {
	runner: "pytest"
	develop_flag: ""
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Test.Runner != "pytest" {
		t.Errorf("test runner = %q, want pytest", cfg.Test.Runner)
	}
	if cfg.Test.DevelopFlag != "" {
		t.Errorf("develop flag = %q, want empty (explicitly cleared)", cfg.Test.DevelopFlag)
	}
	// Untouched sections keep their defaults.
	if cfg.Build.Command != "./build-app.sh" {
		t.Errorf("build command = %q, want default", cfg.Build.Command)
	}
	if cfg.Venv.Dir != ".venv" {
		t.Errorf("venv dir = %q, want default", cfg.Venv.Dir)
	}
}

func TestLoadFullConfig(t *testing.T) {
	writeConfigFile(t, `
build: {
	command: "/opt/app/build.sh"
	args: ["--release"]
}
test: {
	runner: "tox"
	develop_flag: "--develop"
}
venv: {
	dir: "venv311"
}
version_manager: {
	command: "asdf"
	args: ["env"]
	disabled: true
}
ui: {
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Build.Command != "/opt/app/build.sh" {
		t.Errorf("build command = %q", cfg.Build.Command)
	}
	if len(cfg.Build.Args) != 1 || cfg.Build.Args[0] != "--release" {
		t.Errorf("build args = %v", cfg.Build.Args)
	}
	if cfg.Venv.Dir != "venv311" {
		t.Errorf("venv dir = %q", cfg.Venv.Dir)
	}
	if cfg.VersionManager.Command != "asdf" {
		t.Errorf("version manager = %q", cfg.VersionManager.Command)
	}
	if !cfg.VersionManager.Disabled {
		t.Error("version manager should be disabled")
	}
	if !cfg.UI.Verbose {
		t.Error("verbose should be true")
	}
}

func TestLoadInvalidCUESyntax(t *testing.T) {
	writeConfigFile(t, `build: { command: `)

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil {
		t.Fatal("Load() accepted malformed CUE")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Errorf("error is not actionable: %v", err)
	}
}

func TestLoadSchemaViolation(t *testing.T) {
	writeConfigFile(t, `build: { command: 42 }`)

	if _, err := NewProvider().Load(context.Background(), LoadOptions{}); err == nil {
		t.Fatal("Load() accepted a non-string build command")
	}
}

func TestLoadRejectsWhitespaceCommand(t *testing.T) {
	writeConfigFile(t, `build: { command: "   " }`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil {
		t.Fatal("Load() accepted a whitespace-only build command")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`test: { runner: "nox" }`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Test.Runner != "nox" {
		t.Errorf("test runner = %q, want nox", cfg.Test.Runner)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("Load() succeeded with a missing explicit config path")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error is not actionable: %v", err)
	}
	if !ae.HasSuggestions() {
		t.Error("missing-file error carries no suggestions")
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); err == nil {
		t.Fatal("Load() succeeded with a canceled context")
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	defaults := DefaultConfig()
	defaults.Build.Args = []string{"--release", "--sign"}
	defaults.UI.Verbose = true

	writeConfigFile(t, GenerateCUE(defaults))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() of generated CUE failed: %v", err)
	}

	if cfg.Build.Command != defaults.Build.Command {
		t.Errorf("build command = %q, want %q", cfg.Build.Command, defaults.Build.Command)
	}
	if len(cfg.Build.Args) != 2 {
		t.Errorf("build args = %v, want 2 entries", cfg.Build.Args)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose lost in round trip")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(data), `runner: "tox"`) {
		t.Errorf("generated config missing defaults:\n%s", data)
	}

	// A second call must not clobber an existing file.
	if err := os.WriteFile(path, []byte(`test: { runner: "pytest" }`), 0o644); err != nil {
		t.Fatalf("failed to overwrite config: %v", err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "pytest") {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestSaveThenLoad(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.Venv.Dir = "custom-venv"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}
	if loaded.Venv.Dir != "custom-venv" {
		t.Errorf("venv dir = %q, want custom-venv", loaded.Venv.Dir)
	}
}

func TestConfigFilePathUsesOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("ConfigFilePath() = %q, want under override dir", path)
	}
}
