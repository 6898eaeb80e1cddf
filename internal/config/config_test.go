package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("TABEDIT_CONFIG_HOME", "/tmp/tabedit-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/tabedit-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/tabedit-config")
	}

	t.Setenv("TABEDIT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/tabedit" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/tabedit")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("TABEDIT_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := Default()
	if cfg.Editor != def.Editor {
		t.Fatalf("Editor = %+v, want %+v", cfg.Editor, def.Editor)
	}
	if cfg.Keymap["ctrl+s"] != "save" {
		t.Fatalf("keymap ctrl+s = %q, want save", cfg.Keymap["ctrl+s"])
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
tab-active-background = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
new-file-text = "newfile"
show-hidden = true
git-branch-symbol = "branch"

[theme]
theme = "test"
statusline-background = "#123456"

[keymap]
"ctrl+t" = "new_file"
"ctrl+n" = "quit"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.NewFileText != "newfile" {
		t.Fatalf("NewFileText = %q, want %q", cfg.Editor.NewFileText, "newfile")
	}
	if !cfg.Editor.ShowHidden {
		t.Fatalf("ShowHidden = false, want true")
	}
	if cfg.Editor.GitBranchSymbol != "branch" {
		t.Fatalf("GitBranchSymbol = %q, want %q", cfg.Editor.GitBranchSymbol, "branch")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.TabActiveBackground != "#333333" {
		t.Fatalf("TabActiveBackground = %q, want %q", cfg.Theme.TabActiveBackground, "#333333")
	}
	if cfg.Theme.StatuslineBackground != "#123456" {
		t.Fatalf("StatuslineBackground = %q, want %q", cfg.Theme.StatuslineBackground, "#123456")
	}
	if cfg.Theme.DialogBorder != Default().Theme.DialogBorder {
		t.Fatalf("DialogBorder = %q, want default", cfg.Theme.DialogBorder)
	}
	if cfg.Keymap["ctrl+t"] != "new_file" {
		t.Fatalf("keymap ctrl+t = %q, want %q", cfg.Keymap["ctrl+t"], "new_file")
	}
	if cfg.Keymap["ctrl+n"] != "quit" {
		t.Fatalf("keymap ctrl+n = %q, want %q", cfg.Keymap["ctrl+n"], "quit")
	}
	if cfg.Keymap["ctrl+o"] != "open_file" {
		t.Fatalf("keymap ctrl+o = %q, want %q", cfg.Keymap["ctrl+o"], "open_file")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestLoadMissingThemeFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[theme]
theme = "nope"
`)
	if _, err := Load(); err == nil {
		t.Fatalf("Load with missing theme succeeded")
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABEDIT_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\n")
	if _, err := Load(); err == nil {
		t.Fatalf("Load with invalid toml succeeded")
	}
}
