package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth        int    `toml:"tab-width"`
	NewFileText     string `toml:"new-file-text"`
	ShowHidden      bool   `toml:"show-hidden"`
	GitBranchSymbol string `toml:"git-branch-symbol"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	MenubarForeground    string `toml:"menubar-foreground"`
	MenubarBackground    string `toml:"menubar-background"`
	MenuHotkeyForeground string `toml:"menu-hotkey-foreground"`
	TabForeground        string `toml:"tab-foreground"`
	TabBackground        string `toml:"tab-background"`
	TabActiveForeground  string `toml:"tab-active-foreground"`
	TabActiveBackground  string `toml:"tab-active-background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	DialogForeground     string `toml:"dialog-foreground"`
	DialogBackground     string `toml:"dialog-background"`
	DialogDirForeground  string `toml:"dialog-dir-foreground"`
	DialogSelectedFg     string `toml:"dialog-selected-foreground"`
	DialogSelectedBg     string `toml:"dialog-selected-background"`
	DialogBorder         string `toml:"dialog-border"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:        4,
			NewFileText:     "",
			ShowHidden:      false,
			GitBranchSymbol: "git:",
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			MenubarForeground:    "#B3B1AD",
			MenubarBackground:    "#0F1419",
			MenuHotkeyForeground: "#59C2FF",
			TabForeground:        "#5C6773",
			TabBackground:        "#0F1419",
			TabActiveForeground:  "#0A0E14",
			TabActiveBackground:  "#E6B450",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			DialogForeground:     "#B3B1AD",
			DialogBackground:     "#0F1419",
			DialogDirForeground:  "#59C2FF",
			DialogSelectedFg:     "#0A0E14",
			DialogSelectedBg:     "#E6B450",
			DialogBorder:         "#3E4B59",
		},
		Keymap: map[string]string{
			"ctrl+n":    "new_file",
			"ctrl+o":    "open_file",
			"alt+o":     "open_folder",
			"ctrl+s":    "save",
			"alt+s":     "save_as",
			"ctrl+w":    "close_tab",
			"ctrl+q":    "quit",
			"ctrl+v":    "paste",
			"alt+c":     "copy_buffer",
			"f10":       "menu",
			"alt+f":     "menu_file",
			"alt+e":     "menu_edit",
			"alt+right": "next_tab",
			"alt+left":  "prev_tab",
			"ctrl+pgdn": "next_tab",
			"ctrl+pgup": "prev_tab",
			"alt+1":     "select_tab_1",
			"alt+2":     "select_tab_2",
			"alt+3":     "select_tab_3",
			"alt+4":     "select_tab_4",
			"alt+5":     "select_tab_5",
			"alt+6":     "select_tab_6",
			"alt+7":     "select_tab_7",
			"alt+8":     "select_tab_8",
			"alt+9":     "select_tab_9",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	meta, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if meta.IsDefined("editor", "new-file-text") {
		cfg.Editor.NewFileText = userCfg.Editor.NewFileText
	}
	if meta.IsDefined("editor", "show-hidden") {
		cfg.Editor.ShowHidden = userCfg.Editor.ShowHidden
	}
	if userCfg.Editor.GitBranchSymbol != "" {
		cfg.Editor.GitBranchSymbol = userCfg.Editor.GitBranchSymbol
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.MenubarForeground, src.MenubarForeground)
	set(&dst.MenubarBackground, src.MenubarBackground)
	set(&dst.MenuHotkeyForeground, src.MenuHotkeyForeground)
	set(&dst.TabForeground, src.TabForeground)
	set(&dst.TabBackground, src.TabBackground)
	set(&dst.TabActiveForeground, src.TabActiveForeground)
	set(&dst.TabActiveBackground, src.TabActiveBackground)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.DialogForeground, src.DialogForeground)
	set(&dst.DialogBackground, src.DialogBackground)
	set(&dst.DialogDirForeground, src.DialogDirForeground)
	set(&dst.DialogSelectedFg, src.DialogSelectedFg)
	set(&dst.DialogSelectedBg, src.DialogSelectedBg)
	set(&dst.DialogBorder, src.DialogBorder)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. The file may hold the colors at top
// level or wrapped in a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TABEDIT_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tabedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
