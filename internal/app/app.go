package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/config"
	"github.com/kobzarvs/tabedit/internal/dialog"
	"github.com/kobzarvs/tabedit/internal/editor"
	"github.com/kobzarvs/tabedit/internal/logger"
	"github.com/kobzarvs/tabedit/internal/ui"
)

const (
	tickInterval     = 250 * time.Millisecond
	gitCheckInterval = 2 * time.Second
)

// App is the top-level runtime for tabedit.
type App struct {
	args  []string
	debug bool
}

func New(args []string, debug bool) *App {
	return &App{args: args, debug: debug}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	if err := logger.Init(a.debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	return a.run(s, cfg)
}

func (a *App) run(s tcell.Screen, cfg config.Config) error {
	cwd, _ := os.Getwd()
	dlg := dialog.New(s, dialog.Options{
		Dir:        cwd,
		ShowHidden: cfg.Editor.ShowHidden,
		Styles:     dialogStyles(cfg.Theme),
	})
	ed := editor.New(cfg, dlg, dlg)
	dlg.SetBackdrop(ed.Draw)

	folder, err := openArgs(ed, dlg, a.args)
	if err != nil {
		return err
	}
	if folder == "" {
		folder = cwd
	}
	dlg.SetDir(folder)
	ed.SetFolder(folder)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	lastGitCheck := time.Now()
	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalized.
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			if ed.HandleMouse(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
		}
		if time.Since(lastGitCheck) > gitCheckInterval {
			lastGitCheck = time.Now()
			if ed.RefreshGitBranch() {
				logger.Debug("git branch changed", "branch", ed.GitBranch())
			}
		}
		ed.Render(s)
	}
}

// openArgs opens each command-line path as a tab. A path that does not exist
// yet becomes an empty buffer bound to it; a directory becomes the open
// folder. It returns the folder the session should start in.
func openArgs(ed *editor.Editor, dlg *dialog.Dialogs, args []string) (string, error) {
	folder := ""
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			ed.Dispatch(editor.TabNew{Path: path})
			logger.Info("new file from args", "path", path)
		case err != nil:
			return "", fmt.Errorf("open %s: %w", arg, err)
		case info.IsDir():
			folder = path
		default:
			content, err := dlg.ReadFile(path)
			if err != nil {
				return "", err
			}
			ed.Dispatch(editor.TabNew{Content: content, Path: path})
		}
		if folder == "" {
			if dir := filepath.Dir(path); isDir(dir) {
				folder = dir
			}
		}
	}
	if ed.Tabs().Len() > 1 {
		_ = ed.Tabs().Select(0)
	}
	return folder, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func dialogStyles(th config.Theme) dialog.Styles {
	base := ui.Style(th.DialogForeground, th.DialogBackground, tcell.ColorWhite, tcell.ColorDarkBlue)
	return dialog.Styles{
		Base:     base,
		Dir:      ui.Style(th.DialogDirForeground, th.DialogBackground, tcell.ColorAqua, tcell.ColorDarkBlue),
		Selected: ui.Style(th.DialogSelectedFg, th.DialogSelectedBg, tcell.ColorBlack, tcell.ColorYellow),
		Border:   ui.Style(th.DialogBorder, th.DialogBackground, tcell.ColorGray, tcell.ColorDarkBlue),
		Title:    base.Bold(true),
	}
}
