package editor

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/config"
	"github.com/kobzarvs/tabedit/internal/dialog"
	"github.com/kobzarvs/tabedit/internal/gitinfo"
	"github.com/kobzarvs/tabedit/internal/logger"
	"github.com/kobzarvs/tabedit/internal/tabs"
	"github.com/kobzarvs/tabedit/internal/ui"
)

// FilePicker asks the user for a file or folder. Implementations return
// dialog.ErrCancelled when the user backs out.
type FilePicker interface {
	PickFile() (content, path string, err error)
	PickFolder() (string, error)
}

// FileWriter persists buffer content.
type FileWriter interface {
	SaveFile(content, path string) error
	SaveAs(content, path string) (string, error)
}

type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)  { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type styles struct {
	text       tcell.Style
	menubar    tcell.Style
	menuHotkey tcell.Style
	menuOpen   tcell.Style
	tab        tcell.Style
	tabActive  tcell.Style
	status     tcell.Style
	border     tcell.Style
}

type Editor struct {
	tabs   *tabs.Manager
	picker FilePicker
	writer FileWriter
	clip   Clipboard

	keymap          map[string]string
	newFileText     string
	tabWidth        int
	gitBranchSymbol string
	styles          styles

	// Per-buffer view state, keyed by Buffer.ID so it survives index shifts.
	cursors map[string]int
	scrolls map[string]int
	goalCol int

	folder    string
	gitBranch string
	status    string
	quit      bool

	menu    menuState
	pressed bool
	width   int
	height  int
	left    int // first visible text column
	cursorX int
	cursorY int
	showCur bool

	actionHook func(string)
}

func New(cfg config.Config, picker FilePicker, writer FileWriter) *Editor {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	th := cfg.Theme
	return &Editor{
		tabs:            tabs.New(),
		picker:          picker,
		writer:          writer,
		clip:            systemClipboard{},
		keymap:          keymap,
		newFileText:     cfg.Editor.NewFileText,
		tabWidth:        tabWidth,
		gitBranchSymbol: cfg.Editor.GitBranchSymbol,
		styles: styles{
			text:       ui.Style(th.Foreground, th.Background, tcell.ColorWhite, tcell.ColorBlack),
			menubar:    ui.Style(th.MenubarForeground, th.MenubarBackground, tcell.ColorWhite, tcell.ColorDarkBlue),
			menuHotkey: ui.Style(th.MenuHotkeyForeground, th.MenubarBackground, tcell.ColorAqua, tcell.ColorDarkBlue),
			menuOpen:   ui.Style(th.TabActiveForeground, th.TabActiveBackground, tcell.ColorBlack, tcell.ColorYellow),
			tab:        ui.Style(th.TabForeground, th.TabBackground, tcell.ColorGray, tcell.ColorBlack),
			tabActive:  ui.Style(th.TabActiveForeground, th.TabActiveBackground, tcell.ColorBlack, tcell.ColorYellow),
			status:     ui.Style(th.StatuslineForeground, th.StatuslineBackground, tcell.ColorWhite, tcell.ColorDarkBlue),
			border:     ui.Style(th.DialogBorder, th.MenubarBackground, tcell.ColorGray, tcell.ColorDarkBlue),
		},
		cursors: make(map[string]int),
		scrolls: make(map[string]int),
		goalCol: -1,
		menu:    menuState{index: -1},
	}
}

func (e *Editor) SetClipboard(c Clipboard) {
	e.clip = c
}

// SetActionHook registers a callback invoked with every action name the
// keymap or a menu resolves.
func (e *Editor) SetActionHook(fn func(string)) {
	e.actionHook = fn
}

// Tabs exposes the buffer list for read access.
func (e *Editor) Tabs() *tabs.Manager {
	return e.tabs
}

func (e *Editor) Status() string {
	return e.status
}

func (e *Editor) Quitting() bool {
	return e.quit
}

func (e *Editor) Folder() string {
	return e.folder
}

// SetFolder sets the directory whose git branch the status line shows.
func (e *Editor) SetFolder(path string) {
	e.folder = path
	e.RefreshGitBranch()
}

// RefreshGitBranch re-reads the branch of the open folder, falling back to
// the active buffer's file. It reports whether the branch changed.
func (e *Editor) RefreshGitBranch() bool {
	path := e.folder
	if path == "" {
		if b, ok := e.tabs.ActiveBuffer(); ok {
			path = b.Path
		}
	}
	branch := gitinfo.Branch(path)
	if branch == e.gitBranch {
		return false
	}
	e.gitBranch = branch
	return true
}

func (e *Editor) GitBranch() string {
	return e.gitBranch
}

// Cursor returns the rune offset of the cursor in the active buffer.
func (e *Editor) Cursor() int {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return 0
	}
	return e.cursors[b.ID]
}

func (e *Editor) setStatus(format string, args ...interface{}) {
	e.status = fmt.Sprintf(format, args...)
}

// Dispatch runs msg and every follow-up it produces. It reports whether the
// editor should quit.
func (e *Editor) Dispatch(msg Msg) bool {
	for msg != nil {
		msg = e.Update(msg)
	}
	return e.quit
}

// Update applies a single message and returns the follow-up, if any.
func (e *Editor) Update(msg Msg) Msg {
	switch m := msg.(type) {
	case NewFile:
		return TabNew{Content: e.newFileText}

	case TabNew:
		i := e.tabs.Create(m.Content, m.Path)
		b, _ := e.tabs.Buffer(i)
		e.cursors[b.ID] = 0
		e.goalCol = -1
		logger.Info("tab opened", "index", i, "id", b.ID, "path", m.Path)

	case OpenFile:
		return e.openFile()

	case OpenFolder:
		path, err := e.picker.PickFolder()
		if err != nil {
			e.reportPickError("open folder", err)
			return nil
		}
		e.SetFolder(path)
		e.setStatus("folder %s", path)
		logger.Info("folder opened", "path", path, "branch", e.gitBranch)

	case Save:
		i, ok := e.tabs.Active()
		if !ok {
			return nil
		}
		b, _ := e.tabs.Buffer(i)
		if b.Path == "" {
			return SaveAs{}
		}
		if err := e.writer.SaveFile(b.Content, b.Path); err != nil {
			logger.Error("save failed", "path", b.Path, "err", err)
			e.setStatus("save failed: %v", err)
			return nil
		}
		_ = e.tabs.MarkSaved(i, b.Path)
		e.setStatus("written %s", b.Path)
		logger.Info("buffer saved", "index", i, "id", b.ID, "path", b.Path)

	case SaveAs:
		i, ok := e.tabs.Active()
		if !ok {
			return nil
		}
		b, _ := e.tabs.Buffer(i)
		path, err := e.writer.SaveAs(b.Content, b.Path)
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				logger.Debug("save as cancelled", "index", i)
				return nil
			}
			target := b.Path
			var ioErr *dialog.IOError
			if errors.As(err, &ioErr) {
				target = ioErr.Path
			}
			logger.Error("save as failed", "path", target, "err", err)
			e.setStatus("save failed: %v", err)
			return nil
		}
		_ = e.tabs.MarkSaved(i, path)
		e.setStatus("written %s", path)
		logger.Info("buffer saved as", "index", i, "id", b.ID, "path", path)

	case Quit:
		e.quit = true
		logger.Info("quit requested", "open", e.tabs.Len())

	case TabSelected:
		if err := e.tabs.Select(m.Index); err != nil {
			logger.Warn("select tab", "err", err)
			e.setStatus("%v", err)
			return nil
		}
		e.goalCol = -1
		e.status = ""
		logger.Debug("tab selected", "index", m.Index)

	case TabClosed:
		b, err := e.tabs.Buffer(m.Index)
		if err != nil {
			logger.Warn("close tab", "err", err)
			e.setStatus("%v", err)
			return nil
		}
		_ = e.tabs.Close(m.Index)
		delete(e.cursors, b.ID)
		delete(e.scrolls, b.ID)
		e.goalCol = -1
		e.status = ""
		active, _ := e.tabs.Active()
		logger.Info("tab closed", "index", m.Index, "id", b.ID, "active", active, "open", e.tabs.Len())

	case NextTab:
		e.tabs.Next()
		e.goalCol = -1
		e.status = ""
	case PrevTab:
		e.tabs.Prev()
		e.goalCol = -1
		e.status = ""

	case TextUpdate:
		// A stale save or open result no longer describes the buffer.
		e.status = ""
		if e.tabs.SetActiveText(m.Text) {
			b, _ := e.tabs.ActiveBuffer()
			e.cursors[b.ID] = len([]rune(m.Text))
			logger.Info("tab created from input", "id", b.ID)
		}

	case CopyBuffer:
		b, ok := e.tabs.ActiveBuffer()
		if !ok {
			return nil
		}
		if err := e.clip.WriteAll(b.Content); err != nil {
			logger.Warn("clipboard write", "err", err)
			e.setStatus("copy failed: %v", err)
			return nil
		}
		e.setStatus("copied %d bytes", len(b.Content))

	case Paste:
		text, err := e.clip.ReadAll()
		if err != nil {
			logger.Warn("clipboard read", "err", err)
			e.setStatus("paste failed: %v", err)
			return nil
		}
		if text == "" {
			return nil
		}
		return e.insert(text)

	default:
		logger.Warn("unknown message", "msg", fmt.Sprintf("%T", msg))
	}
	return nil
}

func (e *Editor) openFile() Msg {
	content, path, err := e.picker.PickFile()
	if err != nil {
		e.reportPickError("open", err)
		return nil
	}
	i, ok := e.tabs.Active()
	if !ok {
		return TabNew{Content: content, Path: path}
	}
	// The active tab is rebound to the picked file, content and path both.
	e.tabs.SetActiveText(content)
	_ = e.tabs.MarkSaved(i, path)
	b, _ := e.tabs.Buffer(i)
	e.cursors[b.ID] = 0
	e.scrolls[b.ID] = 0
	e.goalCol = -1
	logger.Info("file opened into active tab", "index", i, "id", b.ID, "path", path)
	return nil
}

func (e *Editor) reportPickError(op string, err error) {
	if errors.Is(err, dialog.ErrCancelled) {
		logger.Debug(op+" cancelled")
		return
	}
	logger.Error(op+" failed", "err", err)
	e.setStatus("%s failed: %v", op, err)
}
