// Package dialog implements the editor's file picker and file writer as
// modal terminal dialogs. Each dialog takes over the screen's event loop
// until the user confirms or cancels, so callers see a synchronous call.
package dialog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/logger"
)

var (
	// ErrCancelled is returned when the user dismisses a dialog.
	ErrCancelled = errors.New("dialog cancelled")
	// ErrNotText is wrapped in an IOError when a file is not valid UTF-8.
	ErrNotText = errors.New("not UTF-8 text")
)

// IOError reports a filesystem failure behind a dialog.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// Styles used by the dialogs.
type Styles struct {
	Base     tcell.Style
	Dir      tcell.Style
	Selected tcell.Style
	Border   tcell.Style
	Title    tcell.Style
}

type Options struct {
	Dir        string // start directory; defaults to the working directory
	ShowHidden bool
	Styles     Styles
}

// Dialogs owns the modal pickers and prompts drawn on one screen.
type Dialogs struct {
	screen     tcell.Screen
	styles     Styles
	dir        string
	showHidden bool
	backdrop   func(tcell.Screen)
	crlf       map[string]bool // paths whose line breaks are all CRLF
}

func New(s tcell.Screen, opts Options) *Dialogs {
	dir := opts.Dir
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}
	return &Dialogs{
		screen:     s,
		styles:     opts.Styles,
		dir:        dir,
		showHidden: opts.ShowHidden,
		crlf:       make(map[string]bool),
	}
}

// SetBackdrop registers the function that paints what lies under a dialog.
func (d *Dialogs) SetBackdrop(fn func(tcell.Screen)) {
	d.backdrop = fn
}

// Dir returns the directory the next picker starts in.
func (d *Dialogs) Dir() string {
	return d.dir
}

func (d *Dialogs) SetDir(dir string) {
	if dir != "" {
		d.dir = dir
	}
}

// PickFile lets the user browse to a file and returns its content.
func (d *Dialogs) PickFile() (string, string, error) {
	b := newBrowser(d.dir, false, d.showHidden)
	path, err := d.runBrowser(b, "Open File")
	if err != nil {
		return "", "", err
	}
	content, err := d.ReadFile(path)
	if err != nil {
		return "", path, err
	}
	d.dir = filepath.Dir(path)
	logger.Info("file picked", "path", path, "bytes", len(content))
	return content, path, nil
}

// ReadFile loads path as editor text. A file whose line breaks are all CRLF
// is folded to LF and written back with CRLF by SaveFile.
func (d *Dialogs) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read failed", "path", path, "err", err)
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		logger.Warn("refusing binary file", "path", path)
		return "", &IOError{Op: "read", Path: path, Err: ErrNotText}
	}
	text := string(data)
	if !isCRLF(text) {
		delete(d.crlf, path)
		return text, nil
	}
	d.crlf[path] = true
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// PickFolder lets the user browse to a directory and returns it.
func (d *Dialogs) PickFolder() (string, error) {
	b := newBrowser(d.dir, true, d.showHidden)
	path, err := d.runBrowser(b, "Open Folder")
	if err != nil {
		return "", err
	}
	d.dir = path
	logger.Info("folder picked", "path", path)
	return path, nil
}

// SaveFile writes content to path, restoring CRLF line breaks for files
// that were read with them.
func (d *Dialogs) SaveFile(content, path string) error {
	return d.write(content, path, d.crlf[path])
}

// SaveAs prompts for a destination, prefilled with path, writes content
// there and returns the chosen path. The line-break style of path carries
// over to the new file.
func (d *Dialogs) SaveAs(content, path string) (string, error) {
	initial := path
	if initial == "" {
		initial = d.dir + string(filepath.Separator)
	}
	p := newPrompt("Save As", initial)
	target, err := d.runPrompt(p)
	if err != nil {
		return "", err
	}
	target = d.resolve(target)
	crlf := d.crlf[path]
	if err := d.write(content, target, crlf); err != nil {
		return "", err
	}
	if crlf {
		d.crlf[target] = true
	} else {
		delete(d.crlf, target)
	}
	d.dir = filepath.Dir(target)
	return target, nil
}

func (d *Dialogs) write(content, path string, crlf bool) error {
	if path == "" {
		return &IOError{Op: "write", Path: path, Err: errors.New("no file name")}
	}
	if crlf {
		content = strings.ReplaceAll(strings.ReplaceAll(content, "\r\n", "\n"), "\n", "\r\n")
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		logger.Warn("write failed", "path", path, "err", err)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	logger.Info("file written", "path", path, "bytes", len(content), "crlf", crlf)
	return nil
}

func (d *Dialogs) resolve(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.dir, path)
	}
	return filepath.Clean(path)
}

func (d *Dialogs) runBrowser(b *browser, title string) (string, error) {
	var picked string
	ok := d.loop(
		func(s tcell.Screen, x, y, w, h int) {
			b.render(s, d.styles, title, x, y, w, h)
		},
		func(ev *tcell.EventKey, listHeight int) bool {
			res, path := b.handleKey(ev, listHeight)
			switch res {
			case browsePicked:
				picked = path
				return true
			case browseCancelled:
				return true
			}
			return false
		},
	)
	if !ok || picked == "" {
		logger.Debug("picker cancelled", "title", title)
		return "", ErrCancelled
	}
	return picked, nil
}

func (d *Dialogs) runPrompt(p *prompt) (string, error) {
	var accepted bool
	ok := d.loop(
		func(s tcell.Screen, x, y, w, h int) {
			p.render(s, d.styles, x, y+h/2-1, w)
		},
		func(ev *tcell.EventKey, _ int) bool {
			switch p.handleKey(ev) {
			case promptAccepted:
				accepted = true
				return true
			case promptCancelled:
				return true
			}
			return false
		},
	)
	if !ok || !accepted {
		logger.Debug("prompt cancelled", "title", p.title)
		return "", ErrCancelled
	}
	return p.Value(), nil
}

// loop redraws and feeds key events to handle until it reports done.
// It returns false when the screen stops delivering events.
func (d *Dialogs) loop(draw func(s tcell.Screen, x, y, w, h int), handle func(ev *tcell.EventKey, listHeight int) bool) bool {
	for {
		x, y, w, h := d.frame()
		d.paint(draw, x, y, w, h)
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			if handle(ev, h-3) {
				return true
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

func (d *Dialogs) frame() (x, y, w, h int) {
	sw, sh := d.screen.Size()
	w = sw - 8
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = sw
	}
	h = sh - 4
	if h < 5 {
		h = sh
	}
	return (sw - w) / 2, (sh - h) / 2, w, h
}

func (d *Dialogs) paint(draw func(s tcell.Screen, x, y, w, h int), x, y, w, h int) {
	s := d.screen
	if d.backdrop != nil {
		d.backdrop(s)
	} else {
		s.Clear()
	}
	draw(s, x, y, w, h)
	s.Show()
}

func isCRLF(text string) bool {
	n := strings.Count(text, "\n")
	return n > 0 && strings.Count(text, "\r\n") == n
}
