package dialog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/ui"
)

type browseResult int

const (
	browseNone browseResult = iota
	browsePicked
	browseCancelled
)

type entryKind int

const (
	entryFile entryKind = iota
	entryDir
	entryParent // ".."
	entryHere   // "." in folder mode
)

type entry struct {
	name   string
	path   string
	kind   entryKind
	hidden bool
}

func (e entry) label() string {
	switch e.kind {
	case entryParent:
		return "../"
	case entryHere:
		return "./  (use this folder)"
	case entryDir:
		return e.name + "/"
	}
	return e.name
}

// browser is a directory listing with a selection cursor.
type browser struct {
	dir        string
	folders    bool // only directories are listed and "." picks dir
	showHidden bool
	entries    []entry
	index      int
	scroll     int
	errMsg     string
}

func newBrowser(dir string, folders, showHidden bool) *browser {
	b := &browser{folders: folders, showHidden: showHidden}
	b.chdir(dir, "")
	return b
}

// chdir lists dir and selects the entry named focus, if present.
func (b *browser) chdir(dir, focus string) {
	abs, err := filepath.Abs(dir)
	if err == nil {
		dir = abs
	}
	entries, err := b.list(dir)
	if err != nil {
		b.errMsg = err.Error()
		if b.entries != nil {
			return
		}
	} else {
		b.errMsg = ""
	}
	b.dir = dir
	b.entries = entries
	b.index = 0
	b.scroll = 0
	for i, e := range entries {
		if focus != "" && e.name == focus && e.kind == entryDir {
			b.index = i
			break
		}
	}
}

func (b *browser) list(dir string) ([]entry, error) {
	var out []entry
	if b.folders {
		out = append(out, entry{name: ".", path: dir, kind: entryHere})
	}
	if parent := filepath.Dir(dir); parent != dir {
		out = append(out, entry{name: "..", path: parent, kind: entryParent})
	}
	des, err := os.ReadDir(dir)
	if err != nil {
		return out, err
	}
	var dirs, files []entry
	for _, de := range des {
		name := de.Name()
		hidden := strings.HasPrefix(name, ".")
		if hidden && !b.showHidden {
			continue
		}
		e := entry{name: name, path: filepath.Join(dir, name), hidden: hidden}
		isDir := de.IsDir()
		if !isDir && de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(e.path); err == nil && info.IsDir() {
				isDir = true
			}
		}
		if isDir {
			e.kind = entryDir
			dirs = append(dirs, e)
		} else if !b.folders {
			files = append(files, e)
		}
	}
	byName := func(list []entry) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].name) < strings.ToLower(list[j].name)
		})
	}
	byName(dirs)
	byName(files)
	out = append(out, dirs...)
	out = append(out, files...)
	return out, nil
}

func (b *browser) current() (entry, bool) {
	if b.index < 0 || b.index >= len(b.entries) {
		return entry{}, false
	}
	return b.entries[b.index], true
}

func (b *browser) move(delta int) {
	if len(b.entries) == 0 {
		return
	}
	b.index += delta
	if b.index < 0 {
		b.index = 0
	}
	if b.index >= len(b.entries) {
		b.index = len(b.entries) - 1
	}
}

func (b *browser) up() {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return
	}
	b.chdir(parent, filepath.Base(b.dir))
}

func (b *browser) handleKey(ev *tcell.EventKey, height int) (browseResult, string) {
	if height < 1 {
		height = 1
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return browseCancelled, ""
	case tcell.KeyUp:
		b.move(-1)
	case tcell.KeyDown:
		b.move(1)
	case tcell.KeyPgUp:
		b.move(-height)
	case tcell.KeyPgDn:
		b.move(height)
	case tcell.KeyHome:
		b.move(-len(b.entries))
	case tcell.KeyEnd:
		b.move(len(b.entries))
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		b.up()
	case tcell.KeyRight:
		if e, ok := b.current(); ok && e.kind == entryDir {
			b.chdir(e.path, "")
		}
	case tcell.KeyEnter:
		e, ok := b.current()
		if !ok {
			return browseNone, ""
		}
		switch e.kind {
		case entryHere:
			return browsePicked, e.path
		case entryParent:
			b.up()
		case entryDir:
			b.chdir(e.path, "")
		default:
			return browsePicked, e.path
		}
	}
	return browseNone, ""
}

func (b *browser) ensureVisible(height int) {
	if height <= 0 {
		return
	}
	if b.index < b.scroll {
		b.scroll = b.index
	}
	if b.index >= b.scroll+height {
		b.scroll = b.index - height + 1
	}
}

func (b *browser) render(s tcell.Screen, st Styles, title string, x, y, w, h int) {
	ui.Box(s, x, y, w, h, st.Border, st.Base)
	inner := w - 2
	header := " " + title + ": " + ui.TruncateLeft(b.dir, inner-len(title)-4) + " "
	ui.DrawText(s, x+1, y, inner, header, st.Title)

	listHeight := h - 3
	b.ensureVisible(listHeight)
	for i := 0; i < listHeight; i++ {
		idx := b.scroll + i
		row := y + 1 + i
		if idx >= len(b.entries) {
			break
		}
		e := b.entries[idx]
		style := st.Base
		if e.kind != entryFile {
			style = st.Dir
		}
		if idx == b.index {
			style = st.Selected
			ui.Fill(s, x+1, row, inner, 1, style)
		}
		ui.DrawText(s, x+2, row, inner-2, ui.Truncate(e.label(), inner-2), style)
	}

	footer := "Enter open  ←/Backspace up  Esc cancel"
	if b.errMsg != "" {
		footer = b.errMsg
	}
	ui.DrawText(s, x+2, y+h-2, inner-2, ui.Truncate(footer, inner-2), st.Base)
	s.HideCursor()
}
