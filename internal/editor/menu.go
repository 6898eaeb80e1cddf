package editor

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tabedit/internal/ui"
)

type menuItem struct {
	label  string
	action string
}

type menu struct {
	title string
	items []menuItem
}

var menus = []menu{
	{title: "File", items: []menuItem{
		{"New", "new_file"},
		{"Open File...", "open_file"},
		{"Open Folder...", "open_folder"},
		{"Save", "save"},
		{"Save As...", "save_as"},
		{"Close Tab", "close_tab"},
		{"Quit", "quit"},
	}},
	{title: "Edit", items: []menuItem{
		{"Copy Buffer", "copy_buffer"},
		{"Paste", "paste"},
		{"Next Tab", "next_tab"},
		{"Previous Tab", "prev_tab"},
	}},
}

// menuState tracks the open dropdown; index is -1 when the menu bar is idle.
type menuState struct {
	index int
	item  int
}

func (m menuState) open() bool {
	return m.index >= 0
}

type span struct {
	x0, x1 int // [x0, x1)
}

func (s span) contains(x int) bool {
	return x >= s.x0 && x < s.x1
}

// menuSpans returns the screen columns of each menu title on row 0.
func menuSpans() []span {
	spans := make([]span, len(menus))
	x := 1
	for i, m := range menus {
		w := runewidth.StringWidth(m.title) + 2
		spans[i] = span{x, x + w}
		x += w
	}
	return spans
}

func menuAt(x int) int {
	for i, sp := range menuSpans() {
		if sp.contains(x) {
			return i
		}
	}
	return -1
}

func (e *Editor) openMenu(i int) {
	if i < 0 || i >= len(menus) {
		return
	}
	e.menu = menuState{index: i}
}

func (e *Editor) closeMenu() {
	e.menu = menuState{index: -1}
}

// MenuOpen reports whether a dropdown is showing.
func (e *Editor) MenuOpen() bool {
	return e.menu.open()
}

func (e *Editor) hint(action string) string {
	keys := keysFor(e.keymap, action)
	if len(keys) == 0 {
		return ""
	}
	return keyDisplay(keys[0])
}

func (e *Editor) dropdownRect(i int) (x, y, w, h int) {
	m := menus[i]
	labelW, hintW := 0, 0
	for _, it := range m.items {
		labelW = max(labelW, runewidth.StringWidth(it.label))
		hintW = max(hintW, runewidth.StringWidth(e.hint(it.action)))
	}
	w = labelW + 4
	if hintW > 0 {
		w += hintW + 2
	}
	h = len(m.items) + 2
	x = menuSpans()[i].x0
	if e.width > 0 && x+w > e.width {
		x = max(0, e.width-w)
	}
	return x, 1, w, h
}

func (e *Editor) dropdownItemAt(px, py int) (int, bool) {
	if !e.menu.open() {
		return 0, false
	}
	x, y, w, h := e.dropdownRect(e.menu.index)
	if px <= x || px >= x+w-1 || py <= y || py >= y+h-1 {
		return 0, false
	}
	return py - y - 1, true
}

func (e *Editor) handleMenuKey(ev *tcell.EventKey) bool {
	items := menus[e.menu.index].items
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF10:
		e.closeMenu()
	case tcell.KeyLeft:
		e.openMenu((e.menu.index - 1 + len(menus)) % len(menus))
	case tcell.KeyRight:
		e.openMenu((e.menu.index + 1) % len(menus))
	case tcell.KeyUp:
		e.menu.item = (e.menu.item - 1 + len(items)) % len(items)
	case tcell.KeyDown:
		e.menu.item = (e.menu.item + 1) % len(items)
	case tcell.KeyHome:
		e.menu.item = 0
	case tcell.KeyEnd:
		e.menu.item = len(items) - 1
	case tcell.KeyEnter:
		action := items[e.menu.item].action
		e.closeMenu()
		return e.runAction(action)
	}
	return e.quit
}

func (e *Editor) drawMenuBar(s tcell.Screen, w int) {
	ui.ClearLine(s, 0, w, e.styles.menubar)
	for i, sp := range menuSpans() {
		style := e.styles.menubar
		if e.menu.index == i {
			style = e.styles.menuOpen
		}
		title := menus[i].title
		s.SetContent(sp.x0, 0, ' ', nil, style)
		first := []rune(title)[0]
		hot := e.styles.menuHotkey
		if e.menu.index == i {
			hot = style
		}
		s.SetContent(sp.x0+1, 0, first, nil, hot.Underline(true))
		ui.DrawText(s, sp.x0+2, 0, sp.x1-sp.x0-2, title[len(string(first)):]+" ", style)
	}
	if hint := e.hint("menu"); hint != "" {
		text := hint + " menu "
		tw := runewidth.StringWidth(text)
		last := menuSpans()[len(menus)-1].x1
		if w-tw > last+1 {
			ui.DrawText(s, w-tw, 0, tw, text, e.styles.menubar.Dim(true))
		}
	}
}

func (e *Editor) drawDropdown(s tcell.Screen) {
	x, y, w, h := e.dropdownRect(e.menu.index)
	ui.Box(s, x, y, w, h, e.styles.border, e.styles.menubar)
	for i, it := range menus[e.menu.index].items {
		style := e.styles.menubar
		if i == e.menu.item {
			style = e.styles.menuOpen
		}
		row := y + 1 + i
		ui.Fill(s, x+1, row, w-2, 1, style)
		ui.DrawText(s, x+2, row, w-4, it.label, style)
		if hint := e.hint(it.action); hint != "" {
			hw := runewidth.StringWidth(hint)
			ui.DrawText(s, x+w-2-hw, row, hw, hint, style.Dim(true))
		}
	}
}
