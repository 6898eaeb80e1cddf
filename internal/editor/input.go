package editor

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/logger"
)

// HandleKey processes a key event and reports whether the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if e.menu.open() {
		return e.handleMenuKey(ev)
	}
	if action, ok := e.keymap[keyString(ev)]; ok {
		return e.runAction(action)
	}
	if msg := e.editKey(ev); msg != nil {
		return e.Dispatch(msg)
	}
	return e.quit
}

// HandleMouse processes a mouse event and reports whether the editor should quit.
func (e *Editor) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		e.moveLines(-3)
		return e.quit
	case btn&tcell.WheelDown != 0:
		e.moveLines(3)
		return e.quit
	}
	pressed := btn&tcell.Button1 != 0
	click := pressed && !e.pressed
	e.pressed = pressed
	if !click {
		return e.quit
	}

	if e.menu.open() {
		if item, ok := e.dropdownItemAt(x, y); ok {
			action := menus[e.menu.index].items[item].action
			e.closeMenu()
			return e.runAction(action)
		}
		if y == 0 {
			if i := menuAt(x); i >= 0 && i != e.menu.index {
				e.openMenu(i)
				return e.quit
			}
		}
		e.closeMenu()
		return e.quit
	}

	switch {
	case y == menuRow:
		e.openMenu(menuAt(x))
	case y == tabRow:
		for _, t := range e.layoutTabs(e.width) {
			if t.close.contains(x) {
				return e.Dispatch(TabClosed{Index: t.index})
			}
			if t.label.contains(x) {
				return e.Dispatch(TabSelected{Index: t.index})
			}
		}
	case y >= textTop && y < textTop+e.textHeight():
		e.clickText(x, y)
	}
	return e.quit
}

func (e *Editor) runAction(action string) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case "menu", "menu_file":
		e.openMenu(0)
		return e.quit
	case "menu_edit":
		e.openMenu(1)
		return e.quit
	}
	msg := e.actionMsg(action)
	if msg == nil {
		return e.quit
	}
	return e.Dispatch(msg)
}

func (e *Editor) actionMsg(action string) Msg {
	switch action {
	case "new_file":
		return NewFile{}
	case "open_file":
		return OpenFile{}
	case "open_folder":
		return OpenFolder{}
	case "save":
		return Save{}
	case "save_as":
		return SaveAs{}
	case "quit":
		return Quit{}
	case "next_tab":
		return NextTab{}
	case "prev_tab":
		return PrevTab{}
	case "copy_buffer":
		return CopyBuffer{}
	case "paste":
		return Paste{}
	case "close_tab":
		if i, ok := e.tabs.Active(); ok {
			return TabClosed{Index: i}
		}
		return nil
	}
	if n, ok := strings.CutPrefix(action, "select_tab_"); ok {
		if i, err := strconv.Atoi(n); err == nil {
			return TabSelected{Index: i - 1}
		}
	}
	logger.Warn("unknown action", "action", action)
	return nil
}

// editKey turns a text-surface key into a TextUpdate, or moves the cursor
// and returns nil.
func (e *Editor) editKey(ev *tcell.EventKey) Msg {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return nil
		}
		return e.insert(string(ev.Rune()))
	case tcell.KeyEnter:
		return e.insert("\n")
	case tcell.KeyTab:
		return e.insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return e.backspace()
	case tcell.KeyDelete:
		return e.deleteForward()
	case tcell.KeyLeft:
		e.moveCursor(-1)
	case tcell.KeyRight:
		e.moveCursor(1)
	case tcell.KeyUp:
		e.moveLines(-1)
	case tcell.KeyDown:
		e.moveLines(1)
	case tcell.KeyPgUp:
		e.moveLines(-max(1, e.textHeight()-1))
	case tcell.KeyPgDn:
		e.moveLines(max(1, e.textHeight()-1))
	case tcell.KeyHome:
		e.moveHome()
	case tcell.KeyEnd:
		e.moveEnd()
	}
	return nil
}

// insert returns the TextUpdate for typing s at the cursor. With no open
// buffer the update opens a scratch buffer holding s.
func (e *Editor) insert(s string) Msg {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return TextUpdate{Text: s}
	}
	text, cur := insertAt([]rune(b.Content), e.cursors[b.ID], s)
	e.cursors[b.ID] = cur
	e.goalCol = -1
	return TextUpdate{Text: string(text)}
}

func (e *Editor) backspace() Msg {
	b, ok := e.tabs.ActiveBuffer()
	if !ok || e.cursors[b.ID] == 0 {
		return nil
	}
	text, cur := deleteBefore([]rune(b.Content), e.cursors[b.ID])
	e.cursors[b.ID] = cur
	e.goalCol = -1
	return TextUpdate{Text: string(text)}
}

func (e *Editor) deleteForward() Msg {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return nil
	}
	text := []rune(b.Content)
	if e.cursors[b.ID] >= len(text) {
		return nil
	}
	return TextUpdate{Text: string(deleteAt(text, e.cursors[b.ID]))}
}

func (e *Editor) moveCursor(delta int) {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	e.cursors[b.ID] = clamp(e.cursors[b.ID]+delta, 0, len([]rune(b.Content)))
	e.goalCol = -1
}

func (e *Editor) moveLines(delta int) {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	text := []rune(b.Content)
	row, col := position(text, e.cursors[b.ID])
	if e.goalCol < 0 {
		e.goalCol = col
	}
	e.cursors[b.ID] = offsetOf(text, row+delta, e.goalCol)
}

func (e *Editor) moveHome() {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	text := []rune(b.Content)
	row, _ := position(text, e.cursors[b.ID])
	e.cursors[b.ID] = offsetOf(text, row, 0)
	e.goalCol = -1
}

func (e *Editor) moveEnd() {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	text := []rune(b.Content)
	row, _ := position(text, e.cursors[b.ID])
	e.cursors[b.ID] = lineEnd(text, lineStarts(text)[row])
	e.goalCol = -1
}

func (e *Editor) clickText(x, y int) {
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	text := []rune(b.Content)
	starts := lineStarts(text)
	row := e.scrolls[b.ID] + y - textTop
	if row >= len(starts) {
		e.cursors[b.ID] = len(text)
		e.goalCol = -1
		return
	}
	line := text[starts[row]:lineEnd(text, starts[row])]
	col := colAtVisual(line, x+e.left, e.tabWidth)
	e.cursors[b.ID] = starts[row] + col
	e.goalCol = -1
}
