package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tabedit/internal/gitinfo"
	"github.com/kobzarvs/tabedit/internal/ui"
)

const (
	menuRow = 0
	tabRow  = 1
	textTop = 2

	maxTabTitle = 24
)

type tabSlot struct {
	index int
	text  string
	label span
	close span
}

// layoutTabs places tab labels on the strip, scrolling so the active tab is
// always visible.
func (e *Editor) layoutTabs(w int) []tabSlot {
	bufs := e.tabs.Buffers()
	if len(bufs) == 0 {
		return nil
	}
	active, _ := e.tabs.Active()
	texts := make([]string, len(bufs))
	widths := make([]int, len(bufs))
	for i, b := range bufs {
		title := ui.Truncate(b.Title(), maxTabTitle)
		if b.Modified {
			title += "*"
		}
		texts[i] = " " + title + " "
		widths[i] = runewidth.StringWidth(texts[i]) + 2 // "x "
	}

	start := 0
	total := 0
	for i := 0; i <= active; i++ {
		total += widths[i]
	}
	for total > w && start < active {
		total -= widths[start]
		start++
	}

	var slots []tabSlot
	x := 0
	for i := start; i < len(bufs); i++ {
		if x >= w {
			break
		}
		lw := widths[i] - 2
		slots = append(slots, tabSlot{
			index: i,
			text:  texts[i],
			label: span{x, x + lw},
			close: span{x + lw, x + lw + 2},
		})
		x += widths[i]
	}
	return slots
}

func (e *Editor) textHeight() int {
	return max(1, e.height-textTop-1)
}

// Draw paints the whole editor without flushing; dialogs use it as their
// backdrop.
func (e *Editor) Draw(s tcell.Screen) {
	w, h := s.Size()
	e.width, e.height = w, h
	e.drawMenuBar(s, w)
	e.drawTabs(s, w)
	e.drawText(s, w)
	e.drawStatus(s, w, h)
	if e.menu.open() {
		e.drawDropdown(s)
	}
}

// Render draws the editor, places the cursor and flushes the screen.
func (e *Editor) Render(s tcell.Screen) {
	e.Draw(s)
	if e.showCur && !e.menu.open() {
		s.ShowCursor(e.cursorX, e.cursorY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (e *Editor) drawTabs(s tcell.Screen, w int) {
	ui.ClearLine(s, tabRow, w, e.styles.tab)
	slots := e.layoutTabs(w)
	if len(slots) == 0 {
		hint := " no open files"
		if k := e.hint("new_file"); k != "" {
			hint += ", " + k + " for a new one"
		}
		ui.DrawText(s, 0, tabRow, w, hint, e.styles.tab.Dim(true))
		return
	}
	active, _ := e.tabs.Active()
	for _, t := range slots {
		style := e.styles.tab
		if t.index == active {
			style = e.styles.tabActive
		}
		ui.DrawText(s, t.label.x0, tabRow, w-t.label.x0, t.text, style)
		if t.close.x0 < w {
			ui.DrawText(s, t.close.x0, tabRow, w-t.close.x0, "x", style.Dim(true))
		}
	}
}

func (e *Editor) drawText(s tcell.Screen, w int) {
	th := e.textHeight()
	ui.Fill(s, 0, textTop, w, th, e.styles.text)
	e.showCur = false
	b, ok := e.tabs.ActiveBuffer()
	if !ok {
		return
	}
	text := []rune(b.Content)
	cur := clamp(e.cursors[b.ID], 0, len(text))
	e.cursors[b.ID] = cur
	row, col := position(text, cur)
	starts := lineStarts(text)

	top := e.scrolls[b.ID]
	if row < top {
		top = row
	}
	if row >= top+th {
		top = row - th + 1
	}
	e.scrolls[b.ID] = top

	curLine := text[starts[row]:lineEnd(text, starts[row])]
	cx := visualCol(curLine, col, e.tabWidth)
	if cx < e.left {
		e.left = cx
	}
	if cx >= e.left+w {
		e.left = cx - w + 1
	}

	for y := 0; y < th; y++ {
		r := top + y
		if r >= len(starts) {
			break
		}
		line := text[starts[r]:lineEnd(text, starts[r])]
		e.drawLine(s, line, textTop+y, w)
	}
	e.cursorX = cx - e.left
	e.cursorY = textTop + row - top
	e.showCur = true
}

func (e *Editor) drawLine(s tcell.Screen, line []rune, y, w int) {
	x := 0
	for _, r := range line {
		cw := cellWidth(r, x, e.tabWidth)
		sx := x - e.left
		x += cw
		if sx < 0 {
			continue
		}
		if sx+cw > w {
			return
		}
		if r == '\t' {
			continue
		}
		s.SetContent(sx, y, r, nil, e.styles.text)
	}
}

func (e *Editor) drawStatus(s tcell.Screen, w, h int) {
	y := h - 1
	if y < textTop {
		return
	}
	ui.ClearLine(s, y, w, e.styles.status)

	right := gitinfo.FormatBranch(e.gitBranchSymbol, e.gitBranch)
	left := " no buffer"
	if i, ok := e.tabs.Active(); ok {
		b, _ := e.tabs.Buffer(i)
		text := []rune(b.Content)
		row, col := position(text, e.cursors[b.ID])
		path := b.Path
		if path == "" {
			path = b.Title()
		}
		if b.Modified {
			path += " [+]"
		}
		left = fmt.Sprintf(" [%d/%d] %s", i+1, e.tabs.Len(), path)
		pos := fmt.Sprintf("Ln %d, Col %d", row+1, col+1)
		if right != "" {
			right = pos + "  " + right
		} else {
			right = pos
		}
	}
	if e.status != "" {
		left += "  " + e.status
	}
	right += " "

	rw := runewidth.StringWidth(right)
	if rw >= w {
		right, rw = "", 0
	}
	ui.DrawText(s, 0, y, w-rw-1, ui.Truncate(left, w-rw-1), e.styles.status)
	ui.DrawText(s, w-rw, y, rw, right, e.styles.status)
}
