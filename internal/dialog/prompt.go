package dialog

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tabedit/internal/ui"
)

type promptResult int

const (
	promptNone promptResult = iota
	promptAccepted
	promptCancelled
)

// prompt is a single-line input with a cursor.
type prompt struct {
	title  string
	value  []rune
	cursor int
}

func newPrompt(title, initial string) *prompt {
	v := []rune(initial)
	return &prompt{title: title, value: v, cursor: len(v)}
}

func (p *prompt) Value() string {
	return string(p.value)
}

func (p *prompt) handleKey(ev *tcell.EventKey) promptResult {
	switch ev.Key() {
	case tcell.KeyEscape:
		return promptCancelled
	case tcell.KeyEnter:
		if len(p.value) == 0 {
			return promptNone
		}
		return promptAccepted
	case tcell.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case tcell.KeyRight:
		if p.cursor < len(p.value) {
			p.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.value)
	case tcell.KeyCtrlU:
		p.value = p.value[p.cursor:]
		p.cursor = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursor > 0 {
			p.value = append(p.value[:p.cursor-1], p.value[p.cursor:]...)
			p.cursor--
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.value) {
			p.value = append(p.value[:p.cursor], p.value[p.cursor+1:]...)
		}
	case tcell.KeyRune:
		r := ev.Rune()
		p.value = append(p.value, 0)
		copy(p.value[p.cursor+1:], p.value[p.cursor:])
		p.value[p.cursor] = r
		p.cursor++
	}
	return promptNone
}

func (p *prompt) render(s tcell.Screen, st Styles, x, y, w int) {
	ui.Box(s, x, y, w, 3, st.Border, st.Base)
	ui.DrawText(s, x+1, y, w-2, " "+p.title+" ", st.Title)

	field := w - 4
	if field < 1 {
		return
	}
	// Scroll the value so the cursor stays inside the field.
	start := 0
	for runewidth.StringWidth(string(p.value[start:p.cursor])) >= field {
		start++
	}
	ui.DrawText(s, x+2, y+1, field, string(p.value[start:]), st.Base)
	cx := x + 2 + runewidth.StringWidth(string(p.value[start:p.cursor]))
	s.ShowCursor(cx, y+1)
}
