// Package ui holds the small drawing helpers shared by the editor view and
// the modal dialogs.
package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawText draws text at (x, y) clipped to maxW cells and returns the number
// of cells used.
func DrawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) int {
	used := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if used+rw > maxW {
			break
		}
		s.SetContent(x+used, y, r, nil, style)
		used += rw
	}
	return used
}

// Fill paints a w×h rectangle with spaces.
func Fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// ClearLine paints row y with spaces across the full width.
func ClearLine(s tcell.Screen, y, w int, style tcell.Style) {
	Fill(s, 0, y, w, 1, style)
}

// Truncate shortens text to at most w cells, marking the cut with "…".
func Truncate(text string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= w {
		return text
	}
	return runewidth.Truncate(text, w, "…")
}

// TruncateLeft keeps the tail of text, useful for long paths.
func TruncateLeft(text string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= w {
		return text
	}
	runes := []rune(text)
	width := 1
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if width+rw > w {
			break
		}
		width += rw
		i--
	}
	return "…" + string(runes[i:])
}

// Box draws a single-line border around the given rectangle and fills it.
func Box(s tcell.Screen, x, y, w, h int, border, fill tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	Fill(s, x+1, y+1, w-2, h-2, fill)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, border)
		s.SetContent(col, y+h-1, tcell.RuneHLine, nil, border)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, border)
		s.SetContent(x+w-1, row, tcell.RuneVLine, nil, border)
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, border)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, nil, border)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, border)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, border)
}

// ParseColor accepts "#rrggbb", "default" or a tcell color name.
func ParseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// Style builds a style from two theme colors.
func Style(fg, bg string, fallbackFg, fallbackBg tcell.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(ParseColor(fg, fallbackFg)).
		Background(ParseColor(bg, fallbackBg))
}
