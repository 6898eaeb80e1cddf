package editor

import (
	"github.com/mattn/go-runewidth"
)

// Cursor positions are rune offsets into a buffer's content.

func lineStarts(text []rune) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineEnd(text []rune, start int) int {
	for i := start; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}

func position(text []rune, off int) (row, col int) {
	off = clamp(off, 0, len(text))
	for i := 0; i < off; i++ {
		if text[i] == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// offsetOf maps (row, col) back to an offset, clamping col to the line.
func offsetOf(text []rune, row, col int) int {
	starts := lineStarts(text)
	row = clamp(row, 0, len(starts)-1)
	start := starts[row]
	end := lineEnd(text, start)
	return start + clamp(col, 0, end-start)
}

func insertAt(text []rune, off int, s string) ([]rune, int) {
	ins := []rune(s)
	off = clamp(off, 0, len(text))
	out := make([]rune, 0, len(text)+len(ins))
	out = append(out, text[:off]...)
	out = append(out, ins...)
	out = append(out, text[off:]...)
	return out, off + len(ins)
}

func deleteBefore(text []rune, off int) ([]rune, int) {
	if off <= 0 || off > len(text) {
		return text, clamp(off, 0, len(text))
	}
	out := make([]rune, 0, len(text)-1)
	out = append(out, text[:off-1]...)
	out = append(out, text[off:]...)
	return out, off - 1
}

func deleteAt(text []rune, off int) []rune {
	if off < 0 || off >= len(text) {
		return text
	}
	out := make([]rune, 0, len(text)-1)
	out = append(out, text[:off]...)
	return append(out, text[off+1:]...)
}

// visualCol returns the screen column of rune col within line.
func visualCol(line []rune, col, tabWidth int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		x += cellWidth(line[i], x, tabWidth)
	}
	return x
}

// colAtVisual is the inverse of visualCol, used for mouse clicks.
func colAtVisual(line []rune, vx, tabWidth int) int {
	x := 0
	for i, r := range line {
		w := cellWidth(r, x, tabWidth)
		if x+w > vx {
			return i
		}
		x += w
	}
	return len(line)
}

func cellWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - x%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
