package editor

import "testing"

func TestPositionAndOffset(t *testing.T) {
	text := []rune("ab\ncde\n\nf")
	cases := []struct{ off, row, col int }{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{6, 1, 3},
		{7, 2, 0},
		{9, 3, 1},
	}
	for _, c := range cases {
		row, col := position(text, c.off)
		if row != c.row || col != c.col {
			t.Fatalf("position(%d) = (%d,%d), want (%d,%d)", c.off, row, col, c.row, c.col)
		}
		if got := offsetOf(text, c.row, c.col); got != c.off {
			t.Fatalf("offsetOf(%d,%d) = %d, want %d", c.row, c.col, got, c.off)
		}
	}
	if got := offsetOf(text, 0, 99); got != 2 {
		t.Fatalf("offsetOf clamps col: got %d, want 2", got)
	}
	if got := offsetOf(text, 99, 0); got != 8 {
		t.Fatalf("offsetOf clamps row: got %d, want 8", got)
	}
}

func TestInsertAndDelete(t *testing.T) {
	text, cur := insertAt([]rune("héllo"), 1, "ü")
	if string(text) != "hüéllo" || cur != 2 {
		t.Fatalf("insertAt = %q,%d", string(text), cur)
	}
	text, cur = deleteBefore(text, cur)
	if string(text) != "héllo" || cur != 1 {
		t.Fatalf("deleteBefore = %q,%d", string(text), cur)
	}
	if got := string(deleteAt(text, 1)); got != "hllo" {
		t.Fatalf("deleteAt = %q", got)
	}
	if got := string(deleteAt(text, 5)); got != "héllo" {
		t.Fatalf("deleteAt past end = %q", got)
	}
}

func TestVisualColumns(t *testing.T) {
	line := []rune("a\t世b")
	// a=1, tab to 4, 世=2, b=1
	if got := visualCol(line, 2, 4); got != 4 {
		t.Fatalf("visualCol after tab = %d, want 4", got)
	}
	if got := visualCol(line, 3, 4); got != 6 {
		t.Fatalf("visualCol after wide rune = %d, want 6", got)
	}
	if got := colAtVisual(line, 5, 4); got != 2 {
		t.Fatalf("colAtVisual(5) = %d, want 2", got)
	}
	if got := colAtVisual(line, 40, 4); got != len(line) {
		t.Fatalf("colAtVisual past end = %d", got)
	}
}
