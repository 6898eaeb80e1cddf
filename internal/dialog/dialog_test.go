package dialog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type key struct {
	k   tcell.Key
	r   rune
	mod tcell.ModMask
}

func runes(text string) []key {
	out := make([]key, 0, len(text))
	for _, r := range text {
		out = append(out, key{k: tcell.KeyRune, r: r})
	}
	return out
}

func newTestDialogs(t *testing.T, dir string) (*Dialogs, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(60, 20)
	return New(s, Options{Dir: dir}), s
}

// inject feeds keys from a goroutine; the simulation queue is small and
// blocks once full.
func inject(s tcell.SimulationScreen, keys ...key) {
	go func() {
		for _, k := range keys {
			s.InjectKey(k.k, k.r, k.mod)
		}
	}()
}

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"b.txt":         "bee",
		"A.txt":         "ay\r\nline2",
		"sub/inner.txt": "inner",
		".hidden":       "secret",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestBrowserListingOrder(t *testing.T) {
	dir := writeTree(t)
	b := newBrowser(dir, false, false)
	var got []string
	for _, e := range b.entries {
		got = append(got, e.label())
	}
	want := []string{"../", "sub/", "A.txt", "b.txt"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("entries = %v, want %v", got, want)
	}

	b = newBrowser(dir, false, true)
	found := false
	for _, e := range b.entries {
		if e.name == ".hidden" {
			found = true
		}
	}
	if !found {
		t.Fatalf("hidden file not listed with showHidden")
	}
}

func TestBrowserFolderMode(t *testing.T) {
	dir := writeTree(t)
	b := newBrowser(dir, true, false)
	if len(b.entries) != 3 {
		t.Fatalf("entries = %d, want 3 (., .., sub)", len(b.entries))
	}
	if b.entries[0].kind != entryHere {
		t.Fatalf("first entry kind = %v, want entryHere", b.entries[0].kind)
	}
}

func TestPickFile(t *testing.T) {
	dir := writeTree(t)
	d, s := newTestDialogs(t, dir)
	inject(s,
		key{k: tcell.KeyDown},
		key{k: tcell.KeyDown},
		key{k: tcell.KeyEnter},
	)
	content, path, err := d.PickFile()
	if err != nil {
		t.Fatalf("PickFile error: %v", err)
	}
	if path != filepath.Join(dir, "A.txt") {
		t.Fatalf("path = %q, want A.txt", path)
	}
	if content != "ay\nline2" {
		t.Fatalf("content = %q, want normalized newlines", content)
	}
}

func TestPickFileDescendsIntoDirectory(t *testing.T) {
	dir := writeTree(t)
	d, s := newTestDialogs(t, dir)
	inject(s,
		key{k: tcell.KeyDown},  // sub/
		key{k: tcell.KeyEnter}, // into sub
		key{k: tcell.KeyDown},  // inner.txt
		key{k: tcell.KeyEnter},
	)
	content, path, err := d.PickFile()
	if err != nil {
		t.Fatalf("PickFile error: %v", err)
	}
	if path != filepath.Join(dir, "sub", "inner.txt") || content != "inner" {
		t.Fatalf("picked %q = %q", path, content)
	}
	if d.Dir() != filepath.Join(dir, "sub") {
		t.Fatalf("Dir = %q, want sub", d.Dir())
	}
}

func TestPickFileBackspaceGoesUp(t *testing.T) {
	dir := writeTree(t)
	d, s := newTestDialogs(t, filepath.Join(dir, "sub"))
	inject(s,
		key{k: tcell.KeyBackspace2},
		key{k: tcell.KeyDown}, // focus stays on sub/, move to A.txt
		key{k: tcell.KeyEnter},
	)
	_, path, err := d.PickFile()
	if err != nil {
		t.Fatalf("PickFile error: %v", err)
	}
	if path != filepath.Join(dir, "A.txt") {
		t.Fatalf("path = %q, want A.txt", path)
	}
}

func TestPickFileCancelled(t *testing.T) {
	dir := writeTree(t)
	d, s := newTestDialogs(t, dir)
	inject(s, key{k: tcell.KeyDown}, key{k: tcell.KeyEscape})
	_, _, err := d.PickFile()
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if d.Dir() != dir {
		t.Fatalf("Dir changed on cancel: %q", d.Dir())
	}
}

func TestPickFileScreenClosed(t *testing.T) {
	dir := writeTree(t)
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	d := New(s, Options{Dir: dir})
	s.Fini()
	if _, _, err := d.PickFile(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestPickFolder(t *testing.T) {
	dir := writeTree(t)
	d, s := newTestDialogs(t, dir)
	inject(s,
		key{k: tcell.KeyDown}, // ..
		key{k: tcell.KeyDown}, // sub/
		key{k: tcell.KeyEnter},
		key{k: tcell.KeyEnter}, // "." inside sub
	)
	path, err := d.PickFolder()
	if err != nil {
		t.Fatalf("PickFolder error: %v", err)
	}
	if path != filepath.Join(dir, "sub") {
		t.Fatalf("path = %q, want sub", path)
	}
	if d.Dir() != path {
		t.Fatalf("Dir = %q, want %q", d.Dir(), path)
	}
}

func TestSaveFileAndIOError(t *testing.T) {
	dir := t.TempDir()
	d, _ := newTestDialogs(t, dir)
	path := filepath.Join(dir, "out.txt")
	if err := d.SaveFile("hello", path); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello" {
		t.Fatalf("file = %q, want hello", data)
	}

	err := d.SaveFile("x", filepath.Join(dir, "missing", "out.txt"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *IOError", err)
	}
	if ioErr.Op != "write" || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("IOError = %+v", ioErr)
	}

	if err := d.SaveFile("x", ""); !errors.As(err, &ioErr) {
		t.Fatalf("empty path err = %v, want *IOError", err)
	}
}

func TestSaveAsRelativePath(t *testing.T) {
	dir := t.TempDir()
	d, s := newTestDialogs(t, dir)
	keys := append(runes("new.txt"), key{k: tcell.KeyEnter})
	inject(s, keys...)
	path, err := d.SaveAs("body", "")
	if err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	want := filepath.Join(dir, "new.txt")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, _ := os.ReadFile(want)
	if string(data) != "body" {
		t.Fatalf("file = %q, want body", data)
	}
}

func TestSaveAsEditsPrefilledPath(t *testing.T) {
	dir := t.TempDir()
	d, s := newTestDialogs(t, dir)
	current := filepath.Join(dir, "a.txt")
	inject(s,
		key{k: tcell.KeyBackspace2},
		key{k: tcell.KeyBackspace2},
		key{k: tcell.KeyBackspace2},
		key{k: tcell.KeyRune, r: 'm'},
		key{k: tcell.KeyRune, r: 'd'},
		key{k: tcell.KeyEnter},
	)
	path, err := d.SaveAs("# title", current)
	if err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	if path != filepath.Join(dir, "a.md") {
		t.Fatalf("path = %q, want a.md", path)
	}
}

func TestSaveAsCancelled(t *testing.T) {
	dir := t.TempDir()
	d, s := newTestDialogs(t, dir)
	inject(s, key{k: tcell.KeyRune, r: 'x'}, key{k: tcell.KeyEscape})
	if _, err := d.SaveAs("body", ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("cancelled save wrote %d files", len(entries))
	}
}

func TestPromptEditing(t *testing.T) {
	p := newPrompt("t", "ac")
	p.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	p.handleKey(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	if p.Value() != "abc" {
		t.Fatalf("value = %q, want abc", p.Value())
	}
	p.handleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	p.handleKey(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	if p.Value() != "bc" {
		t.Fatalf("value = %q, want bc", p.Value())
	}
	p.handleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	p.handleKey(tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl))
	if p.Value() != "" {
		t.Fatalf("value = %q, want empty", p.Value())
	}
	if res := p.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); res != promptNone {
		t.Fatalf("empty prompt accepted")
	}
}

func TestBrowserRendersTitle(t *testing.T) {
	dir := writeTree(t)
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer s.Fini()
	s.SetSize(60, 20)
	b := newBrowser(dir, false, false)
	b.render(s, Styles{}, "Open File", 0, 0, 60, 20)
	s.Show()
	cells, w, _ := s.GetContents()
	var top strings.Builder
	for x := 0; x < w; x++ {
		if len(cells[x].Runes) > 0 {
			top.WriteRune(cells[x].Runes[0])
		}
	}
	if !strings.Contains(top.String(), "Open File") {
		t.Fatalf("header = %q, want title", top.String())
	}
}

func TestReadFileRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.txt")
	if err := os.WriteFile(path, []byte("caf\xe9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, _ := newTestDialogs(t, dir)
	_, err := d.ReadFile(path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" || ioErr.Path != path {
		t.Fatalf("err = %v, want read IOError for %s", err, path)
	}
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("err = %v, want ErrNotText", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "caf\xe9\n" {
		t.Fatalf("file changed on failed read: %q", data)
	}
}

func TestPickFileRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bin.dat"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, s := newTestDialogs(t, dir)
	inject(s, key{k: tcell.KeyDown}, key{k: tcell.KeyEnter})
	if _, _, err := d.PickFile(); !errors.Is(err, ErrNotText) {
		t.Fatalf("err = %v, want ErrNotText", err)
	}
}

func TestCRLFRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dos.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, _ := newTestDialogs(t, dir)
	content, err := d.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if content != "a\nb\n" {
		t.Fatalf("content = %q, want LF in the buffer", content)
	}
	if err := d.SaveFile(content, path); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a\r\nb\r\n" {
		t.Fatalf("saved = %q, want CRLF kept", data)
	}
	if err := d.SaveFile(content+"c\n", path); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "a\r\nb\r\nc\r\n" {
		t.Fatalf("saved = %q, want CRLF on new lines too", data)
	}
}

func TestMixedLineEndingsAreNotFolded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.txt")
	body := "a\r\nb\nc"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, _ := newTestDialogs(t, dir)
	content, err := d.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if content != body {
		t.Fatalf("content = %q, want bytes unchanged", content)
	}
	if err := d.SaveFile(content, path); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != body {
		t.Fatalf("saved = %q, want %q", data, body)
	}
}

func TestSaveAsKeepsCRLF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dos.txt")
	if err := os.WriteFile(src, []byte("x\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, s := newTestDialogs(t, dir)
	content, err := d.ReadFile(src)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	keys := []key{{k: tcell.KeyCtrlU, mod: tcell.ModCtrl}}
	keys = append(keys, runes("copy.txt")...)
	keys = append(keys, key{k: tcell.KeyEnter})
	inject(s, keys...)
	target, err := d.SaveAs(content, src)
	if err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "x\r\n" {
		t.Fatalf("saved = %q, want CRLF", data)
	}
}
