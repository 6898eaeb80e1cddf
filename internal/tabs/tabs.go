package tabs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("tab index out of range")
	ErrNoActiveBuffer  = errors.New("no active buffer")
)

// Buffer is one open document: its text and optional backing file.
type Buffer struct {
	ID       string
	Content  string
	Path     string // empty for scratch buffers
	Modified bool
}

// Title returns the label shown in the tab strip.
func (b Buffer) Title() string {
	if b.Path == "" {
		return "untitled"
	}
	return filepath.Base(b.Path)
}

// Manager owns the ordered buffer list and the active-buffer pointer.
// The zero value is not usable; call New.
type Manager struct {
	buffers []Buffer
	active  int // -1 when there are no buffers
}

func New() *Manager {
	return &Manager{active: -1}
}

// Len returns the number of open buffers.
func (m *Manager) Len() int {
	return len(m.buffers)
}

// Empty reports whether no buffer is open.
func (m *Manager) Empty() bool {
	return len(m.buffers) == 0
}

// Active returns the active index. ok is false only when no buffer is open.
func (m *Manager) Active() (int, bool) {
	if m.active < 0 || m.active >= len(m.buffers) {
		return 0, false
	}
	return m.active, true
}

// ActiveBuffer returns a copy of the active buffer.
func (m *Manager) ActiveBuffer() (Buffer, bool) {
	i, ok := m.Active()
	if !ok {
		return Buffer{}, false
	}
	return m.buffers[i], true
}

// Buffers returns a copy of the buffer list in display order.
func (m *Manager) Buffers() []Buffer {
	out := make([]Buffer, len(m.buffers))
	copy(out, m.buffers)
	return out
}

// Buffer returns a copy of the buffer at i.
func (m *Manager) Buffer(i int) (Buffer, error) {
	if err := m.check(i); err != nil {
		return Buffer{}, err
	}
	return m.buffers[i], nil
}

// Create appends a buffer and makes it active. It returns the new index.
func (m *Manager) Create(content, path string) int {
	m.buffers = append(m.buffers, Buffer{
		ID:      uuid.NewString(),
		Content: content,
		Path:    path,
	})
	m.active = len(m.buffers) - 1
	return m.active
}

// SetActiveText replaces the active buffer's content. With no buffer open
// it creates a scratch buffer holding text instead and reports true.
func (m *Manager) SetActiveText(text string) bool {
	i, ok := m.Active()
	if !ok {
		m.Create(text, "")
		return true
	}
	b := &m.buffers[i]
	if b.Content != text {
		b.Content = text
		b.Modified = true
	}
	return false
}

// SetActivePath rebinds the active buffer to path.
func (m *Manager) SetActivePath(path string) error {
	i, ok := m.Active()
	if !ok {
		return ErrNoActiveBuffer
	}
	m.buffers[i].Path = path
	return nil
}

// MarkSaved records a successful write of buffer i to path.
func (m *Manager) MarkSaved(i int, path string) error {
	if err := m.check(i); err != nil {
		return err
	}
	m.buffers[i].Path = path
	m.buffers[i].Modified = false
	return nil
}

// Select makes buffer i active.
func (m *Manager) Select(i int) error {
	if err := m.check(i); err != nil {
		return err
	}
	m.active = i
	return nil
}

// Close removes buffer i. Buffers after i keep their relative order and the
// active pointer follows the buffer it pointed at; closing the active buffer
// selects the nearest lower slot.
func (m *Manager) Close(i int) error {
	if err := m.check(i); err != nil {
		return err
	}
	m.buffers = append(m.buffers[:i], m.buffers[i+1:]...)
	if len(m.buffers) == 0 {
		m.active = -1
		return nil
	}
	if i < m.active || (i == m.active && m.active > 0) {
		m.active--
	}
	if m.active > len(m.buffers)-1 {
		m.active = len(m.buffers) - 1
	}
	return nil
}

// Next activates the buffer after the active one, wrapping around.
func (m *Manager) Next() {
	if len(m.buffers) == 0 {
		return
	}
	m.active = (m.active + 1) % len(m.buffers)
}

// Prev activates the buffer before the active one, wrapping around.
func (m *Manager) Prev() {
	if len(m.buffers) == 0 {
		return
	}
	m.active = (m.active - 1 + len(m.buffers)) % len(m.buffers)
}

func (m *Manager) check(i int) error {
	if i < 0 || i >= len(m.buffers) {
		return fmt.Errorf("%w: %d (open: %d)", ErrIndexOutOfRange, i, len(m.buffers))
	}
	return nil
}
