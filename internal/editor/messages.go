package editor

// Msg is a command handled by Editor.Update.
type Msg interface {
	msg()
}

type (
	NewFile    struct{}
	OpenFile   struct{}
	OpenFolder struct{}
	Save       struct{}
	SaveAs     struct{}
	Quit       struct{}
	NextTab    struct{}
	PrevTab    struct{}
	CopyBuffer struct{}
	Paste      struct{}

	// TabNew opens a buffer holding Content, bound to Path when non-empty.
	TabNew struct {
		Content string
		Path    string
	}
	TabSelected struct{ Index int }
	TabClosed   struct{ Index int }
	// TextUpdate carries the full new content of the active buffer.
	TextUpdate struct{ Text string }
)

func (NewFile) msg()     {}
func (OpenFile) msg()    {}
func (OpenFolder) msg()  {}
func (Save) msg()        {}
func (SaveAs) msg()      {}
func (Quit) msg()        {}
func (NextTab) msg()     {}
func (PrevTab) msg()     {}
func (CopyBuffer) msg()  {}
func (Paste) msg()       {}
func (TabNew) msg()      {}
func (TabSelected) msg() {}
func (TabClosed) msg()   {}
func (TextUpdate) msg()  {}
