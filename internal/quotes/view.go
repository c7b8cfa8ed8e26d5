package quotes

// Mode is the state of the add/update affordance.
type Mode int

const (
	ModeAdd Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "add"
}

// Snapshot is a read-only copy of the engine state handed to views.
type Snapshot struct {
	Quotes []string
	// Editing is the index being edited, or -1.
	Editing int
}

func (s Snapshot) Count() int {
	return len(s.Quotes)
}

func (s Snapshot) Empty() bool {
	return len(s.Quotes) == 0
}

func (s Snapshot) Mode() Mode {
	if s.Editing >= 0 {
		return ModeUpdate
	}
	return ModeAdd
}

// View is the presentation surface driven by the engine.
type View interface {
	// Render redraws the list, the count and the empty-state indicator.
	Render(s Snapshot)
	// EnterUpdateMode loads text into the input, switches the affordance to
	// "update" and brings the input into view.
	EnterUpdateMode(index int, text string)
	// EnterAddMode clears the input and switches the affordance back to "add".
	EnterAddMode()
}

// Confirm asks the user to approve a destructive action. A nil Confirm counts as
// already approved.
type Confirm func(prompt string) bool

func (c Confirm) ask(prompt string) bool {
	if c == nil {
		return true
	}
	return c(prompt)
}

type nopView struct{}

func (nopView) Render(Snapshot)             {}
func (nopView) EnterUpdateMode(int, string) {}
func (nopView) EnterAddMode()               {}
