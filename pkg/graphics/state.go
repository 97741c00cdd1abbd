package graphics

// LineCap is the stroke end style.
type LineCap string

const (
	LineCapButt   LineCap = "butt"
	LineCapRound  LineCap = "round"
	LineCapSquare LineCap = "square"
)

// TextAlign is the horizontal anchor of drawn text.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline string

const (
	BaselineAlphabetic TextBaseline = "alphabetic"
	BaselineMiddle     TextBaseline = "middle"
	BaselineTop        TextBaseline = "top"
	BaselineBottom     TextBaseline = "bottom"
)

// State is everything Save captures and Restore brings back.
type State struct {
	// Current transformation matrix, user space to device space.
	CTM Matrix

	FillStyle   string
	StrokeStyle string
	LineWidth   float64
	LineCap     LineCap

	Font         Font
	TextAlign    TextAlign
	TextBaseline TextBaseline
}

// NewState returns the initial state of a fresh surface.
func NewState() *State {
	return &State{
		CTM:          Identity(),
		FillStyle:    "#000000",
		StrokeStyle:  "#000000",
		LineWidth:    1.0,
		LineCap:      LineCapButt,
		Font:         DefaultFont,
		TextAlign:    AlignLeft,
		TextBaseline: BaselineAlphabetic,
	}
}

// Clone returns a copy of the state.
func (s *State) Clone() *State {
	clone := *s
	return &clone
}

// StateStack is the Save/Restore stack of a surface.
type StateStack struct {
	states []*State
}

// NewStateStack creates a stack holding one initial state.
func NewStateStack() *StateStack {
	return &StateStack{
		states: []*State{NewState()},
	}
}

// Current returns the topmost state.
func (s *StateStack) Current() *State {
	if len(s.states) == 0 {
		s.states = append(s.states, NewState())
	}
	return s.states[len(s.states)-1]
}

// Push saves a copy of the current state.
func (s *StateStack) Push() {
	s.states = append(s.states, s.Current().Clone())
}

// Pop restores the previously saved state. The initial state is never popped.
func (s *StateStack) Pop() {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
	}
}

// Depth returns the stack depth.
func (s *StateStack) Depth() int {
	return len(s.states)
}
