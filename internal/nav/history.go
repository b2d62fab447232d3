package nav

// History is the navigable location the synchronizer writes to. Push adds
// an entry without reloading anything; Path reads the current location.
type History interface {
	Push(path string)
	Path() string
}

// Scroller reads and writes the feed's vertical scroll position. JumpTo is
// a non-animated jump.
type Scroller interface {
	Offset() float64
	JumpTo(offset float64)
}

// Stack is an in-memory History with back/forward navigation, standing in
// for the browser's history stack. Pushing while not at the top truncates
// the forward entries, the way a real history stack does.
type Stack struct {
	entries []string
	pos     int
}

// NewStack returns a Stack positioned at initialPath.
func NewStack(initialPath string) *Stack {
	if initialPath == "" {
		initialPath = BasePath
	}
	return &Stack{entries: []string{initialPath}}
}

func (s *Stack) Push(path string) {
	s.entries = append(s.entries[:s.pos+1], path)
	s.pos = len(s.entries) - 1
}

func (s *Stack) Path() string {
	return s.entries[s.pos]
}

// Back moves one entry back and returns the resulting path. The second
// return is false when already at the oldest entry.
func (s *Stack) Back() (string, bool) {
	if s.pos == 0 {
		return s.Path(), false
	}
	s.pos--
	return s.Path(), true
}

// Forward moves one entry forward and returns the resulting path. The
// second return is false when already at the newest entry.
func (s *Stack) Forward() (string, bool) {
	if s.pos == len(s.entries)-1 {
		return s.Path(), false
	}
	s.pos++
	return s.Path(), true
}
