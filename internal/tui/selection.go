package tui

// Selection is the single selected-region state machine: either nothing is
// selected or exactly one region code is. The map highlight, the detail
// panel, and the ranking cursor all read this one value, so they cannot
// fall out of sync.
type Selection struct {
	code string
}

func (s Selection) Active() bool { return s.code != "" }

func (s Selection) Code() string { return s.code }

func (s *Selection) Set(code string) { s.code = code }

func (s *Selection) Clear() { s.code = "" }

// Toggle selects the code, or clears when it is already selected.
func (s *Selection) Toggle(code string) {
	if s.code == code {
		s.code = ""
		return
	}
	s.code = code
}
