package domain

// Selection is the working set of sale ids chosen as route stops.
//
// Membership is a set (no duplicates), iterated in insertion order: an id
// removed and toggled back in moves to the end. Route planning uses that
// order as its input order, which makes the origin-less start stop and
// nearest-neighbor tie-breaks reproducible for a given toggle history.
//
// A Selection is owned by a single session and is not safe for concurrent use.
type Selection struct {
	order []string
	index map[string]int
}

func NewSelection() *Selection {
	return &Selection{index: make(map[string]int)}
}

// Toggle removes id when present and adds it otherwise.
// It returns whether id is selected after the call.
func (s *Selection) Toggle(id string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	if i, ok := s.index[id]; ok {
		s.order = append(s.order[:i], s.order[i+1:]...)
		delete(s.index, id)
		for j := i; j < len(s.order); j++ {
			s.index[s.order[j]] = j
		}
		return false
	}

	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

// IsSelected reports membership; unknown ids are simply not selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy of the members in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) Len() int { return len(s.order) }

func (s *Selection) Clear() {
	s.order = nil
	s.index = make(map[string]int)
}
