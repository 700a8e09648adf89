package game

// History is a bounded log of human-readable hand events. When full, the
// oldest line is dropped.
type History struct {
	lines []string
	limit int
}

// NewHistory creates a history holding at most limit lines
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append adds a line, evicting the oldest when over the limit
func (h *History) Append(line string) {
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
}

// Lines returns a copy of the current lines, oldest first
func (h *History) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

func (h *History) Len() int { return len(h.lines) }

func (h *History) Reset() { h.lines = h.lines[:0] }
