package skeleton

// History is the per-round arena of RoundState snapshots. Snapshots are
// indexed by sequence number and each one records the index of its
// predecessor, which is always smaller, so the chain never forms a cycle.
// A History is discarded when its round ends.
type History struct {
	rules     Rules
	snapshots []RoundState
}

// NewHistory creates an empty arena for a round played under rules.
func NewHistory(rules Rules) *History {
	return &History{
		rules:     rules.WithDefaults(),
		snapshots: make([]RoundState, 0, 16),
	}
}

// Rules returns the rules of the round.
func (h *History) Rules() Rules {
	return h.rules
}

// Len returns the number of snapshots recorded so far.
func (h *History) Len() int {
	return len(h.snapshots)
}

// At returns the snapshot with the given sequence number.
func (h *History) At(seq int) (*RoundState, bool) {
	if seq < 0 || seq >= len(h.snapshots) {
		return nil, false
	}
	rs := h.snapshots[seq]
	return &rs, true
}

// Chain returns the snapshots from the first state of the round up to and
// including seq, following predecessor links.
func (h *History) Chain(seq int) []*RoundState {
	chain := make([]*RoundState, 0)
	for seq >= 0 && seq < len(h.snapshots) {
		rs := h.snapshots[seq]
		chain = append(chain, &rs)
		seq = rs.prev
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (h *History) add(rs RoundState, prev int) *RoundState {
	rs.history = h
	rs.seq = len(h.snapshots)
	rs.prev = prev
	h.snapshots = append(h.snapshots, rs)
	return &rs
}
