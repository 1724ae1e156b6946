package game

// Action is a player decision for one hand.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// LegalActions returns the actions currently legal for the hand. Hit and
// Stand are always legal; Double and Split only on a qualifying two-card
// hand before any other decision.
func LegalActions(h *Hand) []Action {
	actions := []Action{Hit, Stand}
	if h.CanDouble() {
		actions = append(actions, Double)
	}
	if h.CanSplit() {
		actions = append(actions, Split)
	}
	return actions
}
