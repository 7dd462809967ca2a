package model

// State tags how a node differs from its persisted representation. The
// writer uses these tags to decide which files must be rewritten.
type State int

const (
	// Original means unchanged since the archive was read.
	Original State = iota
	// Added means the node exists in memory but not yet on disk.
	Added
	// Modified means the node's value diverged from the persisted one.
	Modified
	// Deleted means the node awaits removal from disk.
	Deleted
)

func (s State) String() string {
	switch s {
	case Original:
		return "original"
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// StateEntry pairs a touched node with its state tag. A container's
// StateList is the union of its own entry (if not Original) and all
// descendants' entries.
type StateEntry struct {
	State State
	Node  Node
}

// ownEntry returns a node's own state entry, or nil while it is untouched.
func ownEntry(n Node) []StateEntry {
	if n.State() == Original {
		return nil
	}
	return []StateEntry{{State: n.State(), Node: n}}
}
