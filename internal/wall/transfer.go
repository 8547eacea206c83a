package wall

import "fmt"

// TransferResult reports what a transfer request did.
type TransferResult int

const (
	// TransferArmed means the pane is now pending: the next request on a
	// different pane swaps the two.
	TransferArmed TransferResult = iota
	// TransferSwapped means two panes exchanged tree positions.
	TransferSwapped
	// TransferCancelled means the pending pane was requested again.
	TransferCancelled
)

// TransferCoordinator runs the two-phase pane swap: arm one pane, then name
// the other. Each pane takes over the size slot it moves into, so sizes stay
// attached to positions rather than panes.
type TransferCoordinator struct {
	tree    *Tree
	pending *Leaf
}

// NewTransferCoordinator creates a coordinator over the given tree.
func NewTransferCoordinator(tree *Tree) *TransferCoordinator {
	return &TransferCoordinator{tree: tree}
}

// Pending returns the armed pane, or nil.
func (tc *TransferCoordinator) Pending() *Leaf { return tc.pending }

// Forget drops the pending pane if it matches, e.g. when it is closed while
// armed.
func (tc *TransferCoordinator) Forget(leaf *Leaf) {
	if tc.pending == leaf {
		tc.pending = nil
	}
}

// Request arms, cancels, or completes a transfer. When either pane cannot be
// located the swap fails with ErrStructural and neither parent is touched.
func (tc *TransferCoordinator) Request(leaf *Leaf) (TransferResult, error) {
	if tc.pending == nil {
		tc.pending = leaf
		return TransferArmed, nil
	}
	if tc.pending == leaf {
		tc.pending = nil
		return TransferCancelled, nil
	}
	other := tc.pending
	posA, okA := tc.tree.locate(leaf.ID)
	posB, okB := tc.tree.locate(other.ID)
	if !okA || !okB || posA.parent == nil || posB.parent == nil {
		return 0, fmt.Errorf("%w: transfer between %s and %s", ErrStructural, leaf.ID, other.ID)
	}
	posA.parent.Children[posA.index] = other
	posB.parent.Children[posB.index] = leaf
	tc.pending = nil
	tc.tree.reindex()
	return TransferSwapped, nil
}
