package editor

import "github.com/yaklabco/mdlive/pkg/block"

// ActiveBlock points at the block holding the caret.
type ActiveBlock struct {
	ID    string
	Block *block.Block
}

// IsZero reports whether no block is active.
func (a ActiveBlock) IsZero() bool {
	return a.Block == nil
}

// Transition computes the active block after the caret resolved to
// resolved. It reports whether the active block changed; a nil resolved
// block never changes it.
func Transition(prev ActiveBlock, resolved *block.Block) (ActiveBlock, bool) {
	if resolved == nil || resolved.ID == prev.ID {
		return prev, false
	}
	return ActiveBlock{ID: resolved.ID, Block: resolved}, true
}
