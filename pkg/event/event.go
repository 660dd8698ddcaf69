// Package event is the editor's event center: a synchronous bus over a
// closed set of typed events, plus a registry of the device listeners the
// editor installed so they can be removed in bulk.
package event

import (
	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/device"
)

// Name identifies an event.
type Name string

// Event names exposed to host code.
const (
	NameBlockChanged   Name = "blockChanged"
	NameLineCommitted  Name = "lineCommitted"
	NameMarkupReparsed Name = "markupReparsed"
	NameArrowPressed   Name = "arrowPressed"
)

// Event is implemented only by the event types of this package.
type Event interface {
	Name() Name
	event()
}

// BlockChanged is dispatched when the caret moves into a different block.
type BlockChanged struct {
	Old *block.Block
	New *block.Block
}

// LineCommitted is dispatched after Enter split Block and inserted NewBlock
// right after it.
type LineCommitted struct {
	Block    *block.Block
	NewBlock *block.Block
}

// MarkupReparsed is dispatched after the inline markup of Block was
// rendered again and the selection restored.
type MarkupReparsed struct {
	Block     *block.Block
	Selection codec.State
}

// ArrowPressed is dispatched for every arrow keydown.
type ArrowPressed struct {
	Direction Direction
}

func (BlockChanged) Name() Name   { return NameBlockChanged }
func (LineCommitted) Name() Name  { return NameLineCommitted }
func (MarkupReparsed) Name() Name { return NameMarkupReparsed }
func (ArrowPressed) Name() Name   { return NameArrowPressed }

func (BlockChanged) event()   {}
func (LineCommitted) event()  {}
func (MarkupReparsed) event() {}
func (ArrowPressed) event()   {}

// Direction is the direction of an arrow key.
type Direction string

// Arrow directions.
const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// DirectionOf maps an arrow key identifier to its direction.
func DirectionOf(key string) (Direction, bool) {
	switch key {
	case device.KeyArrowLeft:
		return DirectionLeft, true
	case device.KeyArrowRight:
		return DirectionRight, true
	case device.KeyArrowUp:
		return DirectionUp, true
	case device.KeyArrowDown:
		return DirectionDown, true
	default:
		return "", false
	}
}
