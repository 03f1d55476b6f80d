package bintree

import (
	"errors"

	"github.com/forestrie/go-arenatree/arena"
)

// Ref is a node index within the tree's arena.
type Ref = arena.Ref

// NoRef is the absent node reference.
const NoRef = arena.NoRef

// HeaderBytes is the fixed byte width of the tree header preceding the arena.
// The word after root is reserved and always zero; fields are read bytewise so
// nothing in the layout depends on alignment.
const HeaderBytes = 8

// LinkBytes is the byte width of each child link.
const LinkBytes = 4

const (
	rootOff = 0
)

var (
	ErrExhausted        = arena.ErrExhausted
	ErrNotInitialized   = arena.ErrNotInitialized
	ErrCapacityTooLarge = arena.ErrCapacityTooLarge
	ErrInvalidRef       = arena.ErrInvalidRef
	ErrNotAllocated     = arena.ErrNotAllocated
	ErrRegionTooSmall   = arena.ErrRegionTooSmall

	ErrBadPayloadSize = errors.New("bintree: payload size invalid")
	ErrBadHeader      = errors.New("bintree: header invalid")
	ErrBadRoot        = errors.New("bintree: root not allocated")
)
