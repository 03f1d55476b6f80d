package arena

import "errors"

// Ref is an arena entry index.
type Ref uint32

// NoRef is the absent reference. No allocated entry ever has this index.
const NoRef = ^Ref(0)

// MaxCapacity is the exclusive upper bound on arena capacity.
const MaxCapacity = uint32(NoRef)

// HeaderBytes is the fixed byte width of the arena header.
const HeaderBytes = 20

// EntryOverheadBytes is the per-entry bookkeeping (next, state) preceding each value.
const EntryOverheadBytes = 8

const (
	capacityOff   = 0
	sizeOff       = 4
	freeHeadOff   = 8
	bumpOff       = 12
	valueBytesOff = 16

	entryNextOff  = 0
	entryStateOff = 4
)

type entryState uint32

const (
	stateUnused    entryState = 0
	stateAllocated entryState = 1
	stateFreed     entryState = 2
)

var (
	ErrExhausted        = errors.New("arena: exhausted")
	ErrCapacityTooLarge = errors.New("arena: capacity must be less than the NoRef sentinel")
	ErrBadValueSize     = errors.New("arena: value size invalid")
	ErrRegionTooSmall   = errors.New("arena: region buffer too small")
	ErrNotInitialized   = errors.New("arena: header not initialized")
	ErrBadHeader        = errors.New("arena: header invalid")
	ErrInvalidRef       = errors.New("arena: invalid ref")
	ErrNotAllocated     = errors.New("arena: ref not allocated")
)
