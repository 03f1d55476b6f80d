package arena

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Arena is a fixed-capacity pool of fixed-width values stored in a byte region.
//
// The region is the only state that matters: size, free list and bump cursor
// are read and written in place, so two Arenas attached to the same bytes
// observe each other's changes.
type Arena struct {
	log logger.Logger

	region     []byte
	capacity   uint32
	valueBytes int
}

// New allocates a region for capacity values of valueBytes each and initializes it.
func New(capacity uint32, valueBytes int, opts ...Option) (*Arena, error) {
	if err := CheckCapacity(capacity); err != nil {
		return nil, err
	}
	if err := checkValueBytes(valueBytes); err != nil {
		return nil, err
	}
	region := make([]byte, RegionBytes(capacity, valueBytes))
	return Init(region, capacity, valueBytes, opts...)
}

// Init initializes region as an empty arena of capacity values.
//
// The caller must allocate region with at least RegionBytes(capacity, valueBytes).
// Any bytes past that prefix are left untouched.
func Init(region []byte, capacity uint32, valueBytes int, opts ...Option) (*Arena, error) {
	if err := CheckCapacity(capacity); err != nil {
		return nil, err
	}
	if err := checkValueBytes(valueBytes); err != nil {
		return nil, err
	}
	need := RegionBytes(capacity, valueBytes)
	if uint64(len(region)) < need {
		return nil, fmt.Errorf("%w: want=%d, got=%d", ErrRegionTooSmall, need, len(region))
	}

	// Ensure clean initialization even if region is reused.
	clear(region[:need])

	if err := EncodeHeader(region, Header{Capacity: capacity, FreeHead: NoRef, ValueBytes: uint32(valueBytes)}); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &Arena{
		log:        o.Log,
		region:     region[:need],
		capacity:   capacity,
		valueBytes: valueBytes,
	}, nil
}

// Attach reinterprets an already initialized region in place.
//
// Nothing is copied; the returned Arena reads and writes region directly.
func Attach(region []byte, valueBytes int, opts ...Option) (*Arena, error) {
	if err := checkValueBytes(valueBytes); err != nil {
		return nil, err
	}
	h, ok, err := DecodeHeader(region)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	if h.ValueBytes != uint32(valueBytes) {
		return nil, fmt.Errorf("%w: region stores valueBytes=%d, got=%d", ErrBadValueSize, h.ValueBytes, valueBytes)
	}
	need := RegionBytes(h.Capacity, valueBytes)
	if uint64(len(region)) < need {
		return nil, fmt.Errorf("%w: want=%d, got=%d", ErrRegionTooSmall, need, len(region))
	}

	o := applyOptions(opts)
	a := &Arena{
		log:        o.Log,
		region:     region[:need],
		capacity:   h.Capacity,
		valueBytes: valueBytes,
	}
	if a.log != nil {
		a.log.Debugf("arena.attach: capacity=%d, size=%d, bump=%d, freeHead=%d", h.Capacity, h.Size, h.Bump, h.FreeHead)
	}
	return a, nil
}

// Add copies value into a free entry and returns its index.
//
// Returns NoRef and ErrExhausted if the arena already holds Cap() values.
func (a *Arena) Add(value []byte) (Ref, error) {
	if len(value) != a.valueBytes {
		return NoRef, fmt.Errorf("%w: want=%d, got=%d", ErrBadValueSize, a.valueBytes, len(value))
	}
	ref, err := a.take()
	if err != nil {
		return NoRef, err
	}
	copy(a.Get(ref), value)
	return ref, nil
}

// Alloc reserves a zero-filled entry and returns its index. The caller fills
// the value in place through Get.
func (a *Arena) Alloc() (Ref, error) {
	ref, err := a.take()
	if err != nil {
		return NoRef, err
	}
	clear(a.Get(ref))
	return ref, nil
}

func (a *Arena) take() (Ref, error) {
	size := a.getU32(sizeOff)
	if size >= a.capacity {
		if a.log != nil {
			a.log.Debugf("arena.add: exhausted, capacity=%d", a.capacity)
		}
		return NoRef, ErrExhausted
	}

	var ref Ref
	if head := Ref(a.getU32(freeHeadOff)); head != NoRef {
		ref = head
		a.putU32(freeHeadOff, readU32BE(a.entry(ref)[entryNextOff:]))
	} else {
		bump := a.getU32(bumpOff)
		if bump >= a.capacity {
			return NoRef, fmt.Errorf("%w: bump=%d at capacity with size=%d", ErrBadHeader, bump, size)
		}
		ref = Ref(bump)
		a.putU32(bumpOff, bump+1)
	}

	e := a.entry(ref)
	writeU32BE(e[entryNextOff:], uint32(NoRef))
	writeU32BE(e[entryStateOff:], uint32(stateAllocated))
	a.putU32(sizeOff, size+1)
	return ref, nil
}

// Get returns the value bytes for ref. The slice aliases the region, so it
// serves for both reading and in-place mutation.
//
// Caller must ensure ref is allocated.
func (a *Arena) Get(ref Ref) []byte {
	return a.entry(ref)[EntryOverheadBytes:]
}

// Free releases ref for reuse and zeroes its value bytes.
func (a *Arena) Free(ref Ref) error {
	if ref == NoRef || uint32(ref) >= a.capacity {
		return fmt.Errorf("%w: ref=%d, capacity=%d", ErrInvalidRef, ref, a.capacity)
	}
	e := a.entry(ref)
	if entryState(readU32BE(e[entryStateOff:])) != stateAllocated {
		return fmt.Errorf("%w: ref=%d", ErrNotAllocated, ref)
	}
	clear(e[EntryOverheadBytes:])
	writeU32BE(e[entryStateOff:], uint32(stateFreed))
	writeU32BE(e[entryNextOff:], a.getU32(freeHeadOff))
	a.putU32(freeHeadOff, uint32(ref))
	a.putU32(sizeOff, a.getU32(sizeOff)-1)
	return nil
}

// Contains reports whether ref is currently allocated.
func (a *Arena) Contains(ref Ref) bool {
	if ref == NoRef || uint32(ref) >= a.capacity {
		return false
	}
	return entryState(readU32BE(a.entry(ref)[entryStateOff:])) == stateAllocated
}

// Reset returns the arena to empty without touching its capacity.
func (a *Arena) Reset() {
	clear(a.region)
	// capacity was validated on construction, so this cannot fail.
	_ = EncodeHeader(a.region, Header{Capacity: a.capacity, FreeHead: NoRef, ValueBytes: uint32(a.valueBytes)})
}

// Len returns the number of allocated entries.
func (a *Arena) Len() int {
	return int(a.getU32(sizeOff))
}

// Cap returns the fixed capacity.
func (a *Arena) Cap() int {
	return int(a.capacity)
}

// ValueBytes returns the fixed value width.
func (a *Arena) ValueBytes() int {
	return a.valueBytes
}

// Header returns a decoded snapshot of the bookkeeping block.
func (a *Arena) Header() Header {
	return Header{
		Capacity:   a.capacity,
		Size:       a.getU32(sizeOff),
		FreeHead:   Ref(a.getU32(freeHeadOff)),
		Bump:       a.getU32(bumpOff),
		ValueBytes: uint32(a.valueBytes),
	}
}

// Bytes returns the region in use, exactly RegionBytes(Cap(), ValueBytes()) long.
func (a *Arena) Bytes() []byte {
	return a.region
}

func (a *Arena) entry(ref Ref) []byte {
	off := EntryOffset(ref, a.valueBytes)
	return a.region[off : off+EntryBytes(a.valueBytes)]
}

func (a *Arena) getU32(off int) uint32    { return readU32BE(a.region[off : off+4]) }
func (a *Arena) putU32(off int, v uint32) { writeU32BE(a.region[off:off+4], v) }
