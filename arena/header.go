package arena

import (
	"bytes"
	"fmt"
)

// Header is the decoded form of the arena bookkeeping block.
type Header struct {
	Capacity   uint32
	Size       uint32
	FreeHead   Ref
	Bump       uint32
	ValueBytes uint32
}

// DecodeHeader decodes and validates the header at the start of region.
//
// ok=false indicates the header is zero-filled / uninitialized.
func DecodeHeader(region []byte) (h Header, ok bool, err error) {
	if len(region) < HeaderBytes {
		return Header{}, false, ErrRegionTooSmall
	}
	if bytes.Equal(region[:HeaderBytes], make([]byte, HeaderBytes)) {
		return Header{}, false, nil
	}

	h.Capacity = readU32BE(region[capacityOff : capacityOff+4])
	h.Size = readU32BE(region[sizeOff : sizeOff+4])
	h.FreeHead = Ref(readU32BE(region[freeHeadOff : freeHeadOff+4]))
	h.Bump = readU32BE(region[bumpOff : bumpOff+4])
	h.ValueBytes = readU32BE(region[valueBytesOff : valueBytesOff+4])

	if err := CheckCapacity(h.Capacity); err != nil {
		return Header{}, false, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.ValueBytes == 0 {
		return Header{}, false, fmt.Errorf("%w: valueBytes=0", ErrBadHeader)
	}
	if h.Bump > h.Capacity {
		return Header{}, false, fmt.Errorf("%w: bump=%d exceeds capacity=%d", ErrBadHeader, h.Bump, h.Capacity)
	}
	if h.Size > h.Bump {
		return Header{}, false, fmt.Errorf("%w: size=%d exceeds bump=%d", ErrBadHeader, h.Size, h.Bump)
	}
	if h.FreeHead != NoRef && uint32(h.FreeHead) >= h.Bump {
		return Header{}, false, fmt.Errorf("%w: freeHead=%d not below bump=%d", ErrBadHeader, h.FreeHead, h.Bump)
	}
	if h.FreeHead != NoRef && h.Size == h.Bump {
		return Header{}, false, fmt.Errorf("%w: free list present but size=%d equals bump", ErrBadHeader, h.Size)
	}
	if h.FreeHead == NoRef && h.Size != h.Bump {
		return Header{}, false, fmt.Errorf("%w: empty free list but size=%d, bump=%d", ErrBadHeader, h.Size, h.Bump)
	}
	return h, true, nil
}

// EncodeHeader writes h into the start of region.
func EncodeHeader(region []byte, h Header) error {
	if len(region) < HeaderBytes {
		return ErrRegionTooSmall
	}
	if err := CheckCapacity(h.Capacity); err != nil {
		return err
	}
	writeU32BE(region[capacityOff:capacityOff+4], h.Capacity)
	writeU32BE(region[sizeOff:sizeOff+4], h.Size)
	writeU32BE(region[freeHeadOff:freeHeadOff+4], uint32(h.FreeHead))
	writeU32BE(region[bumpOff:bumpOff+4], h.Bump)
	writeU32BE(region[valueBytesOff:valueBytesOff+4], h.ValueBytes)
	return nil
}
