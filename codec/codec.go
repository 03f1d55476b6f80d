// Package codec provides fixed-width payload encodings for records stored in
// arena regions.
//
// Every codec writes exactly Size() bytes, big-endian, with no padding, so a
// record encoded on one host reads back identically on any other.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
)

const HashBytes = 32

var (
	ErrNotFixedSize = errors.New("codec: payload type is not fixed size")
	ErrZeroSize     = errors.New("codec: payload type has zero size")
)

// Codec encodes values of T into a fixed number of bytes.
//
// Put and Get are given slices of exactly Size() bytes.
type Codec[T any] interface {
	Size() int
	Put(dst []byte, v T)
	Get(src []byte) T
}

// Fixed encodes any fixed-size T with encoding/binary.
//
// T may be a bool, a sized integer or float, a complex number, or an array or
// struct built only from those. Strings, slices, maps, pointers, and int/uint
// (which have no fixed width) are rejected by NewBinary.
type Fixed[T any] struct {
	size int
}

// NewBinary returns a Fixed codec for T, or ErrNotFixedSize if T has no
// fixed binary layout.
func NewBinary[T any]() (Fixed[T], error) {
	var zero T
	// binary.Size reports len*elem for slices, so a nil slice would look fixed.
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Slice, reflect.Interface:
		return Fixed[T]{}, fmt.Errorf("%w: %T", ErrNotFixedSize, zero)
	}
	n := binary.Size(zero)
	if n < 0 {
		return Fixed[T]{}, fmt.Errorf("%w: %T", ErrNotFixedSize, zero)
	}
	if n == 0 {
		return Fixed[T]{}, fmt.Errorf("%w: %T", ErrZeroSize, zero)
	}
	return Fixed[T]{size: n}, nil
}

// MustBinary is NewBinary for payload types known at compile time to be fixed size.
func MustBinary[T any]() Fixed[T] {
	c, err := NewBinary[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func (c Fixed[T]) Size() int { return c.size }

func (c Fixed[T]) Put(dst []byte, v T) {
	// The size was established by NewBinary, so this only fails if dst is short.
	if _, err := binary.Encode(dst[:c.size], binary.BigEndian, v); err != nil {
		panic(err)
	}
}

func (c Fixed[T]) Get(src []byte) T {
	var v T
	if _, err := binary.Decode(src[:c.size], binary.BigEndian, &v); err != nil {
		panic(err)
	}
	return v
}

// Uint32 is a direct big-endian codec for uint32 payloads.
type Uint32 struct{}

func (Uint32) Size() int                { return 4 }
func (Uint32) Put(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }
func (Uint32) Get(src []byte) uint32    { return binary.BigEndian.Uint32(src) }

// Uint64 is a direct big-endian codec for uint64 payloads.
type Uint64 struct{}

func (Uint64) Size() int                { return 8 }
func (Uint64) Put(dst []byte, v uint64) { binary.BigEndian.PutUint64(dst, v) }
func (Uint64) Get(src []byte) uint64    { return binary.BigEndian.Uint64(src) }

// Hash32 stores 32 byte values (hashes, log values) verbatim.
type Hash32 struct{}

func (Hash32) Size() int { return HashBytes }

func (Hash32) Put(dst []byte, v [HashBytes]byte) { copy(dst[:HashBytes], v[:]) }

func (Hash32) Get(src []byte) [HashBytes]byte {
	var out [HashBytes]byte
	copy(out[:], src[:HashBytes])
	return out
}
