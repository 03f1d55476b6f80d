package bintree

import (
	"encoding/binary"
	"testing"

	"github.com/forestrie/go-arenatree/arena"
	"github.com/forestrie/go-arenatree/codec"
	"github.com/stretchr/testify/require"
)

func TestSlotLayout(t *testing.T) {
	require.Equal(t, 12, SlotBytes(4))
	require.Equal(t, 4, SlotLeftOffset(4))
	require.Equal(t, 8, SlotRightOffset(4))

	slot := make([]byte, SlotBytes(4))
	slotSetLeft(slot, 4, 0x01020304)
	slotSetRight(slot, 4, NoRef)
	require.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4, 0xFF, 0xFF, 0xFF, 0xFF}, slot)
	require.Equal(t, Ref(0x01020304), slotLeft(slot, 4))
	require.Equal(t, NoRef, slotRight(slot, 4))
}

func TestTreeByteLayout(t *testing.T) {
	tr := newTree(t, 2)
	require.Len(t, tr.Bytes(), int(TreeBytes(2, 4)))

	b := tr.Bytes()
	// Empty root is the NoRef sentinel at offset 0.
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}, b[:HeaderBytes])

	a, _ := tr.AddNode(0xAABBCCDD)
	c, _ := tr.AddNode(0x11223344)
	tr.SetRightChild(a, c)

	require.Equal(t, uint32(a), binary.BigEndian.Uint32(b[0:4]))

	// arena header follows the tree header.
	ah, ok, err := arena.DecodeHeader(b[HeaderBytes:])
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, arena.Header{Capacity: 2, Size: 2, FreeHead: NoRef, Bump: 2, ValueBytes: uint32(SlotBytes(4))}, ah)

	// slot for a: payload | left | right, after the per-entry arena bookkeeping.
	off := HeaderBytes + arena.EntryOffset(a, SlotBytes(4)) + arena.EntryOverheadBytes
	slot := b[off : off+uint64(SlotBytes(4))]
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, slot[0:4])
	require.Equal(t, uint32(NoRef), binary.BigEndian.Uint32(slot[4:8]))
	require.Equal(t, uint32(c), binary.BigEndian.Uint32(slot[8:12]))
}

func TestTreeRelocatesAsBytes(t *testing.T) {
	c := codec.MustBinary[record]()
	tr, err := New[record](c, 4)
	require.NoError(t, err)

	root, _ := tr.AddNode(record{Key: 1})
	l, _ := tr.AddNode(record{Key: 2})
	r, _ := tr.AddNode(record{Key: 3})
	tr.SetLeftChild(root, l)
	tr.SetRightChild(root, r)

	// Place the image at an arbitrary, unaligned offset in a larger buffer.
	const at = 13
	buf := make([]byte, at+len(tr.Bytes())+7)
	copy(buf[at:], tr.Bytes())

	moved, err := Attach[record](buf[at:], c)
	require.NoError(t, err)
	require.Equal(t, 3, moved.Len())
	require.Equal(t, 4, moved.Cap())

	gotRoot, ok := moved.Root()
	require.True(t, ok)
	require.Equal(t, root, gotRoot)

	gotL, ok := moved.LeftChild(gotRoot)
	require.True(t, ok)
	gotR, ok := moved.RightChild(gotRoot)
	require.True(t, ok)

	v, _ := moved.Node(gotL)
	require.Equal(t, uint64(2), v.Key)
	v, _ = moved.Node(gotR)
	require.Equal(t, uint64(3), v.Key)

	// The attached tree keeps growing within the same capacity.
	_, err = moved.AddNode(record{Key: 4})
	require.NoError(t, err)
	_, err = moved.AddNode(record{Key: 5})
	require.ErrorIs(t, err, ErrExhausted)

	// Mutations land in buf, not in the original.
	require.Equal(t, 3, tr.Len())
	require.Len(t, moved.Bytes(), len(tr.Bytes()))
}

func TestTreeAttachRejects(t *testing.T) {
	_, err := Attach[uint32](make([]byte, TreeBytes(2, 4)), codec.Uint32{})
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = Attach[uint32](make([]byte, HeaderBytes-1), codec.Uint32{})
	require.ErrorIs(t, err, ErrRegionTooSmall)
	require.ErrorIs(t, err, arena.ErrRegionTooSmall)

	// Truncated arena region fails with the same sentinel at both layers.
	full := newTree(t, 2)
	_, err = Attach[uint32](full.Bytes()[:len(full.Bytes())-1], codec.Uint32{})
	require.ErrorIs(t, err, ErrRegionTooSmall)
	require.ErrorIs(t, err, arena.ErrRegionTooSmall)

	tr := newTree(t, 2)
	ref, err := tr.AddNode(1)
	require.NoError(t, err)

	// reserved header bytes must be zero.
	image := append([]byte{}, tr.Bytes()...)
	image[5] = 1
	_, err = Attach[uint32](image, codec.Uint32{})
	require.ErrorIs(t, err, ErrBadHeader)

	// root pointing at a slot that is not live.
	image = append([]byte{}, tr.Bytes()...)
	binary.BigEndian.PutUint32(image[0:4], uint32(ref)+1)
	_, err = Attach[uint32](image, codec.Uint32{})
	require.ErrorIs(t, err, ErrBadRoot)

	// Wrong payload width for the image.
	_, err = Attach[uint64](tr.Bytes(), codec.Uint64{})
	require.ErrorIs(t, err, arena.ErrBadValueSize)
}

func TestTreeAttachRejectsPayloadWidthMismatch(t *testing.T) {
	tr := newTree(t, 2)
	a, err := tr.AddNode(0x01020304)
	require.NoError(t, err)
	b, err := tr.AddNode(0x05060708)
	require.NoError(t, err)
	tr.SetLeftChild(a, b)

	// Room enough for a uint64 tree of the same capacity, so a size check
	// alone would let the wider codec through.
	buf := make([]byte, TreeBytes(2, 8))
	copy(buf, tr.Bytes())

	_, err = Attach[uint64](buf, codec.Uint64{})
	require.ErrorIs(t, err, arena.ErrBadValueSize)

	same, err := Attach[uint32](buf, codec.Uint32{})
	require.NoError(t, err)
	left, ok := same.LeftChild(a)
	require.True(t, ok)
	require.Equal(t, b, left)
	v, ok := same.Node(b)
	require.True(t, ok)
	require.Equal(t, uint32(0x05060708), v)
}

func TestTreeInitInCallerRegion(t *testing.T) {
	region := make([]byte, TreeBytes(3, 4))
	for i := range region {
		region[i] = 0xEE
	}
	tr, err := Init[uint32](region, codec.Uint32{}, 3)
	require.NoError(t, err)
	require.True(t, tr.IsEmpty())

	ref, err := tr.AddNode(9)
	require.NoError(t, err)

	// A second view over the same region sees the write.
	view, err := Attach[uint32](region, codec.Uint32{})
	require.NoError(t, err)
	v, ok := view.Node(ref)
	require.True(t, ok)
	require.Equal(t, uint32(9), v)
}
