package bintree

import (
	"bytes"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-arenatree/arena"
	"github.com/forestrie/go-arenatree/codec"
)

// Tree is a fixed-capacity binary tree whose nodes live in a single byte region.
//
// The region holds the root and the arena; Tree itself only caches the
// codec and the derived widths. Two Trees attached to the same region observe
// each other's changes.
type Tree[T any] struct {
	log logger.Logger

	codec        codec.Codec[T]
	payloadBytes int

	region []byte
	arena  *arena.Arena
}

// New allocates a region for capacity nodes and returns an empty tree.
//
// This is the only allocation the tree performs; capacity never changes.
func New[T any](c codec.Codec[T], capacity uint32, opts ...Option) (*Tree[T], error) {
	if err := arena.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	if c.Size() <= 0 {
		return nil, ErrBadPayloadSize
	}
	region := make([]byte, TreeBytes(capacity, c.Size()))
	return Init(region, c, capacity, opts...)
}

// Init initializes region as an empty tree of capacity nodes.
//
// The caller must allocate region with at least TreeBytes(capacity, c.Size()).
func Init[T any](region []byte, c codec.Codec[T], capacity uint32, opts ...Option) (*Tree[T], error) {
	if err := arena.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	payloadBytes := c.Size()
	if payloadBytes <= 0 {
		return nil, ErrBadPayloadSize
	}
	need := TreeBytes(capacity, payloadBytes)
	if uint64(len(region)) < need {
		return nil, fmt.Errorf("%w: want=%d, got=%d", ErrRegionTooSmall, need, len(region))
	}

	o := applyOptions(opts)
	clear(region[:HeaderBytes])
	a, err := arena.Init(region[HeaderBytes:need], capacity, SlotBytes(payloadBytes), arena.WithLogger(o.Log))
	if err != nil {
		return nil, err
	}
	t := &Tree[T]{
		log:          o.Log,
		codec:        c,
		payloadBytes: payloadBytes,
		region:       region[:need],
		arena:        a,
	}
	t.setRoot(NoRef)
	return t, nil
}

// Attach reinterprets an initialized tree region in place.
//
// Nothing is copied or rewritten. The root must be NoRef or a live node.
func Attach[T any](region []byte, c codec.Codec[T], opts ...Option) (*Tree[T], error) {
	payloadBytes := c.Size()
	if payloadBytes <= 0 {
		return nil, ErrBadPayloadSize
	}
	if len(region) < HeaderBytes {
		return nil, ErrRegionTooSmall
	}
	if !bytes.Equal(region[rootOff+4:HeaderBytes], make([]byte, HeaderBytes-4)) {
		return nil, fmt.Errorf("%w: reserved header bytes not zero", ErrBadHeader)
	}

	o := applyOptions(opts)
	a, err := arena.Attach(region[HeaderBytes:], SlotBytes(payloadBytes), arena.WithLogger(o.Log))
	if err != nil {
		return nil, err
	}
	t := &Tree[T]{
		log:          o.Log,
		codec:        c,
		payloadBytes: payloadBytes,
		region:       region[:HeaderBytes+len(a.Bytes())],
		arena:        a,
	}
	if root := t.root(); root != NoRef && !a.Contains(root) {
		return nil, fmt.Errorf("%w: root=%d", ErrBadRoot, root)
	}
	return t, nil
}

// AddNode stores payload in a new slot with no children and returns its index.
//
// If the tree has no root, the new node becomes the root. Returns NoRef and
// ErrExhausted when the tree already holds Cap() nodes.
func (t *Tree[T]) AddNode(payload T) (Ref, error) {
	ref, err := t.arena.Alloc()
	if err != nil {
		return NoRef, err
	}
	s := t.arena.Get(ref)
	t.codec.Put(slotPayload(s, t.payloadBytes), payload)
	slotSetLeft(s, t.payloadBytes, NoRef)
	slotSetRight(s, t.payloadBytes, NoRef)

	if t.root() == NoRef {
		t.setRoot(ref)
	}
	return ref, nil
}

// SetLeftChild overwrites the left link of parent. child may be NoRef to clear it.
//
// parent must be a live node.
func (t *Tree[T]) SetLeftChild(parent, child Ref) {
	slotSetLeft(t.arena.Get(parent), t.payloadBytes, child)
}

// SetRightChild overwrites the right link of parent. child may be NoRef to clear it.
//
// parent must be a live node.
func (t *Tree[T]) SetRightChild(parent, child Ref) {
	slotSetRight(t.arena.Get(parent), t.payloadBytes, child)
}

// Node returns the payload stored at ref, or false if ref is NoRef.
func (t *Tree[T]) Node(ref Ref) (T, bool) {
	if ref == NoRef {
		var zero T
		return zero, false
	}
	return t.codec.Get(slotPayload(t.arena.Get(ref), t.payloadBytes)), true
}

// NodeBytes returns the encoded payload at ref, aliasing the region, or false
// if ref is NoRef. Writes through the slice mutate the node in place; its
// capacity is clipped so appends cannot reach the child links.
func (t *Tree[T]) NodeBytes(ref Ref) ([]byte, bool) {
	if ref == NoRef {
		return nil, false
	}
	return slotPayload(t.arena.Get(ref), t.payloadBytes), true
}

// UpdateNode decodes the payload at ref, applies fn, and stores the result.
// Returns false, without calling fn, if ref is NoRef.
func (t *Tree[T]) UpdateNode(ref Ref, fn func(*T)) bool {
	p, ok := t.NodeBytes(ref)
	if !ok {
		return false
	}
	v := t.codec.Get(p)
	fn(&v)
	t.codec.Put(p, v)
	return true
}

// SetNode overwrites the payload at ref. Returns false if ref is NoRef.
func (t *Tree[T]) SetNode(ref Ref, payload T) bool {
	p, ok := t.NodeBytes(ref)
	if !ok {
		return false
	}
	t.codec.Put(p, payload)
	return true
}

// LeftChild returns the left child of ref, or false if there is none.
func (t *Tree[T]) LeftChild(ref Ref) (Ref, bool) {
	if ref == NoRef {
		return NoRef, false
	}
	child := slotLeft(t.arena.Get(ref), t.payloadBytes)
	return child, child != NoRef
}

// RightChild returns the right child of ref, or false if there is none.
func (t *Tree[T]) RightChild(ref Ref) (Ref, bool) {
	if ref == NoRef {
		return NoRef, false
	}
	child := slotRight(t.arena.Get(ref), t.payloadBytes)
	return child, child != NoRef
}

// Root returns the root index, or false if the tree is empty.
func (t *Tree[T]) Root() (Ref, bool) {
	root := t.root()
	return root, root != NoRef
}

// FreeNode returns ref's slot to the arena.
//
// If ref is the root the tree becomes root-less, and the next AddNode sets a
// new root. Links held by other nodes are left as they are; any that point at
// ref now dangle.
func (t *Tree[T]) FreeNode(ref Ref) error {
	if err := t.arena.Free(ref); err != nil {
		return err
	}
	if t.root() == ref {
		t.setRoot(NoRef)
		if t.log != nil {
			t.log.Debugf("bintree.free: released root=%d, len=%d", ref, t.arena.Len())
		}
	}
	return nil
}

// Contains reports whether ref is a live node.
func (t *Tree[T]) Contains(ref Ref) bool {
	return t.arena.Contains(ref)
}

// Reset empties the tree in place.
func (t *Tree[T]) Reset() {
	t.arena.Reset()
	t.setRoot(NoRef)
}

// Len returns the number of live nodes.
func (t *Tree[T]) Len() int {
	return t.arena.Len()
}

// IsEmpty reports whether Len() == 0.
func (t *Tree[T]) IsEmpty() bool {
	return t.Len() == 0
}

// Cap returns the fixed node capacity.
func (t *Tree[T]) Cap() int {
	return t.arena.Cap()
}

// PayloadBytes returns the encoded payload width.
func (t *Tree[T]) PayloadBytes() int {
	return t.payloadBytes
}

// Bytes returns the tree region, exactly TreeBytes(Cap(), PayloadBytes()) long.
func (t *Tree[T]) Bytes() []byte {
	return t.region
}

func (t *Tree[T]) root() Ref {
	return Ref(readU32BE(t.region[rootOff : rootOff+4]))
}

func (t *Tree[T]) setRoot(ref Ref) {
	writeU32BE(t.region[rootOff:rootOff+4], uint32(ref))
}
