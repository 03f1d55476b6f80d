package bintree

/*

# Zero-copy binary tree over a fixed-capacity arena

Tree wires arena entries into parent/child relationships using 32-bit
indices only. The whole tree, root included, is one contiguous byte region
with no embedded addresses, so it can be written out, mapped back in at any
offset, and re-attached without a fix-up pass.

## Layout

	+------------------------+  8B tree header
	| root u32 | zero u32    |
	+------------------------+  arena region (see package arena)
	| arena header (20B)     |
	| entry 0: bookkeeping   |
	|          slot          |
	| ...                    |
	+------------------------+

Each slot is:

	payload[codec.Size()] | left u32 | right u32

The zero word after root reproduces the padding a C-layout struct of
{root u32, arena} carries, and Attach requires it to be zero. It implies no
alignment requirement since every field is read bytewise.

All integers are big-endian. A link equal to NoRef means "no child"; a root
equal to NoRef means the tree is empty.

## Contracts

- Only the first node added to a root-less tree becomes the root.
- SetLeftChild and SetRightChild overwrite unconditionally. No cycle or
  single-parent checks are made; structural correctness is the caller's.
- Lookups (Node, LeftChild, RightChild) treat NoRef as absent. Any other
  index that is not live is a caller bug.
- FreeNode returns a slot to the arena. Links in other nodes that point at the
  freed slot are not rewritten.

The tree performs no synchronisation. Mutations require exclusive access.

*/
