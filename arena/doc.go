package arena

/*

# Fixed-capacity node arena (in-place, index addressed)

This package provides a slot allocator that lives entirely inside a caller
owned byte region. All bookkeeping, including the free list, is stored in the
region itself, so a region written to a file, a shared memory segment or a
network buffer can be re-attached and used without any decode pass.

It follows the same style as `go-merklelog/urkle` and `go-merklelog/bloom`:

- explicit byte layouts (big-endian)
- index arithmetic on byte slices
- a burden of knowledge on the caller for hot paths

## Layout

	+----------------------+  20B header
	| capacity   u32       |
	| size       u32       |
	| freeHead   u32       |
	| bump       u32       |
	| valueBytes u32       |
	+----------------------+  entry 0
	| next u32 | state u32 |
	| value[valueBytes]    |
	+----------------------+  entry 1
	| ...                  |
	+----------------------+  entry capacity-1

valueBytes records the value width the region was initialized with; Attach
rejects a caller that expects a different width. An index (Ref) is the entry
ordinal. NoRef (0xFFFFFFFF) is never a valid
index, so capacity is strictly less than NoRef.

## Allocation

Freed entries are pushed onto a LIFO free list threaded through entry.next.
Allocation pops the free list first and only then advances the bump cursor.
The arena never grows: once size == capacity, Add returns NoRef and
ErrExhausted.

Get does not check liveness. Passing a freed or never-allocated index is a
caller bug; out-of-range indices panic the same way slice indexing does.

*/
