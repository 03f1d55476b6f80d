package bintree

import "github.com/forestrie/go-arenatree/arena"

// TreeBytes returns the region size needed for a tree of capacity nodes:
//
//	HeaderBytes + arena.RegionBytes(capacity, SlotBytes(payloadBytes))
func TreeBytes(capacity uint32, payloadBytes int) uint64 {
	return HeaderBytes + arena.RegionBytes(capacity, SlotBytes(payloadBytes))
}
