package bintree

// SlotBytes returns the byte width of a node slot carrying payloadBytes of payload.
func SlotBytes(payloadBytes int) int {
	return payloadBytes + 2*LinkBytes
}

// SlotLeftOffset returns the offset of the left link within a slot.
func SlotLeftOffset(payloadBytes int) int {
	return payloadBytes
}

// SlotRightOffset returns the offset of the right link within a slot.
func SlotRightOffset(payloadBytes int) int {
	return payloadBytes + LinkBytes
}

func slotPayload(slot []byte, payloadBytes int) []byte {
	return slot[:payloadBytes:payloadBytes]
}

func slotLeft(slot []byte, payloadBytes int) Ref {
	off := SlotLeftOffset(payloadBytes)
	return Ref(readU32BE(slot[off : off+LinkBytes]))
}

func slotRight(slot []byte, payloadBytes int) Ref {
	off := SlotRightOffset(payloadBytes)
	return Ref(readU32BE(slot[off : off+LinkBytes]))
}

func slotSetLeft(slot []byte, payloadBytes int, child Ref) {
	off := SlotLeftOffset(payloadBytes)
	writeU32BE(slot[off:off+LinkBytes], uint32(child))
}

func slotSetRight(slot []byte, payloadBytes int, child Ref) {
	off := SlotRightOffset(payloadBytes)
	writeU32BE(slot[off:off+LinkBytes], uint32(child))
}
