package arena

// EntryBytes returns the byte width of one arena entry holding valueBytes of value.
func EntryBytes(valueBytes int) uint64 {
	return EntryOverheadBytes + uint64(valueBytes)
}

// RegionBytes returns the required region size for capacity entries of valueBytes each:
//
//	HeaderBytes + capacity*EntryBytes(valueBytes)
func RegionBytes(capacity uint32, valueBytes int) uint64 {
	return HeaderBytes + uint64(capacity)*EntryBytes(valueBytes)
}

// CheckCapacity checks that capacity leaves NoRef free as the sentinel.
func CheckCapacity(capacity uint32) error {
	if capacity >= MaxCapacity {
		return ErrCapacityTooLarge
	}
	return nil
}

func checkValueBytes(valueBytes int) error {
	if valueBytes <= 0 || uint64(valueBytes) > uint64(^uint32(0)) {
		return ErrBadValueSize
	}
	return nil
}

// EntryOffset returns the byte offset of ref within the region.
func EntryOffset(ref Ref, valueBytes int) uint64 {
	return HeaderBytes + uint64(ref)*EntryBytes(valueBytes)
}
