package emufat16

import "encoding/binary"

// FAT16 reserved entry values, named to match the original source's
// putentry() call sites in readFileAllocationTable.
const (
	fatMediaDescriptor = 0xFFF8 // entry 0: media descriptor mirror
	fatReservedEntry   = 0x8000 // entry 1: reserved/dirty bit
	fatChainEnd        = 0xFFFF // final entry of a file's cluster chain
)

// readFATClamped synthesizes size bytes of a FAT16 table region starting at
// the given offset relative to the start of that FAT copy. Both FAT copies
// are always identical, so fat1Sector and fat2Sector both resolve here with
// a region-relative offset. Any offset and size are accepted: the window
// is copied byte for byte from the table, so a misaligned window gets the
// partial entries it overlaps, and bytes past the table's end are
// zero-filled rather than rejected: HostRead never fails (spec.md §7).
func (e *Emulator) readFATClamped(offset uint32, buf []byte) int {
	table := e.buildFATTable()
	n := copy(buf, shiftedWindow(table, offset))
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return len(buf)
}

// buildFATTable synthesizes one full FAT16 table: entry 0 and 1 are the
// reserved media descriptor and dirty-bit entries, and every registered
// file contributes a linear cluster chain terminated by fatChainEnd.
func (e *Emulator) buildFATTable() []byte {
	table := make([]byte, e.geo.sectorsPerFAT*e.geo.bytesPerSector)
	binary.LittleEndian.PutUint16(table[0*fatEntrySize:], fatMediaDescriptor)
	binary.LittleEndian.PutUint16(table[1*fatEntrySize:], fatReservedEntry)

	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		if f.startCluster == 0 {
			continue // dynamic file not yet given a start cluster
		}
		n := e.geo.clusterCount(f.fileSize)
		cluster := f.startCluster
		for c := uint32(0); c < n; c++ {
			off := cluster * fatEntrySize
			if int(off)+fatEntrySize > len(table) {
				break // ErrOutOfClusters was already reported at registration time
			}
			if c == n-1 {
				binary.LittleEndian.PutUint16(table[off:], fatChainEnd)
			} else {
				binary.LittleEndian.PutUint16(table[off:], uint16(cluster+1))
			}
			cluster++
		}
	}
	return table
}

// shiftedWindow returns the suffix of buf starting at offset, or an empty
// slice if offset is at or past the end of buf.
func shiftedWindow(buf []byte, offset uint32) []byte {
	if offset >= uint32(len(buf)) {
		return nil
	}
	return buf[offset:]
}
