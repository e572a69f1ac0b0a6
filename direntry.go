package emufat16

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"

	"github.com/synthvol/emufat16/internal/utf16x"
)

// Directory entry attribute bits, named after fatfs.h's
// FILEENTRY_ATTR_* constants.
const (
	attrReadOnly   = 0x01
	attrHidden     = 0x02
	attrSystem     = 0x04
	attrVolumeID   = 0x08
	attrSubdir     = 0x10
	attrArchive    = 0x20
	attrLongName   = 0x0F // read-only | hidden | system | volume-id
)

const (
	lfnEntryLast    = 0x40
	lfnEntryDeleted = 0x80
	lfnMaxNameLen   = 13
)

// shortDirEntry mirrors fatfs.h's FAT_DirectoryTableFileEntry_t.
type shortDirEntry struct {
	ShortFilename [8]byte
	FilenameExt   [3]byte
	Attributes    uint8
	Reserved      uint8
	CreateTimeMs  uint8
	CreateTime    uint16
	CreateDate    uint16
	AccessedDate  uint16
	ClusterHigh   uint16
	ModifiedTime  uint16
	ModifiedDate  uint16
	ClusterLow    uint16
	FileSize      uint32
}

// lfnDirEntry mirrors fatfs.h's FAT_DirectoryTableLFNEntry_t: 13 UCS-2
// characters of a long file name split across three non-contiguous fields,
// the classic VFAT layout.
type lfnDirEntry struct {
	SequenceNumber uint8
	Name1          [5]uint16
	Attributes     uint8
	Type           uint8
	Checksum       uint8
	Name2          [6]uint16
	Zero           uint16
	Name3          [2]uint16
}

func packEntry(v interface{}) []byte {
	b, err := restruct.Pack(binary.LittleEndian, v)
	if err != nil {
		panic(fmt.Sprintf("emufat16: fixed-layout directory entry failed to pack: %v", err))
	}
	return b
}

// lfnChecksum computes the VFAT checksum of an 8.3 short name, used to tie
// a chain of LFN entries to the short entry that follows them. The
// rotate-right-then-add recurrence is identical to the teacher's sum_sfn
// and the original source's lfn_checksum.
func lfnChecksum(shortName [11]byte) uint8 {
	var sum uint8
	for _, c := range shortName {
		sum = (sum >> 1) + (sum << 7) + c
	}
	return sum
}

// neededLFNEntries returns how many 13-character LFN entries are needed to
// hold a name of the given rune length, matching the original source's
// neededExtraEntries calculation.
func neededLFNEntries(nameLen int) int {
	if nameLen == 0 {
		return 0
	}
	n := nameLen / lfnMaxNameLen
	if nameLen%lfnMaxNameLen != 0 {
		n++
	}
	return n
}

// shortNameFor8_3 builds the 11-byte (8+3) short name for a registered
// file: the base name uppercased and truncated/padded to 8 bytes, a
// "~k" numeric-tail suffix written at byte offset 6 when the file's index
// requires disambiguation (k = the file's 1-based registration index,
// per design note §9's resolution of Open Question 4, not a collision
// counter), and the extension uppercased and padded to 3 bytes.
func shortNameFor8_3(base string, ext [3]byte, registrationIndex int, needsSuffix bool) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}

	upperBase := upperCaser.String(base)
	n := copy(out[:8], sanitizeShortNameBytes(upperBase))

	if needsSuffix {
		suffix := fmt.Sprintf("~%d", registrationIndex)
		at := 6
		if n < 6 {
			at = n
		}
		copy(out[at:8], suffix)
	}

	upperExt := upperCaser.String(string(ext[:]))
	copy(out[8:11], upperExt)
	return out
}

// sanitizeShortNameBytes replaces the characters FAT16 short names forbid
// with underscores, matching the original source's handling of '.' inside
// the base name.
func sanitizeShortNameBytes(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		switch c {
		case '.', '*', '?', '<', '>', '|', '"', '\\', '/', ':':
			b[i] = '_'
		}
	}
	return b
}

// buildLFNEntries returns the chain of LFN entries for name, in the order
// they must be written to disk: highest sequence number (with lfnEntryLast
// set) first, descending to sequence 1, immediately preceding the short
// entry they describe.
func buildLFNEntries(name string, shortName [11]byte) []lfnDirEntry {
	count := neededLFNEntries(len(name))
	if count == 0 {
		return nil
	}
	checksum := lfnChecksum(shortName)

	units := make([]uint16, count*lfnMaxNameLen)
	for i := range units {
		units[i] = 0xFFFF // pad unused trailing slots with 0xFFFF per VFAT
	}
	nameBytes := []byte(name)
	u16 := make([]byte, len(nameBytes)*4)
	n, _ := utf16x.FromUTF8(u16, nameBytes, binary.LittleEndian)
	for i := 0; i*2 < n; i++ {
		units[i] = binary.LittleEndian.Uint16(u16[i*2:])
	}
	// The terminating entry gets one trailing 0x0000 instead of 0xFFFF
	// immediately after the name's last character, if room remains.
	if len(name) < count*lfnMaxNameLen {
		units[len(name)] = 0x0000
	}

	entries := make([]lfnDirEntry, count)
	for i := 0; i < count; i++ {
		seq := uint8(i + 1)
		e := lfnDirEntry{
			SequenceNumber: seq,
			Attributes:     attrLongName,
			Type:           0,
			Checksum:       checksum,
		}
		if i == count-1 {
			e.SequenceNumber |= lfnEntryLast
		}
		off := i * lfnMaxNameLen
		copy(e.Name1[:], units[off:off+5])
		copy(e.Name2[:], units[off+5:off+11])
		copy(e.Name3[:], units[off+11:off+13])
		entries[i] = e
	}
	// Written to disk in descending sequence order: reverse entries so
	// index 0 is the highest (last) sequence number.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}
