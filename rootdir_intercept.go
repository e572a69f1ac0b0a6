package emufat16

import (
	"encoding/binary"

	"github.com/synthvol/emufat16/internal/utf16x"
)

// deletedMarker is the first byte FAT directory entries use to flag a
// deleted entry.
const deletedMarker = 0xE5

// lfnAssembly tracks an in-progress long-file-name chain the host has
// written into the root directory but not yet terminated with its short
// entry, so that when the short entry does arrive it can be matched
// against the accumulated name by checksum (spec.md §4.4).
type lfnAssembly struct {
	active      bool
	checksum    uint8
	expectSeq   uint8 // sequence number of the last accepted entry; the next must be one lower
	units       [lfnMaxNameLen * 20]uint16
	unitCount   int
}

func (l *lfnAssembly) reset() { *l = lfnAssembly{} }

// interceptRootDirWrite inspects a host write into the root directory
// region, entry by entry, recovering file lifecycle events the host's
// filesystem driver doesn't otherwise expose: per spec.md §4.4, the data
// region's own writes never tell us a file shrank, was deleted, or was
// newly created by the host scribbling 8.3/LFN entries directly; only
// watching the root directory surfaces those.
func (e *Emulator) interceptRootDirWrite(offset uint32, buf []byte) {
	// Walk every directory entry the write window overlaps; partial-entry
	// writes (e.g. a single byte toggling the deleted marker) are skipped
	// since handleRootDirEntryWrite needs the whole 32-byte entry.
	for entryOff := offset - offset%dirEntrySize; entryOff < offset+uint32(len(buf)); entryOff += dirEntrySize {
		lo := int(entryOff) - int(offset)
		hi := lo + dirEntrySize
		if lo < 0 || hi > len(buf) {
			continue // caller didn't supply the whole entry; nothing reliable to parse
		}
		e.handleRootDirEntryWrite(buf[lo:hi])
	}
}

func (e *Emulator) handleRootDirEntryWrite(entry []byte) {
	if len(entry) != dirEntrySize {
		return
	}

	attrs := entry[11]
	if attrs&attrLongName == attrLongName {
		e.handleLFNEntryWrite(entry)
		return
	}

	if entry[0] == 0 {
		// Empty slot; nothing to recover.
		e.lfn.reset()
		return
	}
	if entry[0] == deletedMarker {
		e.handleDeletionWrite(entry)
		e.lfn.reset()
		return
	}
	e.handleShortEntryWrite(entry)
}

func (e *Emulator) handleLFNEntryWrite(entry []byte) {
	seq := entry[0] &^ lfnEntryLast
	checksum := entry[13]

	if entry[0]&lfnEntryLast != 0 {
		e.lfn.reset()
		e.lfn.active = true
		e.lfn.checksum = checksum
		e.lfn.expectSeq = seq
	} else if !e.lfn.active || checksum != e.lfn.checksum || seq != e.lfn.expectSeq-1 {
		// Out-of-order or orphaned continuation entry; the chain this
		// entry belonged to cannot be reassembled reliably.
		e.lfn.reset()
		return
	} else {
		e.lfn.expectSeq = seq
	}

	units := decodeLFNUnits(entry)
	base := int(seq-1) * lfnMaxNameLen
	if base+lfnMaxNameLen > len(e.lfn.units) {
		e.lfn.reset()
		return
	}
	copy(e.lfn.units[base:base+lfnMaxNameLen], units[:])
	if end := base + lfnMaxNameLen; end > e.lfn.unitCount {
		e.lfn.unitCount = end
	}
}

func decodeLFNUnits(entry []byte) [lfnMaxNameLen]uint16 {
	var units [lfnMaxNameLen]uint16
	for i := 0; i < 5; i++ {
		units[i] = binary.LittleEndian.Uint16(entry[1+i*2:])
	}
	for i := 0; i < 6; i++ {
		units[5+i] = binary.LittleEndian.Uint16(entry[14+i*2:])
	}
	for i := 0; i < 2; i++ {
		units[11+i] = binary.LittleEndian.Uint16(entry[28+i*2:])
	}
	return units
}

// handleShortEntryWrite handles a short (8.3) entry write. If it matches a
// file we already track (same short name bytes), it is a metadata mutation
// (spec.md §4.4's dynamic-file resize/move path: update the start cluster,
// and the recorded size only when it needs the same number of clusters as
// before). Otherwise it is either a short-name-only new file
// (no preceding LFN chain: per design note §9's resolution of Open
// Question 2, this does NOT invoke the new-file callback) or the
// terminator of an LFN chain we were assembling (the new-file callback
// path).
func (e *Emulator) handleShortEntryWrite(entry []byte) {
	defer e.lfn.reset()

	var shortName [11]byte
	copy(shortName[:], entry[0:11])

	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		existing := e.currentShortName(f)
		if existing != shortName {
			continue
		}
		newSize := binary.LittleEndian.Uint32(entry[28:32])
		newCluster := uint32(binary.LittleEndian.Uint16(entry[26:28]))
		if newSize == 0 && f.fileSize != 0 {
			// file_size dropping to 0 is the second deletion trigger spec.md
			// §4.4 defines alongside the deleted-marker byte (scenario S5):
			// some hosts truncate an entry's size to 0 rather than writing
			// 0xE5 over its first byte.
			if f.writeFn != nil {
				f.writeFn(deletedOffset, nil, e.name(f))
			}
			f.startCluster = 0
			return
		}
		if f.isDynamic {
			// A size needing a different cluster count is ignored, so the
			// file's FAT chain keeps its length.
			if e.geo.clusterCount(newSize) == e.geo.clusterCount(f.fileSize) {
				f.fileSize = newSize
			}
			if newCluster != 0 {
				f.startCluster = newCluster
			}
			e.debug("dynamic file metadata updated",
				slogStr("name", e.name(f)), slogU32("size", f.fileSize),
				slogStr("size_human", humanSize(f.fileSize)))
		}
		return
	}

	if !e.lfn.active {
		// Short-name-only creation; spec's Open Question 2 decision keeps
		// this silent rather than synthesizing a callback from an 8.3 name
		// alone.
		return
	}
	if lfnChecksum(shortName) != e.lfn.checksum {
		return
	}

	name := unitsToUTF8(e.lfn.units[:e.lfn.unitCount])
	var ext [3]byte
	copy(ext[:], entry[8:11])
	size := binary.LittleEndian.Uint32(entry[28:32])
	cluster := binary.LittleEndian.Uint16(entry[26:28])

	if e.newFileCB != nil {
		e.newFileCB(name, ext, size, cluster)
	}
}

func unitsToUTF8(units []uint16) string {
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		if u == 0x0000 || u == 0xFFFF {
			break
		}
		b = append(b, byte(u), byte(u>>8))
	}
	dst := make([]byte, len(b)*3+3)
	n, _ := utf16x.ToUTF8(dst, b, binary.LittleEndian)
	return string(dst[:n])
}

// handleDeletionWrite matches a deleted-marker entry against a tracked
// file by its remaining 10 name/ext bytes (the marker overwrote only the
// first byte) and forwards the deletion through that file's WriteFunc with
// the spec's deletedOffset sentinel, the data-region write path's only
// channel for "this file is gone" (spec.md §4.4/§6).
func (e *Emulator) handleDeletionWrite(entry []byte) {
	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		existing := e.currentShortName(f)
		if string(existing[1:11]) != string(entry[1:11]) {
			continue
		}
		if f.writeFn != nil {
			f.writeFn(deletedOffset, nil, e.name(f))
		}
		f.startCluster = 0
		return
	}
}
