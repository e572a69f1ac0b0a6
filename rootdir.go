package emufat16

// volumeLabelEntry builds the slot-0 volume label directory entry, the way
// readRootDirectory in the original source always emits one before any
// file entries.
func (e *Emulator) volumeLabelEntry() shortDirEntry {
	return shortDirEntry{
		ShortFilename: [8]byte(e.volumeLabel[:8]),
		FilenameExt:   [3]byte(e.volumeLabel[8:11]),
		Attributes:    attrVolumeID,
	}
}

// entriesForFile returns the on-disk entry sequence for one registered
// file: its LFN chain (emitted for every non-empty display name, at least
// one entry even for an 8.3-safe name) immediately followed by the short
// entry, matching readRootDirectory's per-file emission order.
func (e *Emulator) entriesForFile(f *fileEntry) [][]byte {
	display := e.displayName(f)
	short := e.currentShortName(f)

	attrs := uint8(attrSystem)
	if f.writeFn == nil {
		attrs |= attrReadOnly
	}
	shortEnt := shortDirEntry{
		ShortFilename: [8]byte(short[:8]),
		FilenameExt:   [3]byte(short[8:11]),
		Attributes:    attrs,
		ClusterLow:    uint16(f.startCluster),
		ClusterHigh:   uint16(f.startCluster >> 16),
		FileSize:      f.fileSize,
	}

	var out [][]byte
	for _, lfn := range buildLFNEntries(display, short) {
		out = append(out, packEntry(&lfn))
	}
	out = append(out, packEntry(&shortEnt))
	return out
}

// buildRootDir synthesizes the full root directory region: the volume
// label entry, then every registered file's LFN chain and short entry in
// registration order, zero-padded to the region's fixed size.
func (e *Emulator) buildRootDir() []byte {
	region := make([]byte, e.geo.sectorsPerRootDir*e.geo.bytesPerSector)

	off := 0
	writeEntry := func(b []byte) {
		if off+dirEntrySize > len(region) {
			return
		}
		copy(region[off:off+dirEntrySize], b)
		off += dirEntrySize
	}

	writeEntry(packEntry(e.volumeLabelEntryPtr()))
	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		if f.isDynamic && f.startCluster == 0 {
			continue // not yet promoted to a concrete start cluster
		}
		for _, b := range e.entriesForFile(f) {
			writeEntry(b)
		}
	}
	return region
}

// currentShortName computes a file's 8.3 short name the same way
// regardless of whether it's being written into the root directory or
// matched against an incoming host write, so the two never disagree. Per
// spec.md §4.3, the "~k" suffix is only applied when the base name itself
// doesn't fit in 8 bytes — a short-named file still gets a full LFN chain
// (minimum 1 entry) but keeps its unsuffixed short name (scenario S2).
func (e *Emulator) currentShortName(f *fileEntry) [11]byte {
	needsSuffix := f.nameLen > 8
	return shortNameFor8_3(e.name(f), f.ext, f.registrationIndex, needsSuffix)
}

func (e *Emulator) volumeLabelEntryPtr() *shortDirEntry {
	v := e.volumeLabelEntry()
	return &v
}

// readRootDirClamped copies size bytes of the synthesized root directory
// starting at offset into buf, zero-filling past the region's end.
func (e *Emulator) readRootDirClamped(offset uint32, buf []byte) int {
	region := e.buildRootDir()
	n := copy(buf, shiftedWindow(region, offset))
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return len(buf)
}
