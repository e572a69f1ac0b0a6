// Package emufat16 synthesizes a byte-exact FAT16 block device from a
// configurable set of callback-backed "files", without any backing
// filesystem on disk. Every read of a file's data region is produced on
// demand by a caller-supplied callback and every host write is forwarded to
// one, while boot sector, FAT, and root-directory regions are generated
// byte-exact so off-the-shelf hosts can mount and browse the volume.
package emufat16

import (
	"github.com/boljen/go-bitmap"
)

// fileEntry is one registered file. name is not stored inline; it is a
// (start, length) pair into the Emulator's filename arena, the way the
// teacher's dir/objid types hold offsets into a shared window rather than
// an owned copy (design note §9, "Filename arena ownership").
type fileEntry struct {
	readFn  ReadFunc
	writeFn WriteFunc

	// nameStart/nameLen locate the file's base name (without extension) in
	// the filename arena.
	nameStart int
	nameLen   int
	ext       [3]byte

	fileSize     uint32
	startCluster uint32
	isDynamic    bool

	// registrationIndex is the file's 1-based position in AddFile/
	// AddFileDynamic call order; it feeds the short name's "~k" suffix
	// (design note §9, Open Question 4).
	registrationIndex int
}

// name returns the file's base name (without extension) as stored in the
// filename arena.
func (e *Emulator) name(f *fileEntry) string {
	return string(e.arena[f.nameStart : f.nameStart+f.nameLen])
}

// displayName returns the file's full "base.ext" name as used in LFN
// entries, omitting the dot when ext is empty.
func (e *Emulator) displayName(f *fileEntry) string {
	base := e.name(f)
	if f.ext == ([3]byte{}) {
		return base
	}
	ext := trimTrailingSpaces(f.ext[:])
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func trimTrailingSpaces(b []byte) string {
	i := len(b)
	for i > 0 && (b[i-1] == ' ' || b[i-1] == 0) {
		i--
	}
	return string(b[:i])
}

// Emulator is the synthesis engine: it owns the file table, filename arena,
// and volume-level scalar state, and exposes the block-level HostRead/
// HostWrite entry points plus the registration surface. It is
// single-threaded and non-reentrant (spec.md §5): callers must serialize
// all calls themselves.
type Emulator struct {
	cfg Config
	geo geometry

	files     []fileEntry
	usedFiles int

	arena     []byte
	usedArena int

	volumeLabel [volumeLabelLen]byte

	// nextFreeCluster is the next cluster a static AddFile will use. It is
	// set to 0 ("closed") once a dynamic file pins an explicit start
	// cluster, per spec.md §3/§4.6.
	nextFreeCluster uint32

	clusters bitmap.Bitmap

	newFileCB NewFileFunc

	// lfn accumulates an in-progress long file name chain the host is
	// writing into a previously-empty root directory slot, so the short
	// entry that terminates the chain can be matched against it by
	// checksum (spec.md §4.4's new-file detection state machine).
	lfn lfnAssembly
}

// NewEmulator validates cfg and constructs an Emulator with the file table
// and filename arena preallocated to their configured capacities, mirroring
// the teacher's fixed-capacity, no-further-heap-allocation posture
// (spec.md §5).
func NewEmulator(cfg Config) (*Emulator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Emulator{
		cfg:      cfg,
		geo:      newGeometry(cfg.BytesPerSector),
		files:    make([]fileEntry, 0, cfg.FileTableCapacity),
		arena:    make([]byte, 0, cfg.FilenameArenaCapacity),
		clusters: bitmap.New(maxCluster),
	}
	e.volumeLabel = normalizedVolumeLabel(cfg.VolumeLabel)
	e.nextFreeCluster = firstDataCluster
	e.info("emulator constructed",
		slogU32("bytes_per_sector", cfg.BytesPerSector),
		slogStr("volume_label", string(e.volumeLabel[:])),
	)
	return e, nil
}

// Reset clears all registered files and filenames and rewinds the cluster
// allocator, behaving identically to a freshly constructed Emulator with
// the same configuration (spec.md testable property 8).
func (e *Emulator) Reset() {
	e.files = e.files[:0]
	e.usedFiles = 0
	e.arena = e.arena[:0]
	e.usedArena = 0
	e.nextFreeCluster = firstDataCluster
	e.clusters = bitmap.New(maxCluster)
	e.lfn.reset()
	e.trace("reset")
}

// RegisterNewFileCallback stores the observer invoked by the root-directory
// interceptor when it detects the host created a new file (spec.md §4.6).
func (e *Emulator) RegisterNewFileCallback(cb NewFileFunc) {
	e.newFileCB = cb
}

// DiskBlockNum returns the total number of sectors the synthesized volume
// reports, per spec.md §6.
func (e *Emulator) DiskBlockNum() uint32 { return e.geo.totalSectors }

// DiskBlockSize returns the configured sector size in bytes, per spec.md §6.
func (e *Emulator) DiskBlockSize() uint32 { return e.geo.bytesPerSector }

// BytesPerCluster returns bytesPerSector * sectorsPerCluster, per spec.md §6.
func (e *Emulator) BytesPerCluster() uint32 { return e.geo.bytesPerCluster() }

// HostRead services a host read of size bytes starting at offset, routing
// it to the appropriate region synthesizer and zero-filling any bytes the
// synthesizer didn't produce. It always returns a non-negative count and
// never surfaces a distinct error (spec.md §7): out-of-range or misaligned
// requests are clamped rather than rejected.
func (e *Emulator) HostRead(offset uint32, buf []byte) int {
	size := uint32(len(buf))
	if size == 0 {
		return 0
	}
	e.trace("host_read", slogU32("offset", offset), slogU32("size", size))

	switch e.geo.regionFor(offset) {
	case regionBoot:
		return e.readBootSectorClamped(offset, buf)
	case regionFAT1:
		return e.readFATClamped(offset-e.geo.fat1Sector*e.geo.bytesPerSector, buf)
	case regionFAT2:
		return e.readFATClamped(offset-e.geo.fat2Sector*e.geo.bytesPerSector, buf)
	case regionRoot:
		return e.readRootDirClamped(offset-e.geo.rootSector*e.geo.bytesPerSector, buf)
	default:
		return e.readData(offset-e.geo.dataSector*e.geo.bytesPerSector, buf)
	}
}

// HostWrite services a host write of size bytes starting at offset. It
// always reports the full size as consumed, per spec.md §6.
func (e *Emulator) HostWrite(offset uint32, buf []byte) int {
	size := len(buf)
	if size == 0 {
		return 0
	}
	e.trace("host_write", slogU32("offset", offset), slogU32("size", uint32(size)))

	switch e.geo.regionFor(offset) {
	case regionRoot:
		e.interceptRootDirWrite(offset-e.geo.rootSector*e.geo.bytesPerSector, buf)
	case regionData:
		e.writeData(offset-e.geo.dataSector*e.geo.bytesPerSector, buf)
	default:
		// Boot sector and FAT regions are not persisted; the core's only
		// writable surface is the root directory (lifecycle events) and
		// the data region (file contents), per spec.md §4.
	}
	return size
}
