package emufat16

// Fixed FAT16 geometry constants, named after the original EmuFATFS source
// this package was distilled from (see SPEC_FULL.md §4.4).
const (
	// sectorsPerCluster is fixed at the FAT16 maximum.
	sectorsPerCluster = 128

	// reservedSectors is the single boot sector.
	reservedSectors = 1

	// fatRegionBytes is the fixed byte budget given to each FAT table
	// and to the root directory region, independent of sector size.
	fatRegionBytes = 0x20000

	// firstDataCluster is the first cluster number usable for file data;
	// clusters 0 and 1 are reserved FAT entries (media descriptor mirror
	// and the dirty-bit entry).
	firstDataCluster = 2

	// maxCluster is one past the largest cluster number FAT16 can address.
	maxCluster = 0x10000

	// fat16ClusterThreshold is the cluster count dosfstools/Windows use to
	// decide a volume is FAT16 rather than FAT12. TotalSectors is sized to
	// clear it so host drivers commit to FAT16, per the original source's
	// FAT16_THRESHOLD constant.
	fat16ClusterThreshold = 65525

	// dirEntrySize is the size in bytes of both 8.3 and LFN directory
	// entries.
	dirEntrySize = 32

	// fatEntrySize is the size in bytes of one FAT16 table entry.
	fatEntrySize = 2
)

// geometry holds the sector-size-dependent layout of a volume: the absolute
// sector boundaries of every region, precomputed once at construction. The
// shape mirrors sectors.go's biosParamBlock accessor pattern from the
// teacher, but here geometry is a plain value derived once instead of a
// window into a live sector buffer.
type geometry struct {
	bytesPerSector uint32

	sectorsPerFAT    uint32
	sectorsPerRootDir uint32

	bootSector  uint32
	fat1Sector  uint32
	fat2Sector  uint32
	rootSector  uint32
	dataSector  uint32

	totalSectors uint32
}

// bytesPerCluster returns sectorsPerCluster * bytesPerSector.
func (g geometry) bytesPerCluster() uint32 {
	return sectorsPerCluster * g.bytesPerSector
}

// newGeometry computes the region layout for a given sector size. bps must
// already have been validated (power of two, >= 512) by the caller.
func newGeometry(bps uint32) geometry {
	sectorsPerFAT := fatRegionBytes / bps
	sectorsPerRootDir := fatRegionBytes / bps

	g := geometry{
		bytesPerSector:    bps,
		sectorsPerFAT:     sectorsPerFAT,
		sectorsPerRootDir: sectorsPerRootDir,
	}
	g.bootSector = 0
	g.fat1Sector = reservedSectors
	g.fat2Sector = g.fat1Sector + sectorsPerFAT
	g.rootSector = g.fat2Sector + sectorsPerFAT
	g.dataSector = g.rootSector + sectorsPerRootDir

	// Place TotalSectors just above the FAT16 cluster threshold so host
	// drivers commit to FAT16 rather than FAT12, per original source's
	// FAT16_THRESHOLD math. The data region alone must clear the
	// threshold; boot/FAT/root-dir sectors sit below dataSector and don't
	// count toward the data cluster count, so they're added on top rather
	// than folded into the threshold math.
	g.totalSectors = g.dataSector + (fat16ClusterThreshold+4)*sectorsPerCluster
	return g
}

// sectorOf returns the absolute sector number containing byte offset off.
func (g geometry) sectorOf(off uint32) uint32 {
	return off / g.bytesPerSector
}

// region identifies which of the five synthesized regions a byte offset
// falls into. Region routing is a partition of [0, TotalSectors*BytesPerSector):
// every offset belongs to exactly one of these (spec.md testable property 7).
type region uint8

const (
	regionBoot region = iota
	regionFAT1
	regionFAT2
	regionRoot
	regionData
)

// regionFor classifies an absolute byte offset.
func (g geometry) regionFor(off uint32) region {
	sector := g.sectorOf(off)
	switch {
	case sector < g.fat1Sector:
		return regionBoot
	case sector < g.fat2Sector:
		return regionFAT1
	case sector < g.rootSector:
		return regionFAT2
	case sector < g.dataSector:
		return regionRoot
	default:
		return regionData
	}
}

// clusterCount returns the number of clusters a file of the given size
// occupies: max(1, ceil(size / bytesPerCluster)).
func (g geometry) clusterCount(size uint32) uint32 {
	bpc := g.bytesPerCluster()
	n := size / bpc
	if size%bpc != 0 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}
