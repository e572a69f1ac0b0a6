package emufat16

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"
)

// bootSignatureOffset is the fixed offset of the boot signature (bytes
// 0x55 0xAA, i.e. the little-endian word 0xAA55), independent of sector
// size, matching every FAT implementation's expectation that the
// signature sits at byte 510 of the first sector.
const bootSignatureOffset = 510

// biosParamBlockDOS400 mirrors fatfs.h's FAT_BPB_DOS4_00_t: the DOS 2.00
// fields, extended by DOS 3.31's geometry fields, extended by DOS 4.00's
// extended boot record fields. restruct packs it little-endian with no
// padding, matching the on-disk BPB exactly.
type biosParamBlockDOS400 struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumFATs             uint8
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               uint8
	SectorsPerFAT16     uint16

	// DOS 3.31 extension.
	SectorsPerTrack uint16
	NumHeads        uint16
	HiddenSectors   uint32
	TotalSectors32  uint32

	// DOS 4.00 extended boot record.
	DriveNumber  uint8
	Reserved1    uint8
	BootSig      uint8
	VolumeID     uint32
	VolumeLabel  [volumeLabelLen]byte
	FileSysType  [8]byte
}

const dos400BootSig = 0x29

// buildBootSector synthesizes a full sector's worth of boot sector bytes:
// a 3-byte jump instruction, 8-byte OEM name, the DOS 4.00 BPB, zero
// padding, and the 0x55 0xAA signature at its fixed offset, matching
// readBootsector in the original source.
func (e *Emulator) buildBootSector() []byte {
	sector := make([]byte, e.geo.bytesPerSector)

	// EB 3C 90 is the classic "jmp short; nop" x86 instruction most FAT
	// drivers sanity-check before trusting the rest of the sector.
	sector[0] = 0xEB
	sector[1] = 0x3C
	sector[2] = 0x90
	copy(sector[3:11], []byte("EmuFATFS"))

	bpb := biosParamBlockDOS400{
		BytesPerSector:      uint16(e.geo.bytesPerSector),
		SectorsPerCluster:   sectorsPerCluster,
		ReservedSectorCount: reservedSectors,
		NumFATs:             2,
		RootEntryCount:      uint16(e.geo.sectorsPerRootDir * e.geo.bytesPerSector / dirEntrySize),
		TotalSectors16:      0, // volume always exceeds 16-bit range; see TotalSectors32
		Media:                0xF8,
		SectorsPerFAT16:     uint16(e.geo.sectorsPerFAT),
		SectorsPerTrack:     1,
		NumHeads:            1,
		HiddenSectors:       0,
		TotalSectors32:      e.geo.totalSectors,
		DriveNumber:         0,
		Reserved1:           0,
		BootSig:             dos400BootSig,
		VolumeID:            0x6D686974,
		FileSysType:         [8]byte{'F', 'A', 'T', '1', '6', ' ', ' ', ' '},
	}
	bpb.VolumeLabel = e.volumeLabel

	packed, err := restruct.Pack(binary.LittleEndian, &bpb)
	if err != nil {
		// bpb's layout is fixed at compile time; a packing failure here
		// would mean the struct itself is malformed, not a runtime
		// condition HostRead's no-error contract needs to cover.
		e.logerror("bpb pack failed", slogStr("error", err.Error()))
		return sector
	}
	copy(sector[11:], packed)

	binary.LittleEndian.PutUint16(sector[bootSignatureOffset:], 0xAA55)
	return sector
}

// readBootSectorClamped synthesizes the single boot sector and copies size
// bytes starting at offset into buf, zero-filling anything beyond the
// sector's own length.
func (e *Emulator) readBootSectorClamped(offset uint32, buf []byte) int {
	sector := e.buildBootSector()
	n := copy(buf, shiftedWindow(sector, offset))
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return len(buf)
}
