package emufat16

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostReadBootSectorSignature(t *testing.T) {
	e := newTestEmulator(t)
	buf := make([]byte, e.geo.bytesPerSector)
	n := e.HostRead(0, buf)
	require.Equal(t, len(buf), n)
	assert.Equal(t, uint16(0xAA55), binary.LittleEndian.Uint16(buf[bootSignatureOffset:]))
}

func TestHostReadNeverShrinksBuffer(t *testing.T) {
	e := newTestEmulator(t)
	buf := make([]byte, 17)
	n := e.HostRead(e.geo.dataSector*e.geo.bytesPerSector*3, buf)
	assert.Equal(t, len(buf), n)
}

func TestHostReadRoutesDataRegionToCallback(t *testing.T) {
	e := newTestEmulator(t)
	payload := []byte("payload-bytes")
	require.NoError(t, e.AddFile("PAYLOAD", [3]byte{'B', 'I', 'N'}, uint32(len(payload)), constantReader(payload), nil))

	f := &e.files[0]
	dataOffset := (f.startCluster - firstDataCluster) * e.geo.bytesPerCluster()
	absOffset := e.geo.dataSector*e.geo.bytesPerSector + dataOffset

	buf := make([]byte, len(payload))
	n := e.HostRead(absOffset, buf)
	require.Equal(t, len(buf), n)
	assert.Equal(t, payload, buf)
}

func TestHostReadZeroFillsUnownedClusters(t *testing.T) {
	e := newTestEmulator(t)
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0xAA
	}
	n := e.HostRead(e.geo.dataSector*e.geo.bytesPerSector, buf)
	require.Equal(t, len(buf), n)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}

func TestHostWriteDeletionNotifiesCallback(t *testing.T) {
	e := newTestEmulator(t)
	var deletedName string
	write := func(offset uint32, buf []byte, name string) int32 {
		if offset == deletedOffset {
			deletedName = name
		}
		return int32(len(buf))
	}
	require.NoError(t, e.AddFile("GONE", [3]byte{'T', 'X', 'T'}, 4, constantReader([]byte("data")), write))

	short := e.currentShortName(&e.files[0])
	entry := make([]byte, dirEntrySize)
	copy(entry, short[:])
	entry[0] = deletedMarker

	rootAbs := e.geo.rootSector * e.geo.bytesPerSector
	// Write the deleted-marker entry directly into the slot after the
	// volume label; handleDeletionWrite matches by name bytes regardless
	// of where a real LFN chain would otherwise land the short entry.
	e.HostWrite(rootAbs+dirEntrySize, entry)

	assert.Equal(t, "GONE", deletedName)
	assert.Equal(t, uint32(0), e.files[0].startCluster)
}
