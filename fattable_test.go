package emufat16

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFATTableReservedEntries(t *testing.T) {
	e := newTestEmulator(t)
	table := e.buildFATTable()
	assert.Equal(t, uint16(0xFFF8), binary.LittleEndian.Uint16(table[0:]))
	assert.Equal(t, uint16(0x8000), binary.LittleEndian.Uint16(table[2:]))
}

func TestFATTableChainEndsAtLastCluster(t *testing.T) {
	e := newTestEmulator(t)
	bpc := e.geo.bytesPerCluster()
	require.NoError(t, e.AddFile("CHAIN", [3]byte{'B', 'I', 'N'}, bpc*3, constantReader(nil), nil))

	f := &e.files[0]
	n := e.geo.clusterCount(f.fileSize)
	table := e.buildFATTable()

	for c := uint32(0); c < n-1; c++ {
		cluster := f.startCluster + c
		entry := binary.LittleEndian.Uint16(table[cluster*fatEntrySize:])
		assert.Equal(t, uint16(cluster+1), entry) // entry points at the next cluster in the chain
	}
	last := f.startCluster + n - 1
	assert.Equal(t, uint16(fatChainEnd), binary.LittleEndian.Uint16(table[last*fatEntrySize:]))
}

func TestReadFATClampedZeroFillsTail(t *testing.T) {
	e := newTestEmulator(t)
	buf := make([]byte, 4)
	for i := range buf {
		buf[i] = 0xFF
	}
	n := e.readFATClamped(e.geo.sectorsPerFAT*e.geo.bytesPerSector-2, buf)
	require.Equal(t, len(buf), n)
	assert.Equal(t, byte(0), buf[2])
	assert.Equal(t, byte(0), buf[3])
}
