package emufat16

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantReader(data []byte) ReadFunc {
	return func(offset uint32, buf []byte, name string) int32 {
		if offset >= uint32(len(data)) {
			return 0
		}
		return int32(copy(buf, data[offset:]))
	}
}

func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	e, err := NewEmulator(Config{BytesPerSector: 512})
	require.NoError(t, err)
	return e
}

func TestAddFileRejectsNilRead(t *testing.T) {
	e := newTestEmulator(t)
	err := e.AddFile("NOREAD", [3]byte{'T', 'X', 'T'}, 10, nil, nil)
	assert.ErrorIs(t, err, ErrMissingCallback)
}

func TestAddFileFillsFileTable(t *testing.T) {
	e, err := NewEmulator(Config{BytesPerSector: 512, FileTableCapacity: 2})
	require.NoError(t, err)

	data := []byte("hi")
	require.NoError(t, e.AddFile("A", [3]byte{'T', 'X', 'T'}, uint32(len(data)), constantReader(data), nil))
	require.NoError(t, e.AddFile("B", [3]byte{'T', 'X', 'T'}, uint32(len(data)), constantReader(data), nil))

	err = e.AddFile("C", [3]byte{'T', 'X', 'T'}, uint32(len(data)), constantReader(data), nil)
	assert.ErrorIs(t, err, ErrNoRoom)
}

func TestAddFileAllocatesNonOverlappingClusters(t *testing.T) {
	e := newTestEmulator(t)
	bpc := e.geo.bytesPerCluster()

	require.NoError(t, e.AddFile("ONE", [3]byte{'T', 'X', 'T'}, bpc+1, constantReader(nil), nil))
	require.NoError(t, e.AddFile("TWO", [3]byte{'T', 'X', 'T'}, bpc, constantReader(nil), nil))

	first := &e.files[0]
	second := &e.files[1]
	firstEnd := first.startCluster + e.geo.clusterCount(first.fileSize)
	assert.Equal(t, firstEnd, second.startCluster)
}

func TestResetClearsRegisteredFiles(t *testing.T) {
	e := newTestEmulator(t)
	require.NoError(t, e.AddFile("A", [3]byte{}, 1, constantReader(nil), nil))
	require.Equal(t, 1, e.usedFiles)

	e.Reset()
	assert.Equal(t, 0, e.usedFiles)
	assert.Equal(t, uint32(firstDataCluster), e.nextFreeCluster)
}

func TestAddFileDynamicClosesStaticAllocation(t *testing.T) {
	e := newTestEmulator(t)
	require.NoError(t, e.AddFileDynamic("DYN", [3]byte{'D', 'A', 'T'}, 0, uint16(firstDataCluster), constantReader(nil), nil))

	err := e.AddFile("STATIC", [3]byte{'T', 'X', 'T'}, 1, constantReader(nil), nil)
	assert.ErrorIs(t, err, ErrClosed)
}
