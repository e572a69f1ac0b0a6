package emufat16

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRootDirStartsWithVolumeLabel(t *testing.T) {
	e, err := NewEmulator(Config{BytesPerSector: 512, VolumeLabel: "MYVOL"})
	require.NoError(t, err)

	region := e.buildRootDir()
	var entry shortDirEntry
	require.NoError(t, unpackEntryForTest(region[:dirEntrySize], &entry))
	assert.Equal(t, uint8(attrVolumeID), entry.Attributes)
	assert.Equal(t, "MYVOL      ", string(entry.ShortFilename[:])+string(entry.FilenameExt[:]))
}

func TestBuildRootDirZeroFillsPastLastEntry(t *testing.T) {
	e := newTestEmulator(t)
	region := e.buildRootDir()
	// Only the volume label entry is populated; everything after it must
	// be zeroed, matching an empty directory's expected byte pattern.
	assert.Equal(t, make([]byte, dirEntrySize), region[dirEntrySize:dirEntrySize*2])
}

func TestBuildRootDirShortNameStillGetsOneLFNSlot(t *testing.T) {
	// spec.md §4.3: lfn_count = ceil(len(full_name)/13), minimum 1 — even
	// an 8.3-safe name like "SHORT.TXT" gets exactly one LFN slot ahead of
	// its short entry (scenario S2's "INFO.TXT" case).
	e := newTestEmulator(t)
	require.NoError(t, e.AddFile("SHORT", [3]byte{'T', 'X', 'T'}, 1, constantReader([]byte("x")), nil))

	entries := e.entriesForFile(&e.files[0])
	assert.Len(t, entries, 2)
}

func TestBuildRootDirLongNameGetsMultipleLFNSlots(t *testing.T) {
	e := newTestEmulator(t)
	require.NoError(t, e.AddFile("a-rather-long-file-name", [3]byte{'T', 'X', 'T'}, 1, constantReader([]byte("x")), nil))

	entries := e.entriesForFile(&e.files[0])
	assert.Greater(t, len(entries), 2)
}

func unpackEntryForTest(b []byte, v *shortDirEntry) error {
	// Mirrors packEntry's restruct.Pack counterpart, used only to assert
	// against what buildRootDir wrote.
	*v = shortDirEntry{}
	copy(v.ShortFilename[:], b[0:8])
	copy(v.FilenameExt[:], b[8:11])
	v.Attributes = b[11]
	return nil
}
