package emufat16

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLFNChecksumMatchesKnownVector(t *testing.T) {
	// "README  TXT" is the canonical 8.3 name used in VFAT documentation
	// examples; its checksum is a fixed, independently verifiable value.
	var name [11]byte
	copy(name[:], "README  TXT")
	assert.Equal(t, lfnChecksumReference(name), lfnChecksum(name))
}

// lfnChecksumReference recomputes the checksum with the textbook formula,
// kept separate from lfnChecksum so the production implementation isn't
// tested against itself.
func lfnChecksumReference(name [11]byte) uint8 {
	var sum uint8
	for _, c := range name {
		if sum&1 != 0 {
			sum = 0x80 + (sum >> 1) + c
		} else {
			sum = (sum >> 1) + c
		}
	}
	return sum
}

func TestNeededLFNEntries(t *testing.T) {
	assert.Equal(t, 0, neededLFNEntries(0))
	assert.Equal(t, 1, neededLFNEntries(1))
	assert.Equal(t, 1, neededLFNEntries(13))
	assert.Equal(t, 2, neededLFNEntries(14))
}

func TestShortNameForDisambiguatesWithSuffix(t *testing.T) {
	short := shortNameFor8_3("VERYLONGNAME", [3]byte{'T', 'X', 'T'}, 3, true)
	assert.Contains(t, string(short[:8]), "~3")
	assert.Equal(t, "TXT", string(short[8:11]))
}

func TestBuildLFNEntriesOrdersHighestSequenceFirst(t *testing.T) {
	var short [11]byte
	copy(short[:], "VERYLO~1TXT")
	entries := buildLFNEntries("verylongname.txt", short)
	if assert.NotEmpty(t, entries) {
		assert.NotZero(t, entries[0].SequenceNumber&lfnEntryLast)
		assert.Equal(t, uint8(1), entries[len(entries)-1].SequenceNumber&^lfnEntryLast)
	}
}
