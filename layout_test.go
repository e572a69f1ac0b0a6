package emufat16

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionForPartitionsOffsetSpace(t *testing.T) {
	g := newGeometry(512)

	seen := map[region]bool{}
	step := g.bytesPerSector
	for off := uint32(0); off < g.dataSector*g.bytesPerSector+4*g.bytesPerCluster(); off += step {
		seen[g.regionFor(off)] = true
	}
	for _, r := range []region{regionBoot, regionFAT1, regionFAT2, regionRoot, regionData} {
		assert.Truef(t, seen[r], "region %d never reached while sweeping offsets", r)
	}
}

func TestRegionForOrdering(t *testing.T) {
	g := newGeometry(512)
	require.Equal(t, regionBoot, g.regionFor(0))
	require.Equal(t, regionFAT1, g.regionFor(g.fat1Sector*g.bytesPerSector))
	require.Equal(t, regionFAT2, g.regionFor(g.fat2Sector*g.bytesPerSector))
	require.Equal(t, regionRoot, g.regionFor(g.rootSector*g.bytesPerSector))
	require.Equal(t, regionData, g.regionFor(g.dataSector*g.bytesPerSector))
}

func TestClusterCountRoundsUpAndFloorsAtOne(t *testing.T) {
	g := newGeometry(512)
	bpc := g.bytesPerCluster()

	assert.Equal(t, uint32(1), g.clusterCount(0))
	assert.Equal(t, uint32(1), g.clusterCount(1))
	assert.Equal(t, uint32(1), g.clusterCount(bpc))
	assert.Equal(t, uint32(2), g.clusterCount(bpc+1))
}

func TestTotalSectorsClearsFAT16Threshold(t *testing.T) {
	for _, bps := range []uint32{512, 1024, 2048, 4096} {
		g := newGeometry(bps)
		dataSectors := g.totalSectors - g.dataSector
		dataClusters := dataSectors / sectorsPerCluster
		assert.Greaterf(t, dataClusters, uint32(fat16ClusterThreshold), "bps=%d", bps)
	}
}
