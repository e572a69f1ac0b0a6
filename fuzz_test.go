package emufat16

import "testing"

// FuzzRegionForIsATotalPartition checks testable property 7: every byte
// offset in the addressable range belongs to exactly one region, and
// regionFor never panics on an arbitrary offset.
func FuzzRegionForIsATotalPartition(f *testing.F) {
	g := newGeometry(512)
	f.Add(uint32(0))
	f.Add(g.fat1Sector * g.bytesPerSector)
	f.Add(g.dataSector * g.bytesPerSector)
	f.Add(^uint32(0))

	f.Fuzz(func(t *testing.T, offset uint32) {
		r := g.regionFor(offset)
		if r > regionData {
			t.Fatalf("regionFor(%d) returned out-of-range region %d", offset, r)
		}
	})
}

// FuzzHostReadNeverPanics drives HostRead with arbitrary offsets and
// buffer sizes and checks it always reports the full buffer length
// consumed, per spec.md §7's no-error contract.
func FuzzHostReadNeverPanics(f *testing.F) {
	f.Add(uint32(0), 16)
	f.Add(uint32(1<<20), 512)

	f.Fuzz(func(t *testing.T, offset uint32, size int) {
		if size < 0 || size > 1<<16 {
			t.Skip()
		}
		e, err := NewEmulator(Config{BytesPerSector: 512})
		if err != nil {
			t.Fatal(err)
		}
		buf := make([]byte, size)
		n := e.HostRead(offset, buf)
		if n != size {
			t.Fatalf("HostRead(%d, len=%d) returned %d", offset, size, n)
		}
	})
}
