package emufat16

// findFileByCluster locates the registered file whose cluster range
// contains the given cluster number. Clusters
// between files are never shared (testable property 1: no two files'
// cluster ranges overlap), so at most one match exists.
func (e *Emulator) findFileByCluster(cluster uint32) *fileEntry {
	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		if f.startCluster == 0 {
			continue
		}
		n := e.geo.clusterCount(f.fileSize)
		if cluster >= f.startCluster && cluster < f.startCluster+n {
			return f
		}
	}
	return nil
}

// findUnplacedDynamicFile returns the first registered dynamic file that
// hasn't yet been promoted to a concrete start cluster (spec.md §4.5),
// registration order breaking ties the same way the allocator hands out
// clusters to static files.
func (e *Emulator) findUnplacedDynamicFile() *fileEntry {
	for i := 0; i < e.usedFiles; i++ {
		f := &e.files[i]
		if f.isDynamic && f.startCluster == 0 {
			return f
		}
	}
	return nil
}

// readData routes a data-region read to the owning file's ReadFunc,
// translating the absolute data-region offset into a cluster number and
// then into an offset relative to that file's own start cluster — the
// corrected arithmetic from design note §9's resolution of Open Question
// 1; the original source computed the offset relative to the enclosing
// cluster's absolute position instead, corrupting reads once start
// clusters moved. Bytes the callback doesn't claim, and bytes belonging
// to clusters with no owning file, are zero-filled.
func (e *Emulator) readData(offset uint32, buf []byte) int {
	bpc := e.geo.bytesPerCluster()
	remaining := buf
	pos := offset

	for len(remaining) > 0 {
		cluster := firstDataCluster + pos/bpc
		clusterBase := (cluster - firstDataCluster) * bpc
		inCluster := pos - clusterBase
		chunk := remaining
		if uint32(len(chunk)) > bpc-inCluster {
			chunk = chunk[:bpc-inCluster]
		}

		f := e.findFileByCluster(cluster)
		if f == nil || f.readFn == nil {
			for i := range chunk {
				chunk[i] = 0
			}
		} else {
			fileOffset := (cluster-f.startCluster)*bpc + inCluster
			n := f.readFn(fileOffset, chunk, e.name(f))
			if n < 0 {
				n = 0
			}
			for i := int(n); i < len(chunk); i++ {
				chunk[i] = 0
			}
		}

		remaining = remaining[len(chunk):]
		pos += uint32(len(chunk))
	}
	return len(buf)
}

// writeData forwards a host write of a file's data region to its
// WriteFunc, using the same file-relative offset arithmetic as readData.
// Dynamic files (AddFileDynamic) have their recorded size grown to cover
// the write, so the host can extend a dynamic file by writing past its
// previously known end, but only within the clusters the file already
// occupies: a write to a cluster outside that run is not routed to it.
func (e *Emulator) writeData(offset uint32, buf []byte) {
	bpc := e.geo.bytesPerCluster()
	remaining := buf
	pos := offset

	for len(remaining) > 0 {
		cluster := firstDataCluster + pos/bpc
		clusterBase := (cluster - firstDataCluster) * bpc
		inCluster := pos - clusterBase
		chunk := remaining
		if uint32(len(chunk)) > bpc-inCluster {
			chunk = chunk[:bpc-inCluster]
		}

		f := e.findFileByCluster(cluster)
		if f == nil {
			// No placed file owns this cluster; an unplaced dynamic file
			// claims it by being promoted to start here (spec.md §4.5),
			// letting the host write to a placeholder before its
			// root-directory entry is updated with a real start_cluster.
			if f = e.findUnplacedDynamicFile(); f != nil {
				f.startCluster = cluster
			}
		}
		if f != nil && f.writeFn != nil {
			fileOffset := (cluster-f.startCluster)*bpc + inCluster
			f.writeFn(fileOffset, chunk, e.name(f))
			if f.isDynamic {
				end := fileOffset + uint32(len(chunk))
				if end > f.fileSize {
					f.fileSize = end
				}
			}
		}

		remaining = remaining[len(chunk):]
		pos += uint32(len(chunk))
	}
}
