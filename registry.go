package emufat16

// AddFile registers a file of a fixed, known size, backed by read and
// (optionally nil) write callbacks. Its data is given the next free run of
// clusters large enough to hold size bytes. Returns ErrNoRoom if the file
// table or filename arena is full, ErrOutOfClusters if no contiguous run
// of free clusters remains, or ErrMissingCallback if read is nil.
func (e *Emulator) AddFile(name string, ext [3]byte, size uint32, read ReadFunc, write WriteFunc) error {
	return e.addFile(name, ext, size, read, write, false, 0)
}

// AddFileDynamic registers a file whose size changes at runtime as the
// host writes to it. size is the file's initial declared size (spec.md
// §4.6's add_file_dynamic(name, ext, size, start_cluster, read_cb,
// write_cb?)); startCluster of 0 leaves the file unplaced until the
// data-region write path promotes it on first write (spec.md §4.5). A non-zero
// startCluster pins an explicit placement, which closes the emulator's
// automatic allocator (spec.md §4.6 design note: once any file's
// placement is caller-controlled, further AddFile calls can no longer
// trust nextFreeCluster not to collide, so they are rejected with
// ErrClosed).
func (e *Emulator) AddFileDynamic(name string, ext [3]byte, size uint32, startCluster uint16, read ReadFunc, write WriteFunc) error {
	return e.addFile(name, ext, size, read, write, true, uint32(startCluster))
}

func (e *Emulator) addFile(name string, ext [3]byte, size uint32, read ReadFunc, write WriteFunc, dynamic bool, pinnedCluster uint32) error {
	if read == nil {
		return wrapf(ErrMissingCallback, "AddFile %q requires a non-nil ReadFunc", name)
	}
	if e.usedFiles >= cap(e.files) {
		return wrapf(ErrNoRoom, "file table is full (%d entries)", cap(e.files))
	}
	if !dynamic && e.nextFreeCluster == 0 {
		return wrapf(ErrClosed, "AddFile %q rejected: a dynamic file already pinned an explicit cluster", name)
	}

	clean := rewriteForbiddenChars(name)
	if e.usedArena+len(clean) > cap(e.arena) {
		return wrapf(ErrNoRoom, "filename arena is full (%d bytes)", cap(e.arena))
	}

	var startCluster uint32
	if dynamic {
		startCluster = pinnedCluster
		if startCluster != 0 {
			if err := e.reserveClusters(startCluster, e.geo.clusterCount(size)); err != nil {
				return err
			}
			e.nextFreeCluster = 0 // close static allocation, per design note §9
		}
	} else {
		n := e.geo.clusterCount(size)
		cluster, err := e.allocateClusters(n)
		if err != nil {
			return err
		}
		startCluster = cluster
	}

	nameStart := e.usedArena
	e.arena = append(e.arena, clean...)
	e.usedArena += len(clean)

	e.files = append(e.files, fileEntry{
		readFn:            read,
		writeFn:           write,
		nameStart:         nameStart,
		nameLen:           len(clean),
		ext:               ext,
		fileSize:          size,
		startCluster:      startCluster,
		isDynamic:         dynamic,
		registrationIndex: e.usedFiles + 1,
	})
	e.usedFiles++

	e.info("file registered",
		slogStr("name", clean),
		slogU32("size", size),
		slogStr("size_human", humanSize(size)),
		slogU32("start_cluster", startCluster),
	)
	return nil
}

// allocateClusters finds n contiguous free clusters starting no earlier
// than nextFreeCluster, marks them used in the bitmap, and advances
// nextFreeCluster past them. This only ever grows forward: the emulator
// never recycles clusters freed by deletion, matching the original
// source's append-only allocator (design note §9).
func (e *Emulator) allocateClusters(n uint32) (uint32, error) {
	start := e.nextFreeCluster
	if start == 0 {
		return 0, wrapf(ErrClosed, "cluster allocator is closed")
	}
	if start+n > maxCluster {
		return 0, wrapf(ErrOutOfClusters, "need %d clusters from %d, only %d addressable", n, start, maxCluster)
	}
	for c := start; c < start+n; c++ {
		e.clusters.Set(int(c), true)
	}
	e.nextFreeCluster = start + n
	return start, nil
}

// reserveClusters marks an explicit, caller-chosen cluster range used,
// failing with ErrOutOfClusters if any cluster in the range is already
// taken (testable property 1: cluster ranges never overlap).
func (e *Emulator) reserveClusters(start, n uint32) error {
	if start < firstDataCluster || start+n > maxCluster {
		return wrapf(ErrOutOfClusters, "cluster range [%d, %d) out of range", start, start+n)
	}
	for c := start; c < start+n; c++ {
		if e.clusters.Get(int(c)) {
			return wrapf(ErrOutOfClusters, "cluster %d already in use", c)
		}
	}
	for c := start; c < start+n; c++ {
		e.clusters.Set(int(c), true)
	}
	return nil
}

// rewriteForbiddenChars replaces characters FAT short and long names both
// forbid with underscores (the set sanitizeShortNameBytes rewrites in 8.3
// names, minus '.', which long names allow), applied once at registration time so the stored arena name is
// always disk-safe.
func rewriteForbiddenChars(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch c {
		case '*', '?', '<', '>', '|', '"', '\\', '/', ':':
			b[i] = '_'
		}
	}
	return string(b)
}
