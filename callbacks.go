package emufat16

// ReadFunc synthesizes the bytes of a file's data region on demand. It must
// return the number of bytes written into buf; a negative return value is
// treated as zero by the data-region router (spec.md §6).
type ReadFunc func(fileOffset uint32, buf []byte, name string) int32

// WriteFunc forwards a host write to a file's data region. It is called
// with fileOffset == ^uint32(0) (the spec's "offset = -1"), buf == nil and
// len(buf) == 0 to signal that the file was deleted from the host side.
type WriteFunc func(fileOffset uint32, buf []byte, name string) int32

// NewFileFunc observes a file the interceptor detected was created by the
// host, writing directly into the root directory (spec.md §4.4).
type NewFileFunc func(name string, ext [3]byte, size uint32, cluster uint16)

// deletedOffset is the sentinel file offset WriteFunc receives on deletion.
// It is the wire representation of the spec's signed "-1"; callers compare
// against this constant rather than reinterpreting a signed/unsigned cast
// themselves.
const deletedOffset = ^uint32(0)

// DeletedOffset returns the sentinel fileOffset value a WriteFunc is
// called with when the root-directory interceptor recovers a deletion.
func DeletedOffset() uint32 { return deletedOffset }

// CallbackFile adapts a two-method capability interface into the ReadFunc/
// WriteFunc pair AddFile/AddFileDynamic expect, per design note §9
// ("Callback pointers → capability interface"). Implementations that would
// rather satisfy an interface than hold two closures can embed this.
type CallbackFile interface {
	ReadAt(fileOffset uint32, buf []byte, name string) int32
	WriteAt(fileOffset uint32, buf []byte, name string) int32
}

// Funcs returns the ReadFunc/WriteFunc pair backed by f, for passing to
// AddFile/AddFileDynamic.
func Funcs(f CallbackFile) (ReadFunc, WriteFunc) {
	return f.ReadAt, f.WriteAt
}
