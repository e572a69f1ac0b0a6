package emufat16

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors returned by NewEmulator and the registration path.
// HostRead and HostWrite never surface these directly: per the
// block-device contract they always report a byte count, clamping or
// zero-filling instead of rejecting malformed windows.
var (
	// ErrAlignment is returned by NewEmulator when BytesPerSector is not a
	// power of two of at least 512. The FAT and root-directory read paths
	// do not return it: they accept any offset and size, misaligned or not.
	ErrAlignment = errors.New("emufat16: misaligned offset or size")

	// ErrNoRoom is returned by AddFile/AddFileDynamic when the file table
	// or filename arena has no space left for the new entry.
	ErrNoRoom = errors.New("emufat16: no room for new file entry")

	// ErrOutOfClusters is returned when registering a file would assign
	// cluster numbers beyond the FAT16-addressable range.
	ErrOutOfClusters = errors.New("emufat16: out of addressable clusters")

	// ErrMissingCallback is returned when AddFile/AddFileDynamic is called
	// without a read callback.
	ErrMissingCallback = errors.New("emufat16: read callback is required")

	// ErrClosed is returned by AddFile once a fixed-start-cluster dynamic
	// file has been registered, closing the static allocator.
	ErrClosed = errors.New("emufat16: static registration closed by a pinned dynamic file")
)

// Is reports whether err wraps target, delegating to the standard library's
// errors.Is so callers can use errors.Is(err, ErrNoRoom) etc. regardless of
// how deeply the sentinel got wrapped by wrapf.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// wrapf attaches call-site context to a sentinel error without losing the
// sentinel's identity under errors.Is, matching the style dsoprea/go-exfat
// uses to annotate its parse errors before propagating them.
func wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}
