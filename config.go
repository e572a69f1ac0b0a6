package emufat16

import (
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperCaser performs the uppercasing spec.md requires for volume labels
// and short (8.3) names. golang.org/x/text/cases is used instead of
// strings.ToUpper so casing follows Unicode's full case-folding tables
// rather than ASCII-only rules, matching the teacher's declared (if
// previously unexercised) dependency on golang.org/x/text.
var upperCaser = cases.Upper(language.Und)

const (
	defaultBytesPerSector        = 1024
	defaultVolumeLabel           = "EMUFATFS16 "
	defaultFileTableCapacity     = 32
	defaultFilenameArenaCapacity = 4096

	volumeLabelLen = 11
)

// Config configures a new Emulator. Zero-value fields fall back to the
// documented defaults, matching the original source's constructor which
// defaults bytesPerSector to 0x400 and the volume label to "EmuFATFS16".
type Config struct {
	// BytesPerSector is the sector size the synthesized volume reports.
	// Must be a power of two, >= 512. Defaults to 1024.
	BytesPerSector uint32

	// VolumeLabel is up to 11 characters; it is upper-cased and
	// space-padded to 11 bytes. Defaults to "EMUFATFS16 ".
	VolumeLabel string

	// FileTableCapacity bounds the number of files AddFile/AddFileDynamic
	// may register. Defaults to 32.
	FileTableCapacity int

	// FilenameArenaCapacity bounds the number of bytes available to store
	// registered base names. Only the base name is stored in the arena;
	// the extension is kept in the file table entry and uses no arena
	// space. Defaults to 4096.
	FilenameArenaCapacity int

	// Logger receives structured trace/debug/info/warn/error events.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy of cfg with zero-valued fields replaced by
// their documented defaults.
func (cfg Config) withDefaults() Config {
	if cfg.BytesPerSector == 0 {
		cfg.BytesPerSector = defaultBytesPerSector
	}
	if cfg.VolumeLabel == "" {
		cfg.VolumeLabel = defaultVolumeLabel
	}
	if cfg.FileTableCapacity == 0 {
		cfg.FileTableCapacity = defaultFileTableCapacity
	}
	if cfg.FilenameArenaCapacity == 0 {
		cfg.FilenameArenaCapacity = defaultFilenameArenaCapacity
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// validate reports every violated constraint at once via a multierror,
// rather than failing on the first, matching dargueta/disko's use of
// hashicorp/go-multierror to aggregate config validation failures.
func (cfg Config) validate() error {
	var errs *multierror.Error
	if cfg.BytesPerSector < 512 || cfg.BytesPerSector&(cfg.BytesPerSector-1) != 0 {
		errs = multierror.Append(errs, wrapf(ErrAlignment, "bytes per sector %d must be a power of two >= 512", cfg.BytesPerSector))
	}
	if len(cfg.VolumeLabel) > volumeLabelLen {
		errs = multierror.Append(errs, wrapf(ErrNoRoom, "volume label %q longer than %d characters", cfg.VolumeLabel, volumeLabelLen))
	}
	if cfg.FileTableCapacity <= 0 {
		errs = multierror.Append(errs, wrapf(ErrNoRoom, "file table capacity must be positive, got %d", cfg.FileTableCapacity))
	}
	if cfg.FilenameArenaCapacity <= 0 {
		errs = multierror.Append(errs, wrapf(ErrNoRoom, "filename arena capacity must be positive, got %d", cfg.FilenameArenaCapacity))
	}
	return errs.ErrorOrNil()
}

// normalizedVolumeLabel upper-cases and space-pads label to 11 bytes. The
// original source upper-cases char by char at construction and replaces the
// embedded NUL terminator it finds with a trailing space instead of
// leaving garbage in the fixed-size buffer; Go strings don't carry that
// hazard, so this only needs the uppercase + pad step.
func normalizedVolumeLabel(label string) [volumeLabelLen]byte {
	var out [volumeLabelLen]byte
	for i := range out {
		out[i] = ' '
	}
	upper := upperCaser.String(label)
	copy(out[:], upper)
	return out
}
