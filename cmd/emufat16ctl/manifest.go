package main

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/synthvol/emufat16"
)

// manifestEntry is one row of the CSV manifest: a file to back with a
// flat backing file on the host's own filesystem. gocsv maps CSV headers
// to these fields by the `csv` struct tag, the way dargueta-disko-adjacent
// tooling in the retrieval pack loads fixture manifests.
type manifestEntry struct {
	Name       string `csv:"name"`
	Ext        string `csv:"ext"`
	BackingPath string `csv:"backing_path"`
	Dynamic    bool   `csv:"dynamic"`
}

func loadManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []manifestEntry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// registerManifestEntries registers one emufat16 file per manifest row,
// backing each with reads from (and writes to) its backing_path file on
// the host's own filesystem.
func registerManifestEntries(e *emufat16.Emulator, entries []manifestEntry) error {
	for _, m := range entries {
		backing, err := os.OpenFile(m.BackingPath, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return err
		}
		info, err := backing.Stat()
		if err != nil {
			backing.Close()
			return err
		}

		var ext [3]byte
		copy(ext[:], m.Ext)

		read := func(offset uint32, buf []byte, name string) int32 {
			n, _ := backing.ReadAt(buf, int64(offset))
			return int32(n)
		}
		write := func(offset uint32, buf []byte, name string) int32 {
			if offset == emufat16.DeletedOffset() {
				return 0
			}
			n, _ := backing.WriteAt(buf, int64(offset))
			return int32(n)
		}

		if m.Dynamic {
			if err := e.AddFileDynamic(m.Name, ext, uint32(info.Size()), 0, read, write); err != nil {
				return err
			}
			continue
		}
		if err := e.AddFile(m.Name, ext, uint32(info.Size()), read, write); err != nil {
			return err
		}
	}
	return nil
}
