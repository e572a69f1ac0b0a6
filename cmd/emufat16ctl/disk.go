package main

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/noxer/bytewriter"
	"github.com/spf13/viper"
	"github.com/xaionaro-go/bytesextra"

	"github.com/synthvol/emufat16"
)

// loadConfig reads emufat16.Config fields from an optional viper-backed
// config file, falling back to the zero Config (and hence its documented
// defaults) when none is given.
func loadConfig(path string) (emufat16.Config, error) {
	if path == "" {
		return emufat16.Config{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return emufat16.Config{}, err
	}
	return emufat16.Config{
		BytesPerSector: uint32(v.GetInt("bytes_per_sector")),
		VolumeLabel:    v.GetString("volume_label"),
	}, nil
}

// dumpImage renders the full synthesized volume (every one of the
// DiskBlockNum sectors) into an in-memory buffer backed by bytewriter,
// then flushes it to outPath. HostRead is driven the way a block device
// driver would drive it: fixed-size sector reads, in order, into a
// bounded buffer.
func dumpImage(e *emufat16.Emulator, outPath string) error {
	size := int64(e.DiskBlockNum()) * int64(e.DiskBlockSize())
	image := make([]byte, size)
	w := bytewriter.New(image)

	sector := make([]byte, e.DiskBlockSize())
	for off := int64(0); off < size; off += int64(len(sector)) {
		e.HostRead(uint32(off), sector)
		if _, err := w.Write(sector); err != nil {
			return err
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(image)
	return err
}

// serveRequests reads fixed-size (offset uint32, length uint32) read
// requests from stdin and writes each requested window of the
// synthesized volume to stdout. Each request is answered with a single
// HostRead of the full requested length, whose result is also copied
// into a bytesextra.ReadWriteSeeker over a one-sector scratch buffer.
func serveRequests(e *emufat16.Emulator) error {
	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scratch := make([]byte, e.DiskBlockSize())
	rws := bytesextra.NewReadWriteSeeker(scratch)

	for {
		var req struct {
			Offset uint32
			Length uint32
		}
		if err := binary.Read(in, binary.LittleEndian, &req); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		buf := make([]byte, req.Length)
		e.HostRead(req.Offset, buf)
		if _, err := rws.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if _, err := rws.Write(buf); err != nil {
			return err
		}
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
}
