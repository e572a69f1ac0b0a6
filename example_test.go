package emufat16_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/synthvol/emufat16"
)

// ExampleEmulator demonstrates registering a single static file and
// servicing a host read of its data region, mirroring the original
// driver's register-then-poll loop.
func ExampleEmulator() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	e, err := emufat16.NewEmulator(emufat16.Config{
		BytesPerSector: 512,
		VolumeLabel:    "DEMO",
		Logger:         logger,
	})
	if err != nil {
		fmt.Println("construct failed:", err)
		return
	}

	content := []byte("hello from the host side\n")
	read := func(offset uint32, buf []byte, name string) int32 {
		if offset >= uint32(len(content)) {
			return 0
		}
		return int32(copy(buf, content[offset:]))
	}
	if err := e.AddFile("README", [3]byte{'T', 'X', 'T'}, uint32(len(content)), read, nil); err != nil {
		fmt.Println("register failed:", err)
		return
	}

	buf := make([]byte, int(e.DiskBlockSize()))
	e.HostRead(0, buf)
	fmt.Println(bytes.Contains(buf, []byte{0x55, 0xAA}))

	// Output:
	// true
}
