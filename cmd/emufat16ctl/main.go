// Command emufat16ctl drives an emufat16.Emulator from a CSV file manifest,
// servicing host reads: it dumps the synthesized volume to a disk image or
// answers read requests from stdin. It is the
// Go-native counterpart to the original source's main.cpp poll loop.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/synthvol/emufat16"
)

func main() {
	app := &cli.App{
		Name:  "emufat16ctl",
		Usage: "synthesize a FAT16 block device from a file manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "viper config file (yaml/json/toml)"},
		},
		Commands: []*cli.Command{
			manifestCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("emufat16ctl failed", "error", err)
		os.Exit(1)
	}
}

func manifestCommand() *cli.Command {
	return &cli.Command{
		Name:      "manifest",
		Usage:     "register every file listed in a CSV manifest and dump a disk image",
		ArgsUsage: "MANIFEST.csv OUT.img",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit("manifest requires MANIFEST.csv and OUT.img", 1)
			}
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}

			entries, err := loadManifest(c.Args().Get(0))
			if err != nil {
				return err
			}

			e, err := emufat16.NewEmulator(cfg)
			if err != nil {
				return err
			}
			if err := registerManifestEntries(e, entries); err != nil {
				return err
			}

			return dumpImage(e, c.Args().Get(1))
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "register files from a manifest and answer reads from stdin-fed block requests",
		ArgsUsage: "MANIFEST.csv",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("serve requires MANIFEST.csv", 1)
			}
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			entries, err := loadManifest(c.Args().First())
			if err != nil {
				return err
			}
			e, err := emufat16.NewEmulator(cfg)
			if err != nil {
				return err
			}
			if err := registerManifestEntries(e, entries); err != nil {
				return err
			}
			fmt.Printf("serving %d files, %d total sectors\n", len(entries), e.DiskBlockNum())
			return serveRequests(e)
		},
	}
}
