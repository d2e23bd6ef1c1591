// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	libsnapshot "github.com/timewarp-audio/timewarp/lib/snapshot"
)

// imageCommand returns the "image" subgroup for whole-medium backup
// and restore.
func imageCommand() *cli.Command {
	return &cli.Command{
		Name:    "image",
		Summary: "Back up and restore the whole medium",
		Description: `Back up and restore the medium as a single image file: every byte,
rotation state included. Restoring an image puts the device back
exactly where the backup left it, down to which slot holds the live
record.

Images carry their own integrity digest, separate from settings
snapshots, so the two file kinds can never be confused.`,
		Subcommands: []*cli.Command{
			imageSaveCommand(),
			imageRestoreCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Back up the medium",
				Command:     "timewarp snapshot image save -o backup.twimg",
			},
			{
				Description: "Restore a backup",
				Command:     "timewarp snapshot image restore backup.twimg",
			},
		},
	}
}

// imageSaveParams holds the parameters for snapshot image save.
type imageSaveParams struct {
	cli.DeviceParams
	Output      string `flag:"output,o"    desc:"write to this file instead of stdout"`
	Compression string `flag:"compression" desc:"payload compression: none, lz4, zstd, or auto (default from config)"`
}

func imageSaveCommand() *cli.Command {
	var params imageSaveParams

	return &cli.Command{
		Name:    "save",
		Summary: "Save a medium image",
		Description: `Read the whole medium and write it as an image file.

The payload is compressed with the configured algorithm; "auto"
probes the content and picks one. A mostly-erased EEPROM compresses
to almost nothing. Payloads the algorithm cannot shrink are stored
uncompressed regardless of the setting.`,
		Usage: "timewarp snapshot image save [flags]",
		Examples: []cli.Example{
			{
				Description: "Save with the configured compression",
				Command:     "timewarp snapshot image save -o backup.twimg",
			},
			{
				Description: "Save uncompressed",
				Command:     "timewarp snapshot image save -o backup.twimg --compression none",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("save", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			device, cfg, err := params.OpenMedium()
			if err != nil {
				return err
			}
			defer device.Close()

			compression := params.Compression
			if compression == "" {
				compression = cfg.Snapshot.Compression
			}

			var buf bytes.Buffer
			if compression == "auto" {
				err = libsnapshot.SaveImageAuto(device, &buf)
			} else {
				tag, tagErr := libsnapshot.ParseCompressionTag(compression)
				if tagErr != nil {
					return tagErr
				}
				err = libsnapshot.SaveImage(device, &buf, tag)
			}
			if err != nil {
				return err
			}

			if params.Output == "" || params.Output == "-" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(params.Output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Saved %d-byte image of %s to %s (%d bytes on disk).\n",
				device.Capacity(), cfg.Device.Path, params.Output, buf.Len())
			return nil
		},
	}
}

// imageRestoreParams holds the parameters for snapshot image restore.
type imageRestoreParams struct {
	cli.DeviceParams
	Force bool `flag:"force,f" desc:"skip the confirmation prompt"`
}

func imageRestoreCommand() *cli.Command {
	var params imageRestoreParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Restore a medium image",
		Description: `Verify a medium image and write it over the entire device. Whatever
the device held is lost; the image's rotation state, live record,
and wear history take its place.

The image must match the device capacity exactly. Restoring asks for
confirmation unless --force is given; when stdin is not a terminal
the prompt is skipped and the restore is refused, so scripts must
pass --force.

Use "-" to read the image from stdin.`,
		Usage: "timewarp snapshot image restore <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Restore a backup",
				Command:     "timewarp snapshot image restore backup.twimg",
			},
			{
				Description: "Restore without confirmation",
				Command:     "timewarp snapshot image restore backup.twimg --force",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("restore", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one image file argument")
			}

			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			raw, err := libsnapshot.LoadImage(bytes.NewReader(data))
			if err != nil {
				return err
			}

			device, cfg, err := params.OpenMedium()
			if err != nil {
				return err
			}
			defer device.Close()

			if !params.Force {
				prompt := fmt.Sprintf("Overwrite every byte of %s?", cfg.Device.Path)
				if !cli.Confirm(prompt) {
					fmt.Fprintln(os.Stderr, "Restore aborted.")
					return &cli.ExitError{Code: 1}
				}
			}

			if err := libsnapshot.RestoreImage(device, raw); err != nil {
				return err
			}
			if err := device.Sync(); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Restored %d bytes to %s.\n", len(raw), cfg.Device.Path)
			return nil
		},
	}
}
