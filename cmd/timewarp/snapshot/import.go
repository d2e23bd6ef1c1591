// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	libsnapshot "github.com/timewarp-audio/timewarp/lib/snapshot"
)

// snapshotImportParams holds the parameters for snapshot import.
type snapshotImportParams struct {
	cli.DeviceParams
}

func importCommand() *cli.Command {
	var params snapshotImportParams

	return &cli.Command{
		Name:    "import",
		Summary: "Store a settings snapshot on the device",
		Description: `Verify a settings snapshot and store its record on the device
through the wear rotation, replacing the live record.

Out-of-range fields in the snapshot are clamped the way the firmware
clamps a record read from a worn medium, so a snapshot written by a
newer build still imports usable.

Use "-" to read the snapshot from stdin.`,
		Usage: "timewarp snapshot import <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Import a preset",
				Command:     "timewarp snapshot import slapback.twsnap",
			},
			{
				Description: "Import onto another device",
				Command:     "timewarp snapshot import slapback.twsnap --device ./other.bin",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("import", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one snapshot file argument")
			}

			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			state, err := libsnapshot.Import(data)
			if err != nil {
				return err
			}

			recordStore, device, _, err := params.OpenStore(logger)
			if err != nil {
				return err
			}
			defer device.Close()

			record, err := state.MarshalBinary()
			if err != nil {
				return err
			}
			if _, err := recordStore.Write(record); err != nil {
				return err
			}
			if err := device.Sync(); err != nil {
				return err
			}

			mix := "wet only"
			if state.WetAndDry {
				mix = "wet + dry"
			}
			fmt.Fprintf(os.Stdout, "Imported: effect %s, delay %d, tempo %s, %s (slot offset %d)\n",
				state.Effect, state.CurrentDelay(), state.CurrentTempoLabel(), mix,
				recordStore.CurrentAddress())
			return nil
		},
	}
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
