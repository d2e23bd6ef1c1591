// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/settings"
	libsnapshot "github.com/timewarp-audio/timewarp/lib/snapshot"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// snapshotExportParams holds the parameters for snapshot export.
type snapshotExportParams struct {
	cli.DeviceParams
	Output string `flag:"output,o" desc:"write to this file instead of stdout"`
}

func exportCommand() *cli.Command {
	var params snapshotExportParams

	return &cli.Command{
		Name:    "export",
		Summary: "Export the stored settings as a snapshot file",
		Description: `Export the configuration record stored on the device as a settings
snapshot: the record, a creation timestamp, and an integrity digest.
The file is the portable form of a preset; import it on any device.

An empty store has nothing to export and fails.`,
		Usage: "timewarp snapshot export [flags]",
		Examples: []cli.Example{
			{
				Description: "Export to a file",
				Command:     "timewarp snapshot export -o slapback.twsnap",
			},
			{
				Description: "Export to stdout",
				Command:     "timewarp snapshot export > slapback.twsnap",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("export", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			recordStore, device, _, err := params.OpenStore(logger)
			if err != nil {
				return err
			}
			defer device.Close()

			record, err := recordStore.Read()
			if err != nil {
				if errors.Is(err, slotstore.ErrNotFound) {
					return fmt.Errorf("nothing stored to export; store settings first")
				}
				return err
			}
			state, err := settings.Load(record)
			if err != nil {
				return err
			}

			data, err := libsnapshot.Export(state, time.Now())
			if err != nil {
				return err
			}

			if params.Output == "" || params.Output == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(params.Output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Exported settings snapshot to %s (%d bytes).\n",
				params.Output, len(data))
			return nil
		},
	}
}
