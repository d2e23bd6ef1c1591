// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// storeDumpParams holds the parameters for store dump.
type storeDumpParams struct {
	cli.DeviceParams
}

func dumpCommand() *cli.Command {
	var params storeDumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Print the raw slot rotation",
		Description: `Print every marker-aligned word on the medium as hex, eight words
per line, with the live slot's data marker bracketed. This is the
view to reach for when rotation state looks wrong: tombstones read
33333333, the live marker 66666666, the empty marker 22222222, and a
factory-fresh medium ffffffff.

The dump reads the medium as it is on disk and never writes to it.`,
		Usage: "timewarp store dump [flags]",
		Examples: []cli.Example{
			{
				Description: "Dump the configured device",
				Command:     "timewarp store dump",
			},
			{
				Description: "Dump another device file",
				Command:     "timewarp store dump --device ./eeprom.bin",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("dump", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			device, _, err := params.OpenMedium()
			if err != nil {
				return err
			}
			defer device.Close()

			// No Init here: recovery would write an empty marker onto a
			// medium with no live record, and a dump must not modify
			// what it is inspecting.
			recordStore := slotstore.New(device, settings.Size, logger)
			return recordStore.Dump(os.Stdout)
		},
	}
}
