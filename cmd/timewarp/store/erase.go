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

// storeEraseParams holds the parameters for store erase.
type storeEraseParams struct {
	cli.DeviceParams
	Force bool `flag:"force,f" desc:"skip the confirmation prompt"`
}

func eraseCommand() *cli.Command {
	var params storeEraseParams

	return &cli.Command{
		Name:    "erase",
		Summary: "Erase the device back to factory state",
		Description: `Erase the device in place: every byte is overwritten with 0xFF and
an empty-slot marker is written at offset zero. The stored settings
record is lost.

The device file itself is kept at its current size; use "store init
--force" to recreate it at a different capacity.

Erasing asks for confirmation unless --force is given. When stdin is
not a terminal the prompt is skipped and the erase is refused, so
scripts must pass --force.`,
		Usage: "timewarp store erase [flags]",
		Examples: []cli.Example{
			{
				Description: "Erase the configured device",
				Command:     "timewarp store erase",
			},
			{
				Description: "Erase without confirmation",
				Command:     "timewarp store erase --force",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("erase", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			device, cfg, err := params.OpenMedium()
			if err != nil {
				return err
			}
			defer device.Close()

			if !params.Force {
				prompt := fmt.Sprintf("Erase %s? This clears every stored record.", cfg.Device.Path)
				if !cli.Confirm(prompt) {
					fmt.Fprintln(os.Stderr, "Erase aborted.")
					return &cli.ExitError{Code: 1}
				}
			}

			recordStore := slotstore.New(device, settings.Size, logger)
			if err := recordStore.Erase(); err != nil {
				return err
			}
			if err := device.Sync(); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Erased %s (%d bytes).\n", cfg.Device.Path, recordStore.Capacity())
			return nil
		},
	}
}
