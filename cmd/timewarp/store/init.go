// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/config"
	"github.com/timewarp-audio/timewarp/lib/medium"
	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// storeInitParams holds the parameters for store init.
type storeInitParams struct {
	cli.DeviceParams
	Capacity int64 `flag:"capacity" desc:"device capacity in bytes (0 uses the configured capacity)"`
	Prime    bool  `flag:"prime"    desc:"store factory defaults after initializing"`
	Force    bool  `flag:"force,f"  desc:"recreate the device file if it already exists"`
}

func initCommand() *cli.Command {
	var params storeInitParams

	return &cli.Command{
		Name:    "init",
		Summary: "Create and erase a device file",
		Description: `Create the device file and erase it to factory state: every byte
0xFF with an empty-slot marker at offset zero, the way an EEPROM
leaves the factory.

The capacity comes from the configuration file unless --capacity is
given. An existing device file is left untouched unless --force is
given, in which case it is removed and recreated, losing whatever it
held.

With --prime, the factory default settings are stored into slot zero
afterwards, so the first "settings show" reads a live record instead
of reporting an empty store.`,
		Usage: "timewarp store init [flags]",
		Examples: []cli.Example{
			{
				Description: "Create the configured device",
				Command:     "timewarp store init",
			},
			{
				Description: "Create a 1 KiB device seeded with factory defaults",
				Command:     "timewarp store init --capacity 1024 --prime",
			},
			{
				Description: "Recreate an existing device from scratch",
				Command:     "timewarp store init --force",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("init", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			cfg, err := params.Config()
			if err != nil {
				return err
			}

			capacity := params.Capacity
			if capacity == 0 {
				capacity = cfg.Device.Capacity
			}
			if capacity < config.MinCapacity {
				return fmt.Errorf("capacity %d cannot hold a settings slot (minimum %d bytes)",
					capacity, config.MinCapacity)
			}

			path := cfg.Device.Path
			if _, err := os.Stat(path); err == nil {
				if !params.Force {
					return fmt.Errorf("device %s already exists (use --force to recreate it)", path)
				}
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("removing existing device: %w", err)
				}
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := cfg.EnsureDeviceDir(); err != nil {
				return err
			}

			device, err := medium.OpenDevice(path, capacity)
			if err != nil {
				return err
			}
			defer device.Close()

			recordStore := slotstore.New(device, settings.Size, logger)
			if err := recordStore.Erase(); err != nil {
				return err
			}

			if params.Prime {
				record, err := settings.Default().MarshalBinary()
				if err != nil {
					return err
				}
				if err := recordStore.Prime(record); err != nil {
					return err
				}
			}

			if err := device.Sync(); err != nil {
				return err
			}

			slots := recordStore.Capacity() / recordStore.SlotSize()
			fmt.Fprintf(os.Stdout, "Initialized %s: %d bytes, %d slots of %d bytes.\n",
				path, recordStore.Capacity(), slots, recordStore.SlotSize())
			if params.Prime {
				fmt.Fprintln(os.Stdout, "Stored factory defaults in slot zero.")
			}
			return nil
		},
	}
}
