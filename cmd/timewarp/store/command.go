// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
)

// Command returns the "store" parent command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "store",
		Summary: "Manage the record store on the device",
		Description: `Manage the wear-leveling record store on the device medium.

The device file stands in for the pedal's EEPROM: a fixed-size pool of
slots that the settings record rotates through, so no single group of
cells absorbs every write. "init" creates the device file and erases
it to factory state, "status" reports the store geometry and where the
live record sits, "erase" resets a device in place, and "dump" prints
the raw marker words for debugging rotation state.

The device path and capacity come from the configuration file; every
subcommand accepts --device to point somewhere else for one
invocation.`,
		Subcommands: []*cli.Command{
			statusCommand(),
			initCommand(),
			eraseCommand(),
			dumpCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Create a 1 KiB device with factory defaults stored",
				Command:     "timewarp store init --capacity 1024 --prime",
			},
			{
				Description: "Show store geometry and the live record position",
				Command:     "timewarp store status",
			},
			{
				Description: "Inspect the raw slot rotation",
				Command:     "timewarp store dump --device ./eeprom.bin",
			},
		},
	}
}
