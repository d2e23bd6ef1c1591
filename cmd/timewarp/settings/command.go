// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
)

// Command returns the "settings" parent command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "settings",
		Summary: "Read and change the stored configuration",
		Description: `Read and change the configuration record stored on the device.

The record keeps a delay time and tempo fraction per effect, the
selected effect, and the wet/dry mix, exactly as the pedal stores
them. "show" prints the stored state, "set" changes fields from the
command line, and "edit" opens an interactive editor with the
firmware's autosave discipline.

An empty store reads as the factory defaults, the same state a fresh
pedal boots into.`,
		Subcommands: []*cli.Command{
			showCommand(),
			setCommand(),
			editCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show the stored settings",
				Command:     "timewarp settings show",
			},
			{
				Description: "Select an effect and set its delay time",
				Command:     "timewarp settings set effect chorus delay 180",
			},
			{
				Description: "Open the interactive editor",
				Command:     "timewarp settings edit",
			},
		},
	}
}
