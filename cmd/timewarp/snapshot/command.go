// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
)

// Command returns the "snapshot" parent command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "snapshot",
		Summary: "Move device state through files",
		Description: `Move device state through files.

A settings snapshot carries the stored configuration record with
provenance: one preset, portable between devices. "export" writes
one, "import" stores one through the wear rotation, and "show"
inspects one without touching any device.

A medium image carries every byte of the medium, rotation state
included: a full backup. "image save" writes one, optionally
compressed, and "image restore" puts one back.

Both file kinds end with a keyed integrity digest under per-kind
keys, so a corrupted file, or a settings snapshot handed to "image
restore", is rejected before anything touches a medium.`,
		Subcommands: []*cli.Command{
			exportCommand(),
			importCommand(),
			showCommand(),
			imageCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Export the stored settings as a preset file",
				Command:     "timewarp snapshot export -o slapback.twsnap",
			},
			{
				Description: "Store a preset on another device",
				Command:     "timewarp snapshot import slapback.twsnap --device ./other.bin",
			},
			{
				Description: "Back up the whole medium",
				Command:     "timewarp snapshot image save -o backup.twimg",
			},
		},
	}
}
