// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete timewarp CLI command tree.
// It exists as its own package so tests can construct and walk the
// production tree without going through main.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	settingscmd "github.com/timewarp-audio/timewarp/cmd/timewarp/settings"
	snapshotcmd "github.com/timewarp-audio/timewarp/cmd/timewarp/snapshot"
	storecmd "github.com/timewarp-audio/timewarp/cmd/timewarp/store"
	"github.com/timewarp-audio/timewarp/lib/version"
)

// Root builds and returns the complete timewarp CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "timewarp",
		Description: `Timewarp: settings storage for the Timewarp delay pedal.

Keeps the pedal's effect, delay, and tempo settings in a wear-leveled
record store on an EEPROM-style device file, and moves them around as
digest-protected snapshot files.`,
		Subcommands: []*cli.Command{
			storecmd.Command(),
			settingscmd.Command(),
			snapshotcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("timewarp %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Create and erase a device file (start here)",
				Command:     "timewarp store init",
			},
			{
				Description: "See what the pedal will boot with",
				Command:     "timewarp settings show",
			},
			{
				Description: "Tune settings interactively",
				Command:     "timewarp settings edit",
			},
			{
				Description: "Store a field directly",
				Command:     "timewarp settings set effect chorus",
			},
			{
				Description: "Back up the whole medium",
				Command:     "timewarp snapshot image save -o backup.twimg",
			},
			{
				Description: "Inspect the slot rotation",
				Command:     "timewarp store dump",
			},
		},
	}
}
