// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/codec"
	libsnapshot "github.com/timewarp-audio/timewarp/lib/snapshot"
)

// snapshotShowParams holds the parameters for snapshot show.
type snapshotShowParams struct {
	cli.JSONOutput
	Raw bool `json:"-" flag:"raw" desc:"print the verified envelope in CBOR diagnostic notation"`
}

// snapshotInfo is the JSON output shape.
type snapshotInfo struct {
	Version   int       `json:"version"     desc:"snapshot format version"`
	Created   time.Time `json:"created"     desc:"when the snapshot was exported"`
	Effect    string    `json:"effect"      desc:"selected effect slug"`
	Delay     uint8     `json:"delay"       desc:"selected effect's delay time"`
	Tempo     string    `json:"tempo"       desc:"selected effect's tempo fraction"`
	WetAndDry bool      `json:"wet_and_dry" desc:"whether the dry signal is mixed in"`
}

func showCommand() *cli.Command {
	var params snapshotShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Inspect a snapshot file",
		Description: `Verify a settings snapshot's integrity digest and print what it
carries, without opening any device.

With --raw, the verified envelope is printed in CBOR diagnostic
notation instead, which shows exactly what is on the wire.

Use "-" to read the snapshot from stdin.`,
		Usage: "timewarp snapshot show <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect a preset",
				Command:     "timewarp snapshot show slapback.twsnap",
			},
			{
				Description: "Inspect as JSON",
				Command:     "timewarp snapshot show slapback.twsnap --json",
			},
			{
				Description: "Dump the raw envelope",
				Command:     "timewarp snapshot show slapback.twsnap --raw",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one snapshot file argument")
			}

			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			if params.Raw {
				body, err := libsnapshot.Payload(data)
				if err != nil {
					return err
				}
				notation, err := codec.Diagnose(body)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, notation)
				return nil
			}

			envelope, err := libsnapshot.Inspect(data)
			if err != nil {
				return err
			}
			state := envelope.Settings

			info := snapshotInfo{
				Version:   envelope.Version,
				Created:   envelope.Created,
				Effect:    state.Effect.Slug(),
				Delay:     state.CurrentDelay(),
				Tempo:     state.CurrentTempoLabel(),
				WetAndDry: state.WetAndDry,
			}
			if done, err := params.EmitJSON(info); done {
				return err
			}

			mix := "wet only"
			if state.WetAndDry {
				mix = "wet + dry"
			}
			fmt.Fprintf(os.Stdout, "Version: %d\n", envelope.Version)
			fmt.Fprintf(os.Stdout, "Created: %s\n", envelope.Created.Format(time.RFC3339))
			fmt.Fprintf(os.Stdout, "Effect:  %s (%s)\n", state.Effect, state.Effect.Slug())
			fmt.Fprintf(os.Stdout, "Delay:   %d / %d\n", state.CurrentDelay(), state.Effect.DelayCeiling())
			fmt.Fprintf(os.Stdout, "Tempo:   %s\n", state.CurrentTempoLabel())
			fmt.Fprintf(os.Stdout, "Mix:     %s\n", mix)
			return nil
		},
	}
}
