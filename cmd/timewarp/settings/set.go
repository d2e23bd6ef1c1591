// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	libsettings "github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// settingsSetParams holds the parameters for settings set.
type settingsSetParams struct {
	cli.DeviceParams
	Effect string `flag:"effect" desc:"apply delay and tempo to this effect instead of the selected one"`
}

func setCommand() *cli.Command {
	var params settingsSetParams

	return &cli.Command{
		Name:    "set",
		Summary: "Change stored settings from the command line",
		Description: `Change fields of the stored configuration record and write it back
through the wear rotation.

Arguments are key value pairs. Keys are "effect", "delay", "tempo",
and "wet-dry". Delay and tempo act on the selected effect; pairs
apply left to right, so "effect chorus delay 180" selects the chorus
and then sets its delay. Selecting an effect clamps its remembered
delay to that effect's ceiling, exactly as turning the pedal's
selector does.

With --effect, delay and tempo changes go to the named effect's
remembered positions without selecting it.

An empty store starts from the factory defaults.`,
		Usage: "timewarp settings set <key> <value> [<key> <value>...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Select an effect",
				Command:     "timewarp settings set effect televerb",
			},
			{
				Description: "Select an effect and position its controls",
				Command:     "timewarp settings set effect chorus delay 180 tempo 1/8",
			},
			{
				Description: "Cut the dry signal",
				Command:     "timewarp settings set wet-dry off",
			},
			{
				Description: "Adjust a non-selected effect's delay",
				Command:     "timewarp settings set --effect psycho delay 90",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("set", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("nothing to set: expected key value pairs")
			}
			if len(args)%2 != 0 {
				return fmt.Errorf("arguments must be key value pairs, got %d arguments", len(args))
			}

			recordStore, device, _, err := params.OpenStore(logger)
			if err != nil {
				return err
			}
			defer device.Close()

			var state libsettings.Settings
			record, err := recordStore.Read()
			switch {
			case err == nil:
				state, err = libsettings.Load(record)
				if err != nil {
					return err
				}
			case errors.Is(err, slotstore.ErrNotFound):
				state = libsettings.Default()
			default:
				return err
			}

			// With --effect, retarget delay and tempo by temporarily
			// pointing the selector at the named effect. Plain
			// assignment skips the selector's delay clamp so the
			// stored positions of the target are not disturbed beyond
			// what the keys change.
			selected := state.Effect
			if params.Effect != "" {
				target, err := libsettings.ParseEffect(params.Effect)
				if err != nil {
					return err
				}
				state.Effect = target
			}

			for i := 0; i < len(args); i += 2 {
				key, value := args[i], args[i+1]
				if key == "effect" && params.Effect != "" {
					return fmt.Errorf("cannot set the effect while --effect targets another")
				}
				if err := state.Apply(key, value); err != nil {
					return err
				}
			}

			if params.Effect != "" {
				state.Effect = selected
			}

			out, err := state.MarshalBinary()
			if err != nil {
				return err
			}
			if _, err := recordStore.Write(out); err != nil {
				return err
			}
			if err := device.Sync(); err != nil {
				return err
			}

			mix := "wet only"
			if state.WetAndDry {
				mix = "wet + dry"
			}
			fmt.Fprintf(os.Stdout, "Stored: effect %s, delay %d, tempo %s, %s (slot offset %d)\n",
				state.Effect, state.CurrentDelay(), state.CurrentTempoLabel(), mix,
				recordStore.CurrentAddress())
			return nil
		},
	}
}
