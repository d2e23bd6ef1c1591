// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	libsettings "github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// settingsShowParams holds the parameters for settings show.
type settingsShowParams struct {
	cli.JSONOutput
	cli.DeviceParams
}

// settingsView is the JSON output shape.
type settingsView struct {
	Effect     string       `json:"effect"      desc:"selected effect slug"`
	EffectName string       `json:"effect_name" desc:"selected effect display name"`
	Delay      uint8        `json:"delay"       desc:"selected effect's delay time"`
	Tempo      string       `json:"tempo"       desc:"selected effect's tempo fraction"`
	WetAndDry  bool         `json:"wet_and_dry" desc:"whether the dry signal is mixed in"`
	Stored     bool         `json:"stored"      desc:"false when showing defaults for an empty store"`
	Effects    []effectView `json:"effects"     desc:"per-effect control positions"`
}

// effectView is one effect's controls in the JSON output.
type effectView struct {
	Effect   string `json:"effect"   desc:"effect slug"`
	Delay    uint8  `json:"delay"    desc:"delay control position"`
	Tempo    string `json:"tempo"    desc:"tempo fraction"`
	Selected bool   `json:"selected" desc:"whether this is the selected effect"`
}

func showCommand() *cli.Command {
	var params settingsShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show the stored settings",
		Description: `Show the configuration record stored on the device: the selected
effect, its delay time and tempo fraction, the wet/dry mix, and every
effect's remembered control positions.

An empty store shows the factory defaults, marked as such; that is
the state the pedal boots into before its first save.`,
		Usage: "timewarp settings show [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the stored settings",
				Command:     "timewarp settings show",
			},
			{
				Description: "Settings as JSON",
				Command:     "timewarp settings show --json",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			recordStore, device, _, err := params.OpenStore(logger)
			if err != nil {
				return err
			}
			defer device.Close()

			stored := true
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
				stored = false
			default:
				return err
			}

			view := settingsView{
				Effect:     state.Effect.Slug(),
				EffectName: state.Effect.String(),
				Delay:      state.CurrentDelay(),
				Tempo:      state.CurrentTempoLabel(),
				WetAndDry:  state.WetAndDry,
				Stored:     stored,
			}
			for _, effect := range libsettings.Effects() {
				view.Effects = append(view.Effects, effectView{
					Effect:   effect.Slug(),
					Delay:    state.DelayTime[effect],
					Tempo:    libsettings.TempoLabel(state.TempoIndex[effect]),
					Selected: effect == state.Effect,
				})
			}

			if done, err := params.EmitJSON(view); done {
				return err
			}

			mix := "wet only"
			if state.WetAndDry {
				mix = "wet + dry"
			}
			fmt.Fprintf(os.Stdout, "Effect: %s (%s)\n", state.Effect, state.Effect.Slug())
			fmt.Fprintf(os.Stdout, "Delay:  %d / %d\n", state.CurrentDelay(), state.Effect.DelayCeiling())
			fmt.Fprintf(os.Stdout, "Tempo:  %s\n", state.CurrentTempoLabel())
			fmt.Fprintf(os.Stdout, "Mix:    %s\n", mix)
			if !stored {
				fmt.Fprintln(os.Stdout, "(defaults, nothing stored)")
			}

			fmt.Fprintln(os.Stdout)
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "EFFECT\tDELAY\tTEMPO")
			for _, row := range view.Effects {
				marker := " "
				if row.Selected {
					marker = ">"
				}
				fmt.Fprintf(tw, "%s %s\t%d\t%s\n", marker, row.Effect, row.Delay, row.Tempo)
			}
			return tw.Flush()
		},
	}
}
