// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/autosave"
	libsettings "github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/settingsui"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// settingsEditParams holds the parameters for settings edit.
type settingsEditParams struct {
	cli.DeviceParams
	AutosaveDelay string `flag:"autosave-delay" desc:"override the autosave quiet period (e.g. 2s)"`
}

func editCommand() *cli.Command {
	var params settingsEditParams

	return &cli.Command{
		Name:    "edit",
		Summary: "Interactive settings editor",
		Description: `Open an interactive terminal editor for the stored settings: the
effect list stands in for the selector knob, h/l for the delay
control, t/T for the tempo control, and w for the wet/dry toggle.

Edits are written with the firmware's autosave discipline: the record
is stored once the controls have stayed quiet for the configured
delay, so knob twiddling coalesces into a single slot write. Press s
to save immediately. Quitting flushes any pending change.`,
		Usage: "timewarp settings edit [flags]",
		Examples: []cli.Example{
			{
				Description: "Edit the stored settings",
				Command:     "timewarp settings edit",
			},
			{
				Description: "Edit with a snappier autosave",
				Command:     "timewarp settings edit --autosave-delay 2s",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("edit", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			recordStore, device, cfg, err := params.OpenStore(logger)
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

			delay, err := cfg.AutosaveDelay()
			if err != nil {
				return err
			}
			if params.AutosaveDelay != "" {
				delay, err = time.ParseDuration(params.AutosaveDelay)
				if err != nil || delay <= 0 {
					return fmt.Errorf("invalid --autosave-delay %q", params.AutosaveDelay)
				}
			}

			events := make(chan autosave.Result, 8)
			saver, err := autosave.New(autosave.Config{
				Store:  recordStore,
				Delay:  delay,
				Logger: logger,
				OnSave: func(result autosave.Result) {
					select {
					case events <- result:
					default:
					}
				},
			})
			if err != nil {
				return err
			}

			model := settingsui.NewModel(settingsui.Config{
				Settings: state,
				Saver:    saver,
				Events:   events,
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			finalModel, runErr := program.Run()

			// Close flushes whatever is still pending; its error
			// matters even when the UI exited cleanly.
			closeErr := saver.Close()
			if runErr != nil {
				return runErr
			}
			if closeErr != nil {
				return closeErr
			}
			if err := device.Sync(); err != nil {
				return err
			}

			if final, ok := finalModel.(settingsui.Model); ok {
				state = final.Settings()
				mix := "wet only"
				if state.WetAndDry {
					mix = "wet + dry"
				}
				fmt.Fprintf(os.Stdout, "Stored: effect %s, delay %d, tempo %s, %s\n",
					state.Effect, state.CurrentDelay(), state.CurrentTempoLabel(), mix)
			}
			return nil
		},
	}
}
