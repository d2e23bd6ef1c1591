// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/timewarp-audio/timewarp/cmd/timewarp/cli"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// storeStatusParams holds the parameters for store status.
type storeStatusParams struct {
	cli.JSONOutput
	cli.DeviceParams
}

// storeStatus is the JSON output shape.
type storeStatus struct {
	Device     string `json:"device"      desc:"device file path"`
	Capacity   int64  `json:"capacity"    desc:"medium capacity in bytes"`
	RecordSize int    `json:"record_size" desc:"record length in bytes"`
	SlotSize   int64  `json:"slot_size"   desc:"bytes one slot occupies"`
	Slots      int64  `json:"slots"       desc:"slots in the rotation"`
	Cursor     int64  `json:"cursor"      desc:"offset of the current slot"`
	Stored     bool   `json:"stored"      desc:"whether a live record exists"`
}

func statusCommand() *cli.Command {
	var params storeStatusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Show store geometry and the live record position",
		Description: `Show the record store's geometry and rotation state: the device
file, its capacity, how many slots the rotation cycles through, and
which slot currently holds the live record (if any).

The cursor advances one slot per settings write and wraps at the end
of the medium, spreading wear across the whole pool.`,
		Usage: "timewarp store status [flags]",
		Examples: []cli.Example{
			{
				Description: "Show store status",
				Command:     "timewarp store status",
			},
			{
				Description: "Store status as JSON",
				Command:     "timewarp store status --json",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("status", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			recordStore, device, cfg, err := params.OpenStore(logger)
			if err != nil {
				return err
			}
			defer device.Close()

			stored := true
			if _, err := recordStore.Read(); err != nil {
				if !errors.Is(err, slotstore.ErrNotFound) {
					return err
				}
				stored = false
			}

			status := storeStatus{
				Device:     cfg.Device.Path,
				Capacity:   recordStore.Capacity(),
				RecordSize: recordStore.RecordSize(),
				SlotSize:   recordStore.SlotSize(),
				Slots:      recordStore.Capacity() / recordStore.SlotSize(),
				Cursor:     recordStore.CurrentAddress(),
				Stored:     stored,
			}

			if done, err := params.EmitJSON(status); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "Device:\t%s\n", status.Device)
			fmt.Fprintf(tw, "Capacity:\t%d bytes\n", status.Capacity)
			fmt.Fprintf(tw, "Record size:\t%d bytes\n", status.RecordSize)
			fmt.Fprintf(tw, "Slot size:\t%d bytes\n", status.SlotSize)
			fmt.Fprintf(tw, "Slots:\t%d\n", status.Slots)
			if status.Stored {
				fmt.Fprintf(tw, "State:\tlive record at offset %d\n", status.Cursor)
			} else {
				fmt.Fprintf(tw, "State:\tempty\n")
			}
			return tw.Flush()
		},
	}
}
