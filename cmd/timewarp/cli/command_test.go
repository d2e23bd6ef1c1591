// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "timewarp",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "store",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "store"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"store"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "store" {
		t.Errorf("dispatched to %q, want %q", called, "store")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "timewarp",
		Subcommands: []*Command{
			{
				Name: "store",
				Subcommands: []*Command{
					{
						Name: "dump",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "store dump"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"store", "dump", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "store dump" {
		t.Errorf("dispatched to %q, want %q", called, "store dump")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_PassesContextAndLogger(t *testing.T) {
	command := &Command{
		Name: "status",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if ctx == nil {
				t.Error("ctx is nil")
			}
			if logger == nil {
				t.Error("logger is nil")
			}
			return nil
		},
	}

	if err := command.Execute(nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var devicePath string
	var target string

	command := &Command{
		Name: "dump",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			flagSet.StringVar(&devicePath, "device", "/default.bin", "device path")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--device", "/custom.bin", "positional"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if devicePath != "/custom.bin" {
		t.Errorf("devicePath = %q, want %q", devicePath, "/custom.bin")
	}
	if target != "positional" {
		t.Errorf("target = %q, want %q", target, "positional")
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "timewarp",
		Subcommands: []*Command{
			{Name: "store", Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil }},
			{Name: "settings", Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute([]string{"stote"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "store"`) {
		t.Errorf("error = %q, want suggestion for 'store'", err.Error())
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "erase",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("erase", pflag.ContinueOnError)
			flagSet.Bool("force", false, "skip confirmation")
			flagSet.String("device", "/default.bin", "device path")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute([]string{"--froce"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --force") {
		t.Errorf("error = %q, want suggestion for '--force'", errStr)
	}
	if !strings.Contains(errStr, "froce") {
		t.Errorf("error = %q, want original flag spelling included", errStr)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "timewarp",
		Subcommands: []*Command{
			{Name: "store", Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(nil)
	if err == nil {
		t.Fatal("Execute() = nil, want error when no subcommand given")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	root := &Command{
		Name:    "timewarp",
		Summary: "EEPROM settings tool",
		Subcommands: []*Command{
			{Name: "store", Summary: "Inspect and manage the record store"},
		},
	}

	// Help must succeed even though the tree has no Run functions.
	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
}

func TestCommand_PrintHelp_ListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "timewarp",
		Summary: "EEPROM settings tool",
		Subcommands: []*Command{
			{Name: "store", Summary: "Inspect and manage the record store"},
			{Name: "snapshot", Summary: "Export and import settings"},
		},
	}

	var buf bytes.Buffer
	root.PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{"store", "Inspect and manage", "snapshot", "Export and import", "Commands:"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_PrintHelp_ShowsExamples(t *testing.T) {
	command := &Command{
		Name:    "export",
		Summary: "Write a settings snapshot",
		Examples: []Example{
			{Description: "Export to a file", Command: "timewarp snapshot export preset.twsnap"},
		},
	}

	var buf bytes.Buffer
	command.PrintHelp(&buf)
	help := buf.String()

	if !strings.Contains(help, "# Export to a file") {
		t.Errorf("help output missing example description:\n%s", help)
	}
	if !strings.Contains(help, "timewarp snapshot export preset.twsnap") {
		t.Errorf("help output missing example command:\n%s", help)
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "timewarp"}
	store := &Command{Name: "store", parent: root}
	dump := &Command{Name: "dump", parent: store}

	if got := dump.fullName(); got != "timewarp store dump" {
		t.Errorf("fullName() = %q, want %q", got, "timewarp store dump")
	}
}
