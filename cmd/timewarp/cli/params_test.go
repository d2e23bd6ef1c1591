// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Device   string        `flag:"device" desc:"device path"`
		Force    bool          `flag:"force,f" desc:"skip confirmation"`
		Capacity int           `flag:"capacity" desc:"medium size"`
		Offset   int64         `flag:"offset" desc:"byte offset"`
		Ratio    float64       `flag:"ratio" desc:"compression ratio"`
		Delay    time.Duration `flag:"delay" desc:"autosave delay"`
		Labels   []string      `flag:"labels" desc:"label list"`
		Untagged string        // no flag tag, skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--device", "/tmp/eeprom.bin",
		"-f",
		"--capacity", "1024",
		"--offset", "4096",
		"--ratio", "1.5",
		"--delay", "10s",
		"--labels", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Device != "/tmp/eeprom.bin" {
		t.Errorf("Device = %q, want %q", p.Device, "/tmp/eeprom.bin")
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
	if p.Capacity != 1024 {
		t.Errorf("Capacity = %d, want 1024", p.Capacity)
	}
	if p.Offset != 4096 {
		t.Errorf("Offset = %d, want 4096", p.Offset)
	}
	if p.Ratio != 1.5 {
		t.Errorf("Ratio = %f, want 1.5", p.Ratio)
	}
	if p.Delay != 10*time.Second {
		t.Errorf("Delay = %v, want 10s", p.Delay)
	}
	if len(p.Labels) != 3 || p.Labels[0] != "a" {
		t.Errorf("Labels = %v, want [a b c]", p.Labels)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty (should be skipped)", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Device      string        `flag:"device" desc:"device path" default:"/var/lib/timewarp/eeprom.bin"`
		Capacity    int64         `flag:"capacity" desc:"medium size" default:"1024"`
		Delay       time.Duration `flag:"delay" desc:"autosave delay" default:"10s"`
		Force       bool          `flag:"force" desc:"skip confirmation" default:"false"`
		Compression string        `flag:"compression" desc:"image compression" default:"zstd"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Device != "/var/lib/timewarp/eeprom.bin" {
		t.Errorf("Device = %q, want default", p.Device)
	}
	if p.Capacity != 1024 {
		t.Errorf("Capacity = %d, want 1024", p.Capacity)
	}
	if p.Delay != 10*time.Second {
		t.Errorf("Delay = %v, want 10s", p.Delay)
	}
	if p.Force {
		t.Error("Force = true, want false")
	}
	if p.Compression != "zstd" {
		t.Errorf("Compression = %q, want zstd", p.Compression)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	type params struct {
		JSONOutput
		Device string `flag:"device" desc:"device path"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--json", "--device", "/tmp/x"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !p.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if p.Device != "/tmp/x" {
		t.Errorf("Device = %q, want /tmp/x", p.Device)
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	type params struct {
		Device string `flag:"device"`
	}

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(params{}, flagSet)
	if err == nil {
		t.Fatal("BindFlags(non-pointer) = nil, want error")
	}
	if !strings.Contains(err.Error(), "pointer to a struct") {
		t.Errorf("error = %q, want mention of pointer requirement", err.Error())
	}
}

func TestBindFlags_RejectsUnsupportedType(t *testing.T) {
	type params struct {
		Bad map[string]string `flag:"bad"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(&p, flagSet)
	if err == nil {
		t.Fatal("BindFlags(map field) = nil, want error")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("error = %q, want 'unsupported type'", err.Error())
	}
}

func TestBindFlags_BadDefault(t *testing.T) {
	type params struct {
		Capacity int `flag:"capacity" default:"lots"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err == nil {
		t.Fatal("BindFlags(bad default) = nil, want error")
	}
}

func TestFlagsFromParams_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams(non-pointer) did not panic")
		}
	}()
	FlagsFromParams("test", struct{}{})
}

func TestJSONOutput_EmitJSON_Disabled(t *testing.T) {
	var j JSONOutput
	done, err := j.EmitJSON(map[string]int{"a": 1})
	if done {
		t.Error("EmitJSON with --json unset should return done=false")
	}
	if err != nil {
		t.Errorf("EmitJSON error: %v", err)
	}
}
