// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import "testing"

func TestEffectNames(t *testing.T) {
	cases := []struct {
		effect Effect
		label  string
		slug   string
	}{
		{Decelerator, "Deceleratr", "decelerator"},
		{ShortDelay, "Shrt dly", "short-delay"},
		{EchoPlusPlus, "Echo++", "echo-plus-plus"},
		{WowNotFlutter, "WowNotFlut", "wow-not-flutter"},
		{Psycho, "Psycho", "psycho"},
	}
	for _, c := range cases {
		if got := c.effect.String(); got != c.label {
			t.Errorf("%d.String() = %q, want %q", int(c.effect), got, c.label)
		}
		if got := c.effect.Slug(); got != c.slug {
			t.Errorf("%d.Slug() = %q, want %q", int(c.effect), got, c.slug)
		}
	}
	if got := Effect(-1).String(); got != "effect(-1)" {
		t.Errorf("Effect(-1).String() = %q, want %q", got, "effect(-1)")
	}
}

func TestEffectSlugsRoundTrip(t *testing.T) {
	// Every effect must be reachable from its own slug and label.
	for _, e := range Effects() {
		for _, name := range []string{e.Slug(), e.String()} {
			got, err := ParseEffect(name)
			if err != nil {
				t.Errorf("ParseEffect(%q) = %v, want nil", name, err)
				continue
			}
			if got != e {
				t.Errorf("ParseEffect(%q) = %v, want %v", name, got, e)
			}
		}
	}
}

func TestParseEffect(t *testing.T) {
	cases := []struct {
		in      string
		want    Effect
		wantErr bool
	}{
		{"chorus", Chorus, false},
		{"Chorus+", ChorusPlus, false},
		{"chorus-plus", ChorusPlus, false},
		{"Shrt dly", ShortDelay, false},
		{"SHORT_DELAY", ShortDelay, false},
		{"echo++", EchoPlusPlus, false},
		{"echo", Echo, false},
		{"12", Psycho, false},
		{" televerb ", TeleVerb, false},
		{"13", 0, true},
		{"-1", 0, true},
		{"flanger", 0, true},
	}
	for _, c := range cases {
		got, err := ParseEffect(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseEffect(%q) = %v, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEffect(%q) = %v, want nil", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseEffect(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDelayCeilings(t *testing.T) {
	if got := Decelerator.DelayCeiling(); got != 100 {
		t.Errorf("Decelerator.DelayCeiling() = %d, want 100", got)
	}
	if got := WowNotFlutter.DelayCeiling(); got != 60 {
		t.Errorf("WowNotFlutter.DelayCeiling() = %d, want 60", got)
	}
	if got := Chorus.DelayCeiling(); got != 255 {
		t.Errorf("Chorus.DelayCeiling() = %d, want 255", got)
	}
}

func TestTempoLabels(t *testing.T) {
	cases := []struct {
		index uint8
		want  string
	}{
		{0, "1/48"},
		{5, "1/16."},
		{7, "1/6"},
		{15, "1"},
	}
	for _, c := range cases {
		if got := TempoLabel(c.index); got != c.want {
			t.Errorf("TempoLabel(%d) = %q, want %q", c.index, got, c.want)
		}
	}
}

func TestParseTempo(t *testing.T) {
	cases := []struct {
		in      string
		want    uint8
		wantErr bool
	}{
		{"1/6", 7, false},
		{"1/16.", 5, false},
		// The whole note label wins over the numeric index.
		{"1", 15, false},
		{"0", 0, false},
		{"14", 14, false},
		{"16", 0, true},
		{"-2", 0, true},
		{"1/7", 0, true},
	}
	for _, c := range cases {
		got, err := ParseTempo(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTempo(%q) = %d, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTempo(%q) = %v, want nil", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTempo(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
