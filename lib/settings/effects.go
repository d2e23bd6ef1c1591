// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Effect selects one of the delay engine's algorithms. The numeric
// value is what the record stores on the medium, in the order the
// device's selector steps through them.
type Effect int8

const (
	Decelerator Effect = iota
	ShortDelay
	LongDelay
	Echo
	EchoPlus
	EchoPlusPlus
	Chorus
	ChorusPlus
	Reverb
	WowNotFlutter
	Telegraph
	TeleVerb
	Psycho
)

// EffectCount is the number of selectable effects.
const EffectCount = int(Psycho) + 1

// effectLabels are the names the device shows on its display,
// abbreviated to fit its sixteen-character lines.
var effectLabels = [EffectCount]string{
	"Deceleratr",
	"Shrt dly",
	"Lng Delay",
	"Echo",
	"Echo+",
	"Echo++",
	"Chorus",
	"Chorus+",
	"Reverb",
	"WowNotFlut",
	"Telegraph",
	"TeleVerb",
	"Psycho",
}

// effectSlugs are the stable identifiers used on the command line and
// in serialized output.
var effectSlugs = [EffectCount]string{
	"decelerator",
	"short-delay",
	"long-delay",
	"echo",
	"echo-plus",
	"echo-plus-plus",
	"chorus",
	"chorus-plus",
	"reverb",
	"wow-not-flutter",
	"telegraph",
	"televerb",
	"psycho",
}

// Delay time ceilings. Most effects accept the full byte range; the
// decelerator and wow effects take a narrower one.
const (
	deceleratorDelayMax   = 100
	wowNotFlutterDelayMax = 60
	defaultDelayMax       = 255
)

// Valid reports whether e names one of the selectable effects.
func (e Effect) Valid() bool {
	return e >= 0 && int(e) < EffectCount
}

// String returns the effect's display name as the device shows it.
func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("effect(%d)", int8(e))
	}
	return effectLabels[e]
}

// Slug returns the effect's command-line identifier.
func (e Effect) Slug() string {
	if !e.Valid() {
		return fmt.Sprintf("effect(%d)", int8(e))
	}
	return effectSlugs[e]
}

// DelayCeiling returns the largest delay time the effect accepts.
func (e Effect) DelayCeiling() uint8 {
	switch e {
	case Decelerator:
		return deceleratorDelayMax
	case WowNotFlutter:
		return wowNotFlutterDelayMax
	}
	return defaultDelayMax
}

// Effects returns all selectable effects in selector order.
func Effects() []Effect {
	all := make([]Effect, EffectCount)
	for i := range all {
		all[i] = Effect(i)
	}
	return all
}

// ParseEffect resolves s to an effect. It accepts the command-line
// slug, the display name, or the numeric selector position, ignoring
// case, spaces, dashes, and underscores.
func ParseEffect(s string) (Effect, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		e := Effect(n)
		if !e.Valid() {
			return 0, fmt.Errorf("settings: effect index %d out of range 0..%d", n, EffectCount-1)
		}
		return e, nil
	}
	want := normalizeEffectName(trimmed)
	for i := 0; i < EffectCount; i++ {
		e := Effect(i)
		if normalizeEffectName(effectLabels[i]) == want || normalizeEffectName(effectSlugs[i]) == want {
			return e, nil
		}
	}
	return 0, fmt.Errorf("settings: unknown effect %q", s)
}

// normalizeEffectName lowercases and strips separators but keeps the
// plus signs that tell the echo and chorus variants apart.
func normalizeEffectName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TempoCount is the number of tempo fractions selectable per effect.
const TempoCount = 16

// tempoLabels are the musical note fractions the tempo control steps
// through when an external clock is present, shortest first. A
// trailing dot marks a dotted note.
var tempoLabels = [TempoCount]string{
	"1/48", "1/32", "1/24", "1/16", "1/12", "1/16.", "1/8", "1/6",
	"1/8.", "1/4", "1/3", "1/4.", "1/2", "2/3", "1/2.", "1",
}

// TempoLabel returns the note fraction for a tempo index. The index
// must be below TempoCount.
func TempoLabel(index uint8) string {
	return tempoLabels[index]
}

// ParseTempo resolves s to a tempo index. A note fraction such as
// "1/8." is matched first, so the whole note "1" always means the
// fraction, never index one. Anything else is read as a numeric
// index.
func ParseTempo(s string) (uint8, error) {
	trimmed := strings.TrimSpace(s)
	for i, label := range tempoLabels {
		if trimmed == label {
			return uint8(i), nil
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("settings: unknown tempo %q", s)
	}
	if n < 0 || n >= TempoCount {
		return 0, fmt.Errorf("settings: tempo index %d out of range 0..%d", n, TempoCount-1)
	}
	return uint8(n), nil
}
