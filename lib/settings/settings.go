// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings models the delay pedal's persistent configuration:
// per-effect delay times and tempo fractions, the selected effect,
// and the wet/dry flag. The whole state serializes to a fixed
// 28-byte record whose layout matches what the device firmware reads
// and writes, so a medium written by either side loads on the other.
package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Record layout. Field offsets are fixed; reordering them would make
// every deployed medium unreadable.
const (
	// Size is the exact length of the serialized record in bytes.
	Size = 28

	offDelayTime  = 0
	offWetAndDry  = offDelayTime + EffectCount
	offEffect     = offWetAndDry + 1
	offTempoIndex = offEffect + 1
)

// Factory defaults.
const (
	// DefaultEffect is selected after a factory reset.
	DefaultEffect = ShortDelay

	// DefaultDelayTime seeds every effect's delay control.
	DefaultDelayTime = 220

	// DefaultTempoIndex seeds every effect's tempo to 1/6.
	DefaultTempoIndex = 7

	// DelayFloor is the lowest selectable delay time.
	DelayFloor = 7
)

// Settings is the device state persisted across power cycles. Delay
// times and tempo indexes are kept per effect, so switching effects
// restores where each one was last left.
type Settings struct {
	// DelayTime is the delay control position for each effect.
	DelayTime [EffectCount]uint8

	// WetAndDry mixes the dry signal into the output; when false the
	// output is wet only.
	WetAndDry bool

	// Effect is the selected algorithm.
	Effect Effect

	// TempoIndex is each effect's position in the tempo fraction
	// table, used when an external clock drives the delay time.
	TempoIndex [EffectCount]uint8
}

// Default returns the factory configuration.
func Default() Settings {
	s := Settings{
		Effect:    DefaultEffect,
		WetAndDry: true,
	}
	for i := range s.DelayTime {
		s.DelayTime[i] = DefaultDelayTime
		s.TempoIndex[i] = DefaultTempoIndex
	}
	return s
}

// MarshalBinary encodes the settings into the fixed record layout:
// thirteen delay bytes, the wet/dry flag, the effect selector, and
// thirteen tempo indexes.
func (s Settings) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Size)
	copy(buf[offDelayTime:], s.DelayTime[:])
	if s.WetAndDry {
		buf[offWetAndDry] = 1
	}
	buf[offEffect] = byte(s.Effect)
	copy(buf[offTempoIndex:], s.TempoIndex[:])
	return buf, nil
}

// UnmarshalBinary decodes a record exactly as stored, without
// validating field ranges. Use Load to decode and clamp in one step.
func (s *Settings) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("settings: record is %d bytes, want %d", len(data), Size)
	}
	copy(s.DelayTime[:], data[offDelayTime:offDelayTime+EffectCount])
	s.WetAndDry = data[offWetAndDry] != 0
	s.Effect = Effect(int8(data[offEffect]))
	copy(s.TempoIndex[:], data[offTempoIndex:offTempoIndex+EffectCount])
	return nil
}

// Load decodes a record and clamps out-of-range fields back to
// usable values.
func Load(data []byte) (Settings, error) {
	var s Settings
	if err := s.UnmarshalBinary(data); err != nil {
		return Settings{}, err
	}
	s.Clamp()
	return s, nil
}

// Clamp forces the effect selector and the tempo indexes back into
// range, substituting the defaults for values no control could have
// produced. Delay times are left alone: every byte value is a legal
// control position for at least one effect.
func (s *Settings) Clamp() {
	if !s.Effect.Valid() {
		s.Effect = DefaultEffect
	}
	for i, index := range s.TempoIndex {
		if index >= TempoCount {
			s.TempoIndex[i] = DefaultTempoIndex
		}
	}
}

// CurrentDelay returns the selected effect's delay time.
func (s Settings) CurrentDelay() uint8 {
	return s.DelayTime[s.Effect]
}

// CurrentTempo returns the selected effect's tempo index.
func (s Settings) CurrentTempo() uint8 {
	return s.TempoIndex[s.Effect]
}

// CurrentTempoLabel returns the selected effect's tempo fraction.
func (s Settings) CurrentTempoLabel() string {
	return TempoLabel(s.TempoIndex[s.Effect])
}

// SetEffect selects an effect. Like the device's selector, landing on
// an effect clamps its stored delay time to that effect's ceiling.
// Invalid effects are ignored.
func (s *Settings) SetEffect(e Effect) {
	if !e.Valid() {
		return
	}
	s.Effect = e
	if max := e.DelayCeiling(); s.DelayTime[e] > max {
		s.DelayTime[e] = max
	}
}

// CycleEffect steps the effect selector by delta, wrapping at both
// ends.
func (s *Settings) CycleEffect(delta int) {
	n := (int(s.Effect) + delta) % EffectCount
	if n < 0 {
		n += EffectCount
	}
	s.SetEffect(Effect(n))
}

// SetDelay sets the selected effect's delay time, clamped to the
// floor and the effect's ceiling.
func (s *Settings) SetDelay(v uint8) {
	s.DelayTime[s.Effect] = clampDelay(s.Effect, v)
}

// AdjustDelay moves the selected effect's delay time by delta steps,
// clamped to the floor and the effect's ceiling.
func (s *Settings) AdjustDelay(delta int) {
	v := int(s.DelayTime[s.Effect]) + delta
	switch {
	case v < 0:
		v = 0
	case v > 255:
		v = 255
	}
	s.SetDelay(uint8(v))
}

// SetTempo sets the selected effect's tempo index. Indexes at or
// beyond TempoCount are ignored.
func (s *Settings) SetTempo(index uint8) {
	if index >= TempoCount {
		return
	}
	s.TempoIndex[s.Effect] = index
}

// AdjustTempo moves the selected effect's tempo index by delta steps,
// stopping at the ends of the fraction table.
func (s *Settings) AdjustTempo(delta int) {
	n := int(s.TempoIndex[s.Effect]) + delta
	switch {
	case n < 0:
		n = 0
	case n >= TempoCount:
		n = TempoCount - 1
	}
	s.TempoIndex[s.Effect] = uint8(n)
}

func clampDelay(e Effect, v uint8) uint8 {
	if v < DelayFloor {
		return DelayFloor
	}
	if max := e.DelayCeiling(); v > max {
		return max
	}
	return v
}

// Apply sets one field from its textual form. Keys are "effect",
// "delay", "tempo", and "wet-dry". Delay and tempo act on the
// selected effect, so select the effect first when changing both.
func (s *Settings) Apply(key, value string) error {
	switch key {
	case "effect":
		e, err := ParseEffect(value)
		if err != nil {
			return err
		}
		s.SetEffect(e)
	case "delay":
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 8)
		if err != nil {
			return fmt.Errorf("settings: delay %q is not a number in 0..255", value)
		}
		s.SetDelay(uint8(n))
	case "tempo":
		index, err := ParseTempo(value)
		if err != nil {
			return err
		}
		s.SetTempo(index)
	case "wet-dry":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		s.WetAndDry = on
	default:
		return fmt.Errorf("settings: unknown key %q, valid keys are effect, delay, tempo, wet-dry", key)
	}
	return nil
}

func parseOnOff(s string) (bool, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(trimmed)
	if err != nil {
		return false, fmt.Errorf("settings: wet-dry wants on or off, got %q", s)
	}
	return v, nil
}
