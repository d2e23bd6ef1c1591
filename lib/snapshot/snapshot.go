// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot turns device state into portable files. A settings
// snapshot carries a single configuration record with provenance, for
// sharing presets between devices. A medium image carries every byte
// of the medium, for full backup and restore.
//
// Both formats end with a keyed BLAKE3 digest over everything before
// it, under per-kind domain keys, so corrupted or mislabeled files
// are rejected before anything touches a medium.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/timewarp-audio/timewarp/lib/codec"
	"github.com/timewarp-audio/timewarp/lib/settings"
)

// Version is the current settings snapshot format version. Bump it
// when the envelope changes shape incompatibly.
const Version = 1

// Verification and decoding errors shared by both file formats.
var (
	// ErrTruncated means the data is too short to carry a digest.
	ErrTruncated = errors.New("snapshot: data too short for an integrity digest")

	// ErrDigest means the trailing digest does not match the content.
	// The file is corrupt, or it is a valid file of a different kind.
	ErrDigest = errors.New("snapshot: integrity digest mismatch")

	// ErrVersion means the format version is not supported by this
	// build.
	ErrVersion = errors.New("snapshot: unsupported format version")
)

// Envelope is the decoded content of a settings snapshot.
type Envelope struct {
	// Version is the snapshot format version the file was written
	// with.
	Version int `cbor:"1,keyasint"`

	// Created is when the snapshot was exported.
	Created time.Time `cbor:"2,keyasint"`

	// Settings is the configuration record the snapshot carries.
	Settings settings.Settings `cbor:"3,keyasint"`
}

// Export encodes s as a settings snapshot created at the given time.
func Export(s settings.Settings, created time.Time) ([]byte, error) {
	envelope := Envelope{
		Version:  Version,
		Created:  created.UTC(),
		Settings: s,
	}

	body, err := codec.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encoding envelope: %w", err)
	}
	return seal(settingsDomainKey, body), nil
}

// Inspect verifies and decodes a settings snapshot without applying
// it anywhere. The returned settings are clamped, so fields written
// by a newer build with a wider range still come back usable.
func Inspect(data []byte) (Envelope, error) {
	body, err := verify(settingsDomainKey, data)
	if err != nil {
		return Envelope{}, err
	}

	var envelope Envelope
	if err := codec.Unmarshal(body, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("snapshot: decoding envelope: %w", err)
	}
	if envelope.Version != Version {
		return Envelope{}, fmt.Errorf("version %d: %w", envelope.Version, ErrVersion)
	}

	envelope.Settings.Clamp()
	return envelope, nil
}

// Import verifies a settings snapshot and returns the settings it
// carries.
func Import(data []byte) (settings.Settings, error) {
	envelope, err := Inspect(data)
	if err != nil {
		return settings.Settings{}, err
	}
	return envelope.Settings, nil
}

// Payload verifies a settings snapshot and returns the raw encoded
// envelope, for diagnostic tooling that wants the bytes rather than
// the decoded form.
func Payload(data []byte) ([]byte, error) {
	return verify(settingsDomainKey, data)
}
