// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type sampleEnvelope struct {
	Version int    `cbor:"1,keyasint"`
	Name    string `cbor:"2,keyasint"`
	Body    []byte `cbor:"3,keyasint"`
}

func TestRoundTrip(t *testing.T) {
	original := sampleEnvelope{
		Version: 1,
		Name:    "chorus preset",
		Body:    []byte{0xDC, 0x01, 0x07},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleEnvelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Version != original.Version || decoded.Name != original.Name ||
		!bytes.Equal(decoded.Body, original.Body) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]int{"delay": 220, "tempo": 7, "effect": 1}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	// A decoder built for fewer fields must skip what it does not
	// know, so older readers keep working on newer files.
	data, err := Marshal(sampleEnvelope{Version: 2, Name: "x", Body: []byte{1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var slim struct {
		Version int `cbor:"1,keyasint"`
	}
	if err := Unmarshal(data, &slim); err != nil {
		t.Fatalf("Unmarshal into slim struct: %v", err)
	}
	if slim.Version != 2 {
		t.Errorf("Version = %d, want 2", slim.Version)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]string{"effect": "chorus"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, "chorus") {
		t.Errorf("Diagnose() = %q, want it to mention the map value", notation)
	}
}
