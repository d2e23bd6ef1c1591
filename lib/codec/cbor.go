// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec centralizes the CBOR configuration used for snapshot
// files. Encoding uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. The same logical content always encodes to the same bytes,
// which keeps integrity digests over the encoded form stable.
package codec

import "github.com/fxamacker/cbor/v2"

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	// Unknown fields are ignored on decode so newer writers stay
	// readable by older readers.
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for
// the entire contents of data. Used by the snapshot inspection
// commands.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
