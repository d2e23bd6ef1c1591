// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"

	"github.com/zeebo/blake3"
)

// digestSize is the length of the keyed BLAKE3 digest appended to
// every snapshot file.
const digestSize = 32

// domainKey is a 32-byte key for BLAKE3 keyed hashing. Domain
// separation ensures that a digest computed for one file kind can
// never verify as another, even over identical bytes.
type domainKey [32]byte

// Domain separation keys. These are fixed constants; changing them
// invalidates every existing snapshot in that domain. The byte values
// are the ASCII encoding of the domain name, zero-padded to 32 bytes
// (BLAKE3 keyed mode treats the key as an opaque 32-byte value).
var (
	settingsDomainKey = domainKey{
		't', 'i', 'm', 'e', 'w', 'a', 'r', 'p', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
		't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	imageDomainKey = domainKey{
		't', 'i', 'm', 'e', 'w', 'a', 'r', 'p', '.', 'i', 'm', 'a', 'g', 'e', 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// keyedDigest computes the BLAKE3 keyed digest of data under the
// given domain key.
func keyedDigest(key domainKey, data []byte) [digestSize]byte {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed fails only for a key of the wrong length, and
		// domainKey fixes the length at compile time.
		panic("snapshot: keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(data)

	var digest [digestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// seal appends the keyed digest of body, producing a complete
// snapshot file.
func seal(key domainKey, body []byte) []byte {
	digest := keyedDigest(key, body)

	sealed := make([]byte, 0, len(body)+digestSize)
	sealed = append(sealed, body...)
	sealed = append(sealed, digest[:]...)
	return sealed
}

// verify checks the trailing digest of a sealed file and returns the
// body without it.
func verify(key domainKey, data []byte) ([]byte, error) {
	if len(data) <= digestSize {
		return nil, ErrTruncated
	}

	body := data[:len(data)-digestSize]
	stored := data[len(data)-digestSize:]

	computed := keyedDigest(key, body)
	if !bytes.Equal(stored, computed[:]) {
		return nil, ErrDigest
	}
	return body, nil
}
