// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/timewarp-audio/timewarp/lib/medium"
)

// Medium image layout: a fixed header, the payload, and the keyed
// digest. The header is 4 bytes of magic, a format version byte, a
// compression tag byte, and the uncompressed size as a little-endian
// uint32.
const (
	imageMagic      = "TWIM"
	imageHeaderSize = 10
)

// ImageVersion is the current medium image format version.
const ImageVersion = 1

var (
	// ErrImageMagic means the file does not start with the medium
	// image magic.
	ErrImageMagic = errors.New("snapshot: not a medium image")

	// ErrImageVersion means the image format version is not supported
	// by this build.
	ErrImageVersion = errors.New("snapshot: unsupported image version")

	// ErrImageSize means the image does not match the capacity of the
	// medium it is being restored onto.
	ErrImageSize = errors.New("snapshot: image size does not match medium capacity")
)

// SaveImage writes a complete image of the medium to w, compressing
// the payload per tag. Payloads the algorithm cannot shrink are
// stored uncompressed.
func SaveImage(m medium.Medium, w io.Writer, tag CompressionTag) error {
	raw, err := readMedium(m)
	if err != nil {
		return err
	}
	return writeImage(w, raw, tag)
}

// SaveImageAuto is SaveImage with the compression picked by probing
// the medium content.
func SaveImageAuto(m medium.Medium, w io.Writer) error {
	raw, err := readMedium(m)
	if err != nil {
		return err
	}
	return writeImage(w, raw, SelectCompression(raw))
}

func readMedium(m medium.Medium) ([]byte, error) {
	raw := make([]byte, m.Capacity())
	if _, err := m.ReadAt(raw, 0); err != nil {
		return nil, fmt.Errorf("snapshot: reading medium: %w", err)
	}
	return raw, nil
}

func writeImage(w io.Writer, raw []byte, tag CompressionTag) error {
	payload, used := raw, CompressionNone
	if tag != CompressionNone {
		compressed, err := Compress(raw, tag)
		switch {
		case err == nil:
			payload, used = compressed, tag
		case IsIncompressible(err):
			// Keep the raw payload with the none tag.
		default:
			return fmt.Errorf("snapshot: compressing image: %w", err)
		}
	}

	body := make([]byte, 0, imageHeaderSize+len(payload))
	body = append(body, imageMagic...)
	body = append(body, ImageVersion, byte(used))
	body = binary.LittleEndian.AppendUint32(body, uint32(len(raw)))
	body = append(body, payload...)

	if _, err := w.Write(seal(imageDomainKey, body)); err != nil {
		return fmt.Errorf("snapshot: writing image: %w", err)
	}
	return nil
}

// LoadImage reads a medium image from r, checks its digest, and
// returns the uncompressed medium bytes.
func LoadImage(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading image: %w", err)
	}

	body, err := verify(imageDomainKey, data)
	if err != nil {
		return nil, err
	}
	if len(body) < imageHeaderSize {
		return nil, ErrTruncated
	}
	if string(body[:len(imageMagic)]) != imageMagic {
		return nil, ErrImageMagic
	}
	if body[4] != ImageVersion {
		return nil, fmt.Errorf("image version %d: %w", body[4], ErrImageVersion)
	}

	tag := CompressionTag(body[5])
	size := binary.LittleEndian.Uint32(body[6:imageHeaderSize])

	raw, err := Decompress(body[imageHeaderSize:], tag, int(size))
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompressing image: %w", err)
	}
	return raw, nil
}

// RestoreImage writes raw medium bytes, as returned by [LoadImage],
// over the entire medium. The image must match the medium capacity
// exactly; restoring a 4 KiB image onto a 1 KiB part would silently
// truncate the slot chain.
func RestoreImage(m medium.Medium, data []byte) error {
	if int64(len(data)) != m.Capacity() {
		return fmt.Errorf("image is %d bytes, medium is %d: %w",
			len(data), m.Capacity(), ErrImageSize)
	}
	if _, err := m.WriteAt(data, 0); err != nil {
		return fmt.Errorf("snapshot: writing medium: %w", err)
	}
	return nil
}
