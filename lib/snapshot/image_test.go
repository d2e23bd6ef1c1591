// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/timewarp-audio/timewarp/lib/medium"
)

// patternedMedium returns a medium that looks like a device after
// some use: factory fill with a few written slots. Compresses well.
func patternedMedium(capacity int64) *medium.Mem {
	m := medium.NewMemFilled(capacity, 0xFF)
	slot := bytes.Repeat([]byte{0x66, 0x11, 0x22, 0x33}, 8)
	m.WriteAt(slot, 0)
	m.WriteAt(slot, 96)
	return m
}

// imageTag digs the compression tag out of a sealed image.
func imageTag(t *testing.T, data []byte) CompressionTag {
	t.Helper()
	body, err := verify(imageDomainKey, data)
	if err != nil {
		t.Fatalf("image digest check failed: %v", err)
	}
	return CompressionTag(body[5])
}

func TestImageRoundTrip(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			source := patternedMedium(1024)

			var file bytes.Buffer
			if err := SaveImage(source, &file, tag); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			raw, err := LoadImage(bytes.NewReader(file.Bytes()))
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if !bytes.Equal(raw, source.Bytes()) {
				t.Fatal("loaded image differs from source medium")
			}

			target := medium.NewMem(1024)
			if err := RestoreImage(target, raw); err != nil {
				t.Fatalf("RestoreImage failed: %v", err)
			}
			if !bytes.Equal(target.Bytes(), source.Bytes()) {
				t.Error("restored medium differs from source medium")
			}
		})
	}
}

func TestImageCompressionShrinksFile(t *testing.T) {
	source := patternedMedium(1024)

	var plain, packed bytes.Buffer
	if err := SaveImage(source, &plain, CompressionNone); err != nil {
		t.Fatalf("SaveImage(none) failed: %v", err)
	}
	if err := SaveImage(source, &packed, CompressionZstd); err != nil {
		t.Fatalf("SaveImage(zstd) failed: %v", err)
	}

	if packed.Len() >= plain.Len() {
		t.Errorf("zstd image is %d bytes, uncompressed is %d", packed.Len(), plain.Len())
	}
	if got := imageTag(t, packed.Bytes()); got != CompressionZstd {
		t.Errorf("stored tag = %v, want zstd", got)
	}
}

func TestImageAutoPicksCompression(t *testing.T) {
	var file bytes.Buffer
	if err := SaveImageAuto(patternedMedium(1024), &file); err != nil {
		t.Fatalf("SaveImageAuto failed: %v", err)
	}

	if got := imageTag(t, file.Bytes()); got != CompressionZstd {
		t.Errorf("auto tag for repetitive medium = %v, want zstd", got)
	}
	if _, err := LoadImage(bytes.NewReader(file.Bytes())); err != nil {
		t.Errorf("LoadImage failed: %v", err)
	}
}

func TestIncompressibleImageFallsBackToNone(t *testing.T) {
	m := medium.NewMem(1024)
	noise := make([]byte, 1024)
	rand.Read(noise)
	m.WriteAt(noise, 0)

	var file bytes.Buffer
	if err := SaveImage(m, &file, CompressionZstd); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if got := imageTag(t, file.Bytes()); got != CompressionNone {
		t.Errorf("stored tag = %v, want none fallback", got)
	}

	raw, err := LoadImage(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if !bytes.Equal(raw, noise) {
		t.Error("loaded image differs from source medium")
	}
}

func TestRestoreRejectsCapacityMismatch(t *testing.T) {
	var file bytes.Buffer
	if err := SaveImage(patternedMedium(1024), &file, CompressionNone); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	raw, err := LoadImage(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if err := RestoreImage(medium.NewMem(512), raw); !errors.Is(err, ErrImageSize) {
		t.Errorf("RestoreImage onto smaller medium = %v, want ErrImageSize", err)
	}
}

func TestLoadImageRejectsWrongMagic(t *testing.T) {
	body := []byte("NOPE")
	body = append(body, ImageVersion, byte(CompressionNone), 0, 0, 0, 0)

	if _, err := LoadImage(bytes.NewReader(seal(imageDomainKey, body))); !errors.Is(err, ErrImageMagic) {
		t.Errorf("LoadImage with wrong magic = %v, want ErrImageMagic", err)
	}
}

func TestLoadImageRejectsUnsupportedVersion(t *testing.T) {
	body := []byte(imageMagic)
	body = append(body, ImageVersion+1, byte(CompressionNone), 0, 0, 0, 0)

	if _, err := LoadImage(bytes.NewReader(seal(imageDomainKey, body))); !errors.Is(err, ErrImageVersion) {
		t.Errorf("LoadImage with future version = %v, want ErrImageVersion", err)
	}
}

func TestLoadImageRejectsShortBody(t *testing.T) {
	// Sealed correctly, but the body is shorter than a header.
	if _, err := LoadImage(bytes.NewReader(seal(imageDomainKey, []byte(imageMagic)))); !errors.Is(err, ErrTruncated) {
		t.Errorf("LoadImage with short body = %v, want ErrTruncated", err)
	}
}

func TestLoadImageRejectsCorruptPayload(t *testing.T) {
	var file bytes.Buffer
	if err := SaveImage(patternedMedium(1024), &file, CompressionZstd); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	data := file.Bytes()
	data[imageHeaderSize+4] ^= 0x80

	if _, err := LoadImage(bytes.NewReader(data)); !errors.Is(err, ErrDigest) {
		t.Errorf("LoadImage of corrupted file = %v, want ErrDigest", err)
	}
}
