// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package input turns user-supplied record bytes into the raw Borsh buffer
// the decoders expect. Text encodings and zstd compression are undone here
// so the CLI and the HTTP service accept the same forms.
package input

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var (
	ErrUnknownEncoding = errors.New("unknown input encoding")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooLarge        = errors.New("input too large")
)

// Encoding names how record bytes are represented on input.
type Encoding string

const (
	EncodingRaw    Encoding = "raw"
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

func ParseEncoding(name string) (Encoding, error) {
	switch enc := Encoding(strings.ToLower(strings.TrimSpace(name))); enc {
	case EncodingRaw, EncodingHex, EncodingBase64:
		return enc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Decode converts data from enc to raw bytes. Hex input may carry a 0x
// prefix and both text forms may be surrounded by whitespace.
func Decode(enc Encoding, data []byte) ([]byte, error) {
	switch enc {
	case EncodingRaw:
		return data, nil
	case EncodingHex:
		text := strings.TrimSpace(string(data))
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
		ret, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %w", ErrInvalidInput, err)
		}
		return ret, nil
	case EncodingBase64:
		ret, err := base64.StdEncoding.DecodeString(
			strings.TrimSpace(string(data)),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: base64: %w", ErrInvalidInput, err)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
	}
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether data starts with a zstd frame header.
func IsZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Decompress inflates a zstd stream. A positive limit caps the decoded
// size.
func Decompress(data []byte, limit int64) ([]byte, error) {
	opts := []zstd.DOption{}
	if limit > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(limit)))
	}
	zr, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()
	ret, err := zr.DecodeAll(data, nil)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
		}
		return nil, fmt.Errorf("%w: zstd: %w", ErrInvalidInput, err)
	}
	if limit > 0 && int64(len(ret)) > limit {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(ret))
	}
	return ret, nil
}

// Read consumes r, decompresses zstd content when present and then
// decodes enc. A positive limit caps both the read and decompressed sizes.
func Read(r io.Reader, enc Encoding, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	if IsZstd(data) {
		data, err = Decompress(data, limit)
		if err != nil {
			return nil, err
		}
	}
	return Decode(enc, data)
}

// ReadFile is Read applied to the named file.
func ReadFile(path string, enc Encoding, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return Read(f, enc, limit)
}
