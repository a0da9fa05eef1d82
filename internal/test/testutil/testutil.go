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

// Package testutil provides common test helpers for the namgov project.
// The Builder produces Borsh fixtures so tests can describe records field by
// field instead of carrying opaque hex blobs.
package testutil

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Builder appends Borsh-encoded values to a byte buffer.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) U32(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *Builder) U64(v uint64) *Builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

// Raw appends bytes with no prefix.
func (b *Builder) Raw(v []byte) *Builder {
	b.buf = append(b.buf, v...)
	return b
}

func (b *Builder) String(v string) *Builder {
	b.U32(uint32(len(v))) //nolint:gosec
	b.buf = append(b.buf, v...)
	return b
}

// Some writes an option presence flag; the caller appends the value.
func (b *Builder) Some() *Builder {
	return b.U8(1)
}

func (b *Builder) None() *Builder {
	return b.U8(0)
}

// Len writes a sequence length prefix.
func (b *Builder) Len(n int) *Builder {
	return b.U32(uint32(n)) //nolint:gosec
}

// U256 writes a 256-bit little-endian integer given as four u64 limbs,
// least significant first.
func (b *Builder) U256(limbs ...uint64) *Builder {
	var tmp [4]uint64
	copy(tmp[:], limbs)
	for _, l := range tmp {
		b.U64(l)
	}
	return b
}

// Address writes a 21-byte raw address.
func (b *Builder) Address(discriminant byte, hash [20]byte) *Builder {
	b.buf = append(b.buf, discriminant)
	b.buf = append(b.buf, hash[:]...)
	return b
}

func (b *Builder) Bytes() []byte {
	ret := make([]byte, len(b.buf))
	copy(ret, b.buf)
	return ret
}

// Hash20 returns a 20-byte hash filled with a repeating seed byte.
func Hash20(seed byte) [20]byte {
	var ret [20]byte
	for i := range ret {
		ret[i] = seed + byte(i)
	}
	return ret
}

// RequireTruncationFails checks that decode fails for every strict prefix
// of a well-formed buffer, including the empty one.
func RequireTruncationFails(
	t *testing.T,
	data []byte,
	decode func([]byte) error,
) {
	t.Helper()
	require.NoError(t, decode(data), "full buffer must decode")
	for i := range len(data) {
		require.Error(
			t,
			decode(data[:i]),
			"prefix of %d/%d bytes decoded",
			i,
			len(data),
		)
	}
}

// WaitForCondition polls the given condition function until it returns true
// or the timeout expires.
func WaitForCondition(
	t *testing.T,
	condition func() bool,
	timeout time.Duration,
	msg string,
) {
	t.Helper()
	require.Eventually(
		t,
		condition,
		timeout,
		10*time.Millisecond,
		msg,
	)
}
