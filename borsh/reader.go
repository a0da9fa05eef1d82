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

// Package borsh implements the read side of the Borsh binary format used by
// on-chain state: little-endian fixed-width integers, length-prefixed strings
// and sequences, presence-flagged options and u8-discriminated unions.
//
// A Reader carries a single cursor and a sticky error. Once a read fails,
// every further read is a no-op returning the zero value, so decoders can be
// written as straight-line code and check Err once at the end.
package borsh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrTrailingBytes = errors.New("trailing bytes after value")
	ErrInvalidTag    = errors.New("invalid enum discriminant")
	ErrInvalidBool   = errors.New("invalid bool value")
	ErrInvalidUTF8   = errors.New("invalid utf-8 string")
	ErrUnsortedMap   = errors.New("map keys not in strictly ascending order")
	ErrInvalidValue  = errors.New("invalid value")
)

// Decodable is implemented by types that know how to read themselves from a
// Reader.
type Decodable interface {
	DecodeBorsh(r *Reader)
}

// Reader is a cursor over a Borsh-encoded byte slice.
type Reader struct {
	data []byte
	pos  int
	Err  error
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Fail records err at the current offset unless an error is already set.
func (r *Reader) Fail(err error) {
	if r.Err != nil {
		return
	}
	r.Err = fmt.Errorf("offset %d: %w", r.pos, err)
}

// Failf records a formatted error wrapping err.
func (r *Reader) Failf(err error, format string, args ...any) {
	if r.Err != nil {
		return
	}
	r.Err = fmt.Errorf(
		"offset %d: %w: %s",
		r.pos,
		err,
		fmt.Sprintf(format, args...),
	)
}

// next consumes n bytes. The returned slice aliases the input.
func (r *Reader) next(n int) []byte {
	if r.Err != nil {
		return nil
	}
	if n < 0 || n > r.Remaining() {
		r.Failf(
			ErrUnexpectedEOF,
			"need %d bytes, have %d",
			n,
			r.Remaining(),
		)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadBool reads a strict 0/1 boolean.
func (r *Reader) ReadBool() bool {
	v := r.ReadU8()
	switch v {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Failf(ErrInvalidBool, "got %d", v)
		return false
	}
}

// ReadFixed fills dst from the input without a length prefix.
func (r *Reader) ReadFixed(dst []byte) {
	b := r.next(len(dst))
	if b == nil {
		return
	}
	copy(dst, b)
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() string {
	n := r.ReadU32()
	b := r.next(int(n))
	if b == nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.Fail(ErrInvalidUTF8)
		return ""
	}
	return string(b)
}

// ReadLen reads a u32 sequence length. Every element in this package's
// grammar occupies at least one byte, so a length larger than the remaining
// input is rejected here rather than after a large allocation.
func (r *Reader) ReadLen() int {
	n := r.ReadU32()
	if r.Err != nil {
		return 0
	}
	if uint64(n) > uint64(r.Remaining()) {
		r.Failf(
			ErrUnexpectedEOF,
			"sequence of %d elements with %d bytes left",
			n,
			r.Remaining(),
		)
		return 0
	}
	return int(n)
}

// ReadOption reads an option presence flag.
func (r *Reader) ReadOption() bool {
	v := r.ReadU8()
	switch v {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Failf(ErrInvalidTag, "option flag %d", v)
		return false
	}
}

// ReadTag reads a union discriminant and checks it against the number of
// declared variants of the named type.
func (r *Reader) ReadTag(typeName string, variants uint8) uint8 {
	v := r.ReadU8()
	if r.Err != nil {
		return 0
	}
	if v >= variants {
		r.Failf(ErrInvalidTag, "%s variant %d", typeName, v)
		return 0
	}
	return v
}

// ReadStringMap reads a BTreeMap<String, String>. Keys must arrive in
// strictly ascending byte order.
func (r *Reader) ReadStringMap() map[string]string {
	n := r.ReadLen()
	if r.Err != nil {
		return nil
	}
	ret := make(map[string]string, n)
	var prev string
	for i := range n {
		k := r.ReadString()
		v := r.ReadString()
		if r.Err != nil {
			return nil
		}
		if i > 0 && k <= prev {
			r.Failf(ErrUnsortedMap, "key %q after %q", k, prev)
			return nil
		}
		ret[k] = v
		prev = k
	}
	return ret
}

// Finish reports the sticky error, or ErrTrailingBytes if input remains.
func (r *Reader) Finish() error {
	if r.Err != nil {
		return r.Err
	}
	if r.Remaining() > 0 {
		return fmt.Errorf(
			"offset %d: %w: %d unread",
			r.pos,
			ErrTrailingBytes,
			r.Remaining(),
		)
	}
	return nil
}

// Unmarshal decodes data into v and requires that all input is consumed.
func Unmarshal(data []byte, v Decodable) error {
	r := NewReader(data)
	v.DecodeBorsh(r)
	return r.Finish()
}

// ReadSeq reads a length-prefixed sequence, decoding each element with fn.
func ReadSeq[T any](r *Reader, fn func(r *Reader) T) []T {
	n := r.ReadLen()
	if r.Err != nil {
		return nil
	}
	ret := make([]T, 0, n)
	for range n {
		v := fn(r)
		if r.Err != nil {
			return nil
		}
		ret = append(ret, v)
	}
	return ret
}

// ReadOptional reads an Option<T>, returning nil for None.
func ReadOptional[T any](r *Reader, fn func(r *Reader) T) *T {
	if !r.ReadOption() {
		return nil
	}
	v := fn(r)
	if r.Err != nil {
		return nil
	}
	return &v
}
