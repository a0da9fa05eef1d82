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

package borsh_test

import (
	"testing"

	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/internal/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderScalars(t *testing.T) {
	data := testutil.NewBuilder().
		U8(7).
		U32(0xdeadbeef).
		U64(1<<40 + 3).
		U8(1).
		String("héllo").
		Bytes()
	r := borsh.NewReader(data)
	assert.Equal(t, uint8(7), r.ReadU8())
	assert.Equal(t, uint32(0xdeadbeef), r.ReadU32())
	assert.Equal(t, uint64(1<<40+3), r.ReadU64())
	assert.True(t, r.ReadBool())
	assert.Equal(t, "héllo", r.ReadString())
	require.NoError(t, r.Finish())
}

func TestReaderStickyError(t *testing.T) {
	r := borsh.NewReader([]byte{1, 2})
	assert.Equal(t, uint32(0), r.ReadU32())
	require.ErrorIs(t, r.Err, borsh.ErrUnexpectedEOF)
	first := r.Err
	// Further reads are no-ops and keep the first error
	assert.Equal(t, uint8(0), r.ReadU8())
	assert.Equal(t, first, r.Err)
	assert.Equal(t, 0, r.Offset())
}

func TestReaderInvalidBool(t *testing.T) {
	r := borsh.NewReader([]byte{2})
	r.ReadBool()
	require.ErrorIs(t, r.Finish(), borsh.ErrInvalidBool)
}

func TestReaderInvalidUTF8(t *testing.T) {
	data := testutil.NewBuilder().Len(2).Raw([]byte{0xc3, 0x28}).Bytes()
	r := borsh.NewReader(data)
	r.ReadString()
	require.ErrorIs(t, r.Finish(), borsh.ErrInvalidUTF8)
}

func TestReaderTag(t *testing.T) {
	r := borsh.NewReader([]byte{2})
	assert.Equal(t, uint8(2), r.ReadTag("Thing", 3))
	require.NoError(t, r.Finish())

	r = borsh.NewReader([]byte{3})
	r.ReadTag("Thing", 3)
	err := r.Finish()
	require.ErrorIs(t, err, borsh.ErrInvalidTag)
	assert.Contains(t, err.Error(), "Thing variant 3")
}

func TestReaderOption(t *testing.T) {
	readU64 := func(r *borsh.Reader) uint64 { return r.ReadU64() }

	r := borsh.NewReader(testutil.NewBuilder().None().Bytes())
	assert.Nil(t, borsh.ReadOptional(r, readU64))
	require.NoError(t, r.Finish())

	r = borsh.NewReader(testutil.NewBuilder().Some().U64(9).Bytes())
	v := borsh.ReadOptional(r, readU64)
	require.NotNil(t, v)
	assert.Equal(t, uint64(9), *v)
	require.NoError(t, r.Finish())

	r = borsh.NewReader([]byte{5})
	borsh.ReadOptional(r, readU64)
	require.ErrorIs(t, r.Finish(), borsh.ErrInvalidTag)
}

func TestReaderSeq(t *testing.T) {
	readU8 := func(r *borsh.Reader) uint8 { return r.ReadU8() }

	r := borsh.NewReader(testutil.NewBuilder().Len(3).Raw([]byte{4, 5, 6}).Bytes())
	assert.Equal(t, []uint8{4, 5, 6}, borsh.ReadSeq(r, readU8))
	require.NoError(t, r.Finish())

	r = borsh.NewReader(testutil.NewBuilder().Len(0).Bytes())
	got := borsh.ReadSeq(r, readU8)
	require.NoError(t, r.Finish())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReaderSeqLengthExceedsInput(t *testing.T) {
	r := borsh.NewReader(testutil.NewBuilder().Len(1 << 30).U8(1).Bytes())
	got := borsh.ReadSeq(r, func(r *borsh.Reader) uint8 { return r.ReadU8() })
	assert.Nil(t, got)
	require.ErrorIs(t, r.Finish(), borsh.ErrUnexpectedEOF)
}

func TestReaderStringMap(t *testing.T) {
	data := testutil.NewBuilder().
		Len(2).
		String("abstract").String("x").
		String("title").String("y").
		Bytes()
	r := borsh.NewReader(data)
	assert.Equal(
		t,
		map[string]string{"abstract": "x", "title": "y"},
		r.ReadStringMap(),
	)
	require.NoError(t, r.Finish())

	testDefs := []struct {
		name string
		keys []string
	}{
		{name: "unsorted", keys: []string{"title", "abstract"}},
		{name: "duplicate", keys: []string{"title", "title"}},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			b := testutil.NewBuilder().Len(len(td.keys))
			for _, k := range td.keys {
				b.String(k).String("v")
			}
			r := borsh.NewReader(b.Bytes())
			assert.Nil(t, r.ReadStringMap())
			require.ErrorIs(t, r.Finish(), borsh.ErrUnsortedMap)
		})
	}
}

type pair struct {
	a uint8
	b uint64
}

func (p *pair) DecodeBorsh(r *borsh.Reader) {
	p.a = r.ReadU8()
	p.b = r.ReadU64()
}

func TestUnmarshal(t *testing.T) {
	data := testutil.NewBuilder().U8(1).U64(2).Bytes()
	var p pair
	require.NoError(t, borsh.Unmarshal(data, &p))
	assert.Equal(t, pair{a: 1, b: 2}, p)

	err := borsh.Unmarshal(append(data, 0), &p)
	require.ErrorIs(t, err, borsh.ErrTrailingBytes)

	testutil.RequireTruncationFails(t, data, func(b []byte) error {
		return borsh.Unmarshal(b, &pair{})
	})
}
