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

package address_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/namgov/address"
	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/internal/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validatorAddr    = "tnam1qyvaqhs0vlfzlfhccxua89s8zmu7xq90xqsa9uua"
	validatorAddrRaw = "0119d05e0f67d22fa6f8c1b9d3960716f9e300af30"
)

func TestDecodeKnownAddress(t *testing.T) {
	raw, err := hex.DecodeString(validatorAddrRaw)
	require.NoError(t, err)

	addr, err := address.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, address.KindEstablished, addr.Kind())
	assert.Equal(t, validatorAddr, addr.String())

	parsed, err := address.Parse(validatorAddr)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
	rawOut := parsed.Bytes()
	assert.Equal(t, raw, rawOut[:])
}

func TestAddressText(t *testing.T) {
	testDefs := []struct {
		name     string
		kind     address.Kind
		hash     [address.HashLen]byte
		expected string
	}{
		{
			name:     "established",
			kind:     address.KindEstablished,
			hash:     testutil.Hash20(0x10),
			expected: "tnam1qygpzysnzs23v9ccrydpk8qarc0jqgfzyv4h4smf",
		},
		{
			name:     "implicit",
			kind:     address.KindImplicit,
			hash:     testutil.Hash20(0x40),
			expected: "tnam1qpqyzsjrg3z5v36gf99yknzdfe84q52j2vhk8dgw",
		},
		{
			name:     "pgf",
			kind:     address.KindPgf,
			expected: "tnam1pgqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqkhgajr",
		},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			data := testutil.NewBuilder().Address(byte(td.kind), td.hash).Bytes()
			addr, err := address.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, td.expected, addr.String())

			text, err := addr.MarshalText()
			require.NoError(t, err)
			var back address.Address
			require.NoError(t, back.UnmarshalText(text))
			assert.Equal(t, addr, back)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := address.Decode(nil)
		require.ErrorIs(t, err, borsh.ErrUnexpectedEOF)
	})
	t.Run("unknown kind", func(t *testing.T) {
		data := testutil.NewBuilder().Address(16, [20]byte{}).Bytes()
		_, err := address.Decode(data)
		require.ErrorIs(t, err, address.ErrUnknownKind)
		require.ErrorIs(t, err, borsh.ErrInvalidValue)
	})
	t.Run("payload on internal address", func(t *testing.T) {
		data := testutil.NewBuilder().
			Address(byte(address.KindGovernance), testutil.Hash20(1)).
			Bytes()
		_, err := address.Decode(data)
		require.ErrorIs(t, err, address.ErrInvalidPayload)
	})
	t.Run("trailing", func(t *testing.T) {
		data := testutil.NewBuilder().
			Address(byte(address.KindEstablished), testutil.Hash20(1)).
			U8(0).
			Bytes()
		_, err := address.Decode(data)
		require.ErrorIs(t, err, borsh.ErrTrailingBytes)
	})
	t.Run("truncated", func(t *testing.T) {
		data := testutil.NewBuilder().
			Address(byte(address.KindEstablished), testutil.Hash20(1)).
			Bytes()
		testutil.RequireTruncationFails(t, data, func(b []byte) error {
			_, err := address.Decode(b)
			return err
		})
	})
}

func TestParseErrors(t *testing.T) {
	testDefs := []struct {
		name  string
		input string
	}{
		{name: "garbage", input: "not-an-address"},
		{name: "bad checksum", input: "tnam1qyvaqhs0vlfzlfhccxua89s8zmu7xq90xqsa9uub"},
		{name: "wrong prefix", input: "stake1qyvaqhs0vlfzlfhccxua89s8zmu7xq90xqsa9uua"},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			_, err := address.Parse(td.input)
			require.ErrorIs(t, err, address.ErrInvalidEncoding)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Established", address.KindEstablished.String())
	assert.Equal(t, "Kind(200)", address.Kind(200).String())
	assert.True(t, address.KindIbcToken.Hashed())
	assert.False(t, address.KindGovernance.Hashed())
}
