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

package pos_test

import (
	"testing"

	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/internal/test/testutil"
	"github.com/blinklabs-io/namgov/pos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commissionBytes() []byte {
	return testutil.NewBuilder().
		// 0.05
		U256(50_000_000_000).
		// 0.01
		U256(10_000_000_000).
		Bytes()
}

func TestDecodeCommissionPair(t *testing.T) {
	c, err := pos.DecodeCommissionPair(commissionBytes())
	require.NoError(t, err)
	assert.Equal(t, "0.05", c.CommissionRate.String())
	assert.Equal(t, "0.01", c.MaxCommissionChangePerEpoch.String())
}

func TestDecodeCommissionPairErrors(t *testing.T) {
	testutil.RequireTruncationFails(t, commissionBytes(), func(b []byte) error {
		_, err := pos.DecodeCommissionPair(b)
		return err
	})
	_, err := pos.DecodeCommissionPair(append(commissionBytes(), 1))
	require.ErrorIs(t, err, borsh.ErrTrailingBytes)
}

func TestDecodeValidatorMetaData(t *testing.T) {
	data := testutil.NewBuilder().
		String("ops@example.com").
		Some().String("Reliable validator").
		None().
		Some().String("ops#1234").
		None().
		Bytes()
	m, err := pos.DecodeValidatorMetaData(data)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", m.Email)
	require.NotNil(t, m.Description)
	assert.Equal(t, "Reliable validator", *m.Description)
	assert.Nil(t, m.Website)
	require.NotNil(t, m.DiscordHandle)
	assert.Equal(t, "ops#1234", *m.DiscordHandle)
	assert.Nil(t, m.Avatar)

	testutil.RequireTruncationFails(t, data, func(b []byte) error {
		_, err := pos.DecodeValidatorMetaData(b)
		return err
	})
}

func TestDecodeValidatorState(t *testing.T) {
	testDefs := []struct {
		tag      uint8
		expected string
	}{
		{tag: 0, expected: "Consensus"},
		{tag: 1, expected: "BelowCapacity"},
		{tag: 2, expected: "BelowThreshold"},
		{tag: 3, expected: "Inactive"},
		{tag: 4, expected: "Jailed"},
	}
	for _, td := range testDefs {
		t.Run(td.expected, func(t *testing.T) {
			s, err := pos.DecodeValidatorState([]byte{td.tag})
			require.NoError(t, err)
			assert.Equal(t, td.expected, s.String())
		})
	}

	_, err := pos.DecodeValidatorState([]byte{5})
	require.ErrorIs(t, err, borsh.ErrInvalidTag)
	_, err = pos.DecodeValidatorState(nil)
	require.ErrorIs(t, err, borsh.ErrUnexpectedEOF)
}
