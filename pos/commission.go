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

// Package pos decodes proof-of-stake validator records: commission
// settings, public metadata and validator state.
package pos

import (
	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/types"
)

// CommissionPair is a validator's commission rate and the bound on how much
// it may change per epoch.
type CommissionPair struct {
	CommissionRate              types.Dec
	MaxCommissionChangePerEpoch types.Dec
}

func (c *CommissionPair) DecodeBorsh(r *borsh.Reader) {
	c.CommissionRate = types.ReadDec(r)
	c.MaxCommissionChangePerEpoch = types.ReadDec(r)
}

// DecodeCommissionPair decodes a buffer holding exactly one commission pair.
func DecodeCommissionPair(data []byte) (*CommissionPair, error) {
	c := &CommissionPair{}
	if err := borsh.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
