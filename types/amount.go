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

package types

import (
	"math/big"

	"github.com/blinklabs-io/namgov/borsh"
	"github.com/holiman/uint256"
)

// Amount is an unsigned 256-bit token amount. On the wire it is four
// little-endian u64 limbs, least significant first.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an Amount holding v.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// AmountFromBig returns an Amount holding v, and false if v does not fit
// in 256 bits or is negative.
func AmountFromBig(v *big.Int) (Amount, bool) {
	var a Amount
	if v.Sign() < 0 {
		return a, false
	}
	overflow := a.v.SetFromBig(v)
	return a, !overflow
}

// String renders the amount in base 10 without truncation.
func (a Amount) String() string {
	return a.v.Dec()
}

// Big returns the amount as a *big.Int.
func (a Amount) Big() *big.Int {
	return a.v.ToBig()
}

func (a *Amount) DecodeBorsh(r *borsh.Reader) {
	a.v = readLimbs(r)
}

// ReadAmount reads an Amount from r.
func ReadAmount(r *borsh.Reader) Amount {
	var a Amount
	a.DecodeBorsh(r)
	return a
}

func readLimbs(r *borsh.Reader) uint256.Int {
	var v uint256.Int
	for i := range v {
		v[i] = r.ReadU64()
	}
	if r.Err != nil {
		return uint256.Int{}
	}
	return v
}
