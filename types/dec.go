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
	"github.com/blinklabs-io/namgov/borsh"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// DecPrecision is the number of fractional decimal digits carried by Dec.
const DecPrecision = 12

// Dec is a signed fixed-point decimal stored as a 256-bit two's-complement
// integer scaled by 10^DecPrecision.
type Dec struct {
	v uint256.Int
}

// NewDecFromDecimal converts d to a Dec, truncating digits beyond
// DecPrecision.
func NewDecFromDecimal(d decimal.Decimal) Dec {
	var ret Dec
	scaled := d.Shift(DecPrecision).Truncate(0).BigInt()
	neg := scaled.Sign() < 0
	if neg {
		scaled.Neg(scaled)
	}
	ret.v.SetFromBig(scaled)
	if neg {
		ret.v.Neg(&ret.v)
	}
	return ret
}

func (d Dec) IsNegative() bool {
	return d.v[3]>>63 == 1
}

// Decimal returns the exact value as a decimal.Decimal.
func (d Dec) Decimal() decimal.Decimal {
	abs := d.v
	neg := d.IsNegative()
	if neg {
		abs.Neg(&abs)
	}
	ret := decimal.NewFromBigInt(abs.ToBig(), -DecPrecision)
	if neg {
		ret = ret.Neg()
	}
	return ret
}

// String renders the value with full precision and without trailing zeros.
func (d Dec) String() string {
	return d.Decimal().String()
}

func (d *Dec) DecodeBorsh(r *borsh.Reader) {
	d.v = readLimbs(r)
}

// ReadDec reads a Dec from r.
func ReadDec(r *borsh.Reader) Dec {
	var d Dec
	d.DecodeBorsh(r)
	return d
}
