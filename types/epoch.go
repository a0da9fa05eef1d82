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

// Package types holds the leaf value types shared by the governance and
// proof-of-stake records.
package types

import (
	"strconv"

	"github.com/blinklabs-io/namgov/borsh"
)

// Epoch is a discrete on-chain time period counter.
type Epoch uint64

func (e Epoch) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e *Epoch) DecodeBorsh(r *borsh.Reader) {
	*e = Epoch(r.ReadU64())
}

// ReadEpoch reads an Epoch from r.
func ReadEpoch(r *borsh.Reader) Epoch {
	var e Epoch
	e.DecodeBorsh(r)
	return e
}
