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
	"encoding/hex"
	"strings"

	"github.com/blinklabs-io/namgov/borsh"
)

const HashSize = 32

// Hash is a fixed-length SHA-256 digest.
type Hash [HashSize]byte

// String renders the digest as upper-case hex.
func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

func (h *Hash) DecodeBorsh(r *borsh.Reader) {
	r.ReadFixed(h[:])
}

// ReadHash reads a Hash from r.
func ReadHash(r *borsh.Reader) Hash {
	var h Hash
	h.DecodeBorsh(r)
	return h
}
