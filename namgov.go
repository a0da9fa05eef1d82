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

// Package namgov decodes Borsh-encoded governance and proof-of-stake
// records read from chain storage and renders them as stable JSON text.
//
// Every function is a pure function of its arguments and is safe for
// concurrent use.
package namgov

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/namgov/address"
	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/canonical"
	"github.com/blinklabs-io/namgov/governance"
	"github.com/blinklabs-io/namgov/pos"
	"github.com/blinklabs-io/namgov/types"
)

var (
	// ErrDecode wraps any failure to parse input bytes.
	ErrDecode = errors.New("decoding failed")
	// ErrSerialization wraps any failure to render a decoded value.
	ErrSerialization = errors.New("serialization failed")
	// ErrNotFound is returned by UnwrapOptional for an absent value.
	ErrNotFound = errors.New("value not present")
)

func decodeError(err error) error {
	return fmt.Errorf("%w: %w", ErrDecode, err)
}

func serializationError(err error) error {
	return fmt.Errorf("%w: %w", ErrSerialization, err)
}

// marshal renders v as compact JSON without HTML escaping or a trailing
// newline. U+2028 and U+2029 are written as literal characters.
func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", serializationError(err)
	}
	return rawLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// rawLineSeparators replaces the \u2028 and \u2029 escapes that
// encoding/json always emits with the runes themselves. Escape pairs are
// copied as a unit so an escaped backslash followed by "u2028" is kept.
func rawLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], `\u2028`):
			sb.WriteRune('\u2028')
			i += 5
		case strings.HasPrefix(s[i:], `\u2029`):
			sb.WriteRune('\u2029')
			i += 5
		default:
			sb.WriteByte(s[i])
			sb.WriteByte(s[i+1])
			i++
		}
	}
	return sb.String()
}

// ProposalParse decodes a stored proposal and renders it with its status
// at currentEpoch.
func ProposalParse(data []byte, currentEpoch uint64) (string, error) {
	p, err := governance.DecodeProposal(data)
	if err != nil {
		return "", decodeError(err)
	}
	view, err := canonical.Proposal(p, types.Epoch(currentEpoch))
	if err != nil {
		return "", serializationError(err)
	}
	return marshal(view)
}

// VotesParse decodes a vote sequence and renders it as a JSON array.
func VotesParse(data []byte) (string, error) {
	votes, err := governance.DecodeVotes(data)
	if err != nil {
		return "", decodeError(err)
	}
	return marshal(canonical.Votes(votes))
}

// ProposalResultParse decodes a stored tally result.
func ProposalResultParse(data []byte) (string, error) {
	res, err := governance.DecodeProposalResult(data)
	if err != nil {
		return "", decodeError(err)
	}
	return marshal(canonical.ProposalResult(res))
}

// CommissionPairParse decodes a validator commission pair.
func CommissionPairParse(data []byte) (string, error) {
	c, err := pos.DecodeCommissionPair(data)
	if err != nil {
		return "", decodeError(err)
	}
	return marshal(canonical.CommissionPair(c))
}

// AddressParse decodes a raw address and returns its bech32m text, not
// wrapped in JSON.
func AddressParse(data []byte) (string, error) {
	a, err := address.Decode(data)
	if err != nil {
		return "", decodeError(err)
	}
	s, err := canonical.Address(a)
	if err != nil {
		return "", serializationError(err)
	}
	return s, nil
}

// ValidatorMetaDataParse decodes a validator metadata record.
func ValidatorMetaDataParse(data []byte) (string, error) {
	m, err := pos.DecodeValidatorMetaData(data)
	if err != nil {
		return "", decodeError(err)
	}
	return marshal(canonical.ValidatorMetaData(m))
}

// ValidatorStateParse decodes a validator state and renders its name as a
// JSON string.
func ValidatorStateParse(data []byte) (string, error) {
	s, err := pos.DecodeValidatorState(data)
	if err != nil {
		return "", decodeError(err)
	}
	return marshal(canonical.ValidatorState(s))
}

// EpochParse decodes an epoch and renders it as a JSON number.
func EpochParse(data []byte) (string, error) {
	var e types.Epoch
	if err := borsh.Unmarshal(data, &e); err != nil {
		return "", decodeError(err)
	}
	return marshal(uint64(e))
}

// UnwrapOptional strips the presence flag from an Option-wrapped storage
// query response.
func UnwrapOptional(data []byte) ([]byte, error) {
	r := borsh.NewReader(data)
	present := r.ReadOption()
	if r.Err != nil {
		return nil, decodeError(r.Err)
	}
	if !present {
		if r.Remaining() > 0 {
			return nil, decodeError(r.Finish())
		}
		return nil, ErrNotFound
	}
	return data[r.Offset():], nil
}
