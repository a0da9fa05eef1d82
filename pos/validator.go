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

package pos

import (
	"fmt"

	"github.com/blinklabs-io/namgov/borsh"
)

// ValidatorMetaData is the self-declared public profile of a validator.
type ValidatorMetaData struct {
	Email         string
	Description   *string
	Website       *string
	DiscordHandle *string
	Avatar        *string
}

func readString(r *borsh.Reader) string {
	return r.ReadString()
}

func (m *ValidatorMetaData) DecodeBorsh(r *borsh.Reader) {
	m.Email = r.ReadString()
	m.Description = borsh.ReadOptional(r, readString)
	m.Website = borsh.ReadOptional(r, readString)
	m.DiscordHandle = borsh.ReadOptional(r, readString)
	m.Avatar = borsh.ReadOptional(r, readString)
}

// DecodeValidatorMetaData decodes a buffer holding exactly one metadata
// record.
func DecodeValidatorMetaData(data []byte) (*ValidatorMetaData, error) {
	m := &ValidatorMetaData{}
	if err := borsh.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ValidatorState is a validator's position in the validator set.
type ValidatorState uint8

const (
	StateConsensus ValidatorState = iota
	StateBelowCapacity
	StateBelowThreshold
	StateInactive
	StateJailed
	stateCount
)

func (s ValidatorState) String() string {
	switch s {
	case StateConsensus:
		return "Consensus"
	case StateBelowCapacity:
		return "BelowCapacity"
	case StateBelowThreshold:
		return "BelowThreshold"
	case StateInactive:
		return "Inactive"
	case StateJailed:
		return "Jailed"
	default:
		return fmt.Sprintf("ValidatorState(%d)", uint8(s))
	}
}

func (s *ValidatorState) DecodeBorsh(r *borsh.Reader) {
	*s = ValidatorState(r.ReadTag("ValidatorState", uint8(stateCount)))
}

// DecodeValidatorState decodes a buffer holding exactly one validator state.
func DecodeValidatorState(data []byte) (ValidatorState, error) {
	var s ValidatorState
	if err := borsh.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	return s, nil
}
