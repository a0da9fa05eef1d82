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

// Package governance models the on-chain governance records (proposals,
// votes and tally results) and decodes them from their Borsh storage form.
package governance

import (
	"github.com/blinklabs-io/namgov/address"
	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/types"
)

// Proposal is a stored governance proposal.
//
// The producer guarantees VotingStartEpoch <= VotingEndEpoch <= GraceEpoch.
// Decoding does not re-check it; status derivation copes with any ordering.
type Proposal struct {
	ID               uint64
	Content          map[string]string
	Author           address.Address
	Type             ProposalType
	VotingStartEpoch types.Epoch
	VotingEndEpoch   types.Epoch
	GraceEpoch       types.Epoch
}

func (p *Proposal) DecodeBorsh(r *borsh.Reader) {
	p.ID = r.ReadU64()
	p.Content = r.ReadStringMap()
	p.Author = address.ReadAddress(r)
	p.Type = ReadProposalType(r)
	p.VotingStartEpoch = types.ReadEpoch(r)
	p.VotingEndEpoch = types.ReadEpoch(r)
	p.GraceEpoch = types.ReadEpoch(r)
}

// Status derives the lifecycle status at currentEpoch.
func (p *Proposal) Status(currentEpoch types.Epoch) ProposalStatus {
	return StatusAt(
		currentEpoch,
		p.VotingStartEpoch,
		p.VotingEndEpoch,
	)
}

// DecodeProposal decodes a buffer holding exactly one stored proposal.
func DecodeProposal(data []byte) (*Proposal, error) {
	p := &Proposal{}
	if err := borsh.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
