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

package governance

import (
	"fmt"

	"github.com/blinklabs-io/namgov/address"
	"github.com/blinklabs-io/namgov/borsh"
)

// ProposalVote is a single ballot choice.
type ProposalVote uint8

const (
	VoteYay ProposalVote = iota
	VoteNay
	VoteAbstain
	voteCount
)

func (v ProposalVote) String() string {
	switch v {
	case VoteYay:
		return "Yay"
	case VoteNay:
		return "Nay"
	case VoteAbstain:
		return "Abstain"
	default:
		return fmt.Sprintf("ProposalVote(%d)", uint8(v))
	}
}

func (v *ProposalVote) DecodeBorsh(r *borsh.Reader) {
	*v = ProposalVote(r.ReadTag("ProposalVote", uint8(voteCount)))
}

// Vote is a ballot cast by a delegator through a validator.
type Vote struct {
	Validator address.Address
	Delegator address.Address
	Data      ProposalVote
}

func (v *Vote) DecodeBorsh(r *borsh.Reader) {
	v.Validator = address.ReadAddress(r)
	v.Delegator = address.ReadAddress(r)
	v.Data.DecodeBorsh(r)
}

func readVote(r *borsh.Reader) Vote {
	var v Vote
	v.DecodeBorsh(r)
	return v
}

// Votes is the ordered vote list stored for a proposal.
type Votes []Vote

func (v *Votes) DecodeBorsh(r *borsh.Reader) {
	*v = borsh.ReadSeq(r, readVote)
}

// DecodeVotes decodes a buffer holding exactly one vote sequence. An empty
// sequence yields an empty, non-nil slice.
func DecodeVotes(data []byte) ([]Vote, error) {
	var votes Votes
	if err := borsh.Unmarshal(data, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}
