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

	"github.com/blinklabs-io/namgov/borsh"
	"github.com/blinklabs-io/namgov/types"
)

// TallyResult is the outcome of a proposal tally.
type TallyResult uint8

const (
	TallyPassed TallyResult = iota
	TallyRejected
	tallyResultCount
)

func (t TallyResult) String() string {
	switch t {
	case TallyPassed:
		return "Passed"
	case TallyRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("TallyResult(%d)", uint8(t))
	}
}

// TallyType is the threshold rule a proposal is tallied under.
type TallyType uint8

const (
	// TallyTwoThirds requires 2/3 of the voting power to vote yay.
	TallyTwoThirds TallyType = iota
	// TallyOneHalfOverOneThird requires a yay majority with a 1/3 turnout.
	TallyOneHalfOverOneThird
	// TallyLessOneHalfOverOneThirdNay passes unless nay is a majority with
	// a 1/3 turnout.
	TallyLessOneHalfOverOneThirdNay
	tallyTypeCount
)

func (t TallyType) String() string {
	switch t {
	case TallyTwoThirds:
		return "TwoThirds"
	case TallyOneHalfOverOneThird:
		return "OneHalfOverOneThird"
	case TallyLessOneHalfOverOneThirdNay:
		return "LessOneHalfOverOneThirdNay"
	default:
		return fmt.Sprintf("TallyType(%d)", uint8(t))
	}
}

// ProposalResult is the stored tally of a finished proposal.
type ProposalResult struct {
	Result            TallyResult
	TallyType         TallyType
	TotalVotingPower  types.Amount
	TotalYayPower     types.Amount
	TotalNayPower     types.Amount
	TotalAbstainPower types.Amount
}

func (p *ProposalResult) DecodeBorsh(r *borsh.Reader) {
	p.Result = TallyResult(r.ReadTag("TallyResult", uint8(tallyResultCount)))
	p.TallyType = TallyType(r.ReadTag("TallyType", uint8(tallyTypeCount)))
	p.TotalVotingPower = types.ReadAmount(r)
	p.TotalYayPower = types.ReadAmount(r)
	p.TotalNayPower = types.ReadAmount(r)
	p.TotalAbstainPower = types.ReadAmount(r)
}

// DecodeProposalResult decodes a buffer holding exactly one tally result.
func DecodeProposalResult(data []byte) (*ProposalResult, error) {
	p := &ProposalResult{}
	if err := borsh.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
