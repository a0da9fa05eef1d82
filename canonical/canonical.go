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

// Package canonical maps decoded domain values to their stable display
// form. Views are plain structs whose field order is the output key order;
// map-valued fields are emitted with sorted keys by encoding/json.
package canonical

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/namgov/address"
	"github.com/blinklabs-io/namgov/governance"
	"github.com/blinklabs-io/namgov/pos"
	"github.com/blinklabs-io/namgov/types"
)

// ErrUnknownVariant is returned for a union value outside the known set.
var ErrUnknownVariant = errors.New("unknown variant")

type ProposalView struct {
	ID               uint64            `json:"id"`
	ProposalType     string            `json:"proposal_type"`
	Author           string            `json:"author"`
	Content          map[string]string `json:"content"`
	VotingStartEpoch uint64            `json:"voting_start_epoch"`
	VotingEndEpoch   uint64            `json:"voting_end_epoch"`
	GraceEpoch       uint64            `json:"grace_epoch"`
	Status           string            `json:"status"`
	Data             string            `json:"data"`
}

// Proposal builds the view of p with its status at currentEpoch.
func Proposal(
	p *governance.Proposal,
	currentEpoch types.Epoch,
) (ProposalView, error) {
	data, err := FormatProposalData(p.Type)
	if err != nil {
		return ProposalView{}, err
	}
	content := p.Content
	if content == nil {
		content = map[string]string{}
	}
	return ProposalView{
		ID:               p.ID,
		ProposalType:     p.Type.String(),
		Author:           p.Author.String(),
		Content:          content,
		VotingStartEpoch: uint64(p.VotingStartEpoch),
		VotingEndEpoch:   uint64(p.VotingEndEpoch),
		GraceEpoch:       uint64(p.GraceEpoch),
		Status:           p.Status(currentEpoch).String(),
		Data:             data,
	}, nil
}

// FormatProposalData renders the payload of a proposal type:
// "Hash: <HEX>" or "" for default proposals, and a ", "-joined list of
// Add(..), Remove(..) and Retro(..) entries for funding proposals.
func FormatProposalData(pt governance.ProposalType) (string, error) {
	switch v := pt.(type) {
	case governance.DefaultProposal:
		if v.Hash == nil {
			return "", nil
		}
		return "Hash: " + v.Hash.String(), nil
	case governance.PGFStewardProposal:
		parts := make([]string, 0, len(v.Stewards))
		for _, s := range v.Stewards {
			part, err := formatAddRemove(s.Op, s.Value.String())
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", "), nil
	case governance.PGFPaymentProposal:
		parts := make([]string, 0, len(v.Actions))
		for _, action := range v.Actions {
			part, err := formatPGFAction(action)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", fmt.Errorf("%w: proposal type %T", ErrUnknownVariant, pt)
	}
}

func formatPGFAction(action governance.PGFAction) (string, error) {
	switch a := action.(type) {
	case governance.ContinuousAction:
		if a.Value == nil {
			return "", fmt.Errorf("%w: empty payment target", ErrUnknownVariant)
		}
		return formatAddRemove(a.Op, a.Value.Target())
	case governance.RetroAction:
		if a.Target == nil {
			return "", fmt.Errorf("%w: empty payment target", ErrUnknownVariant)
		}
		return "Retro(" + a.Target.Target() + ")", nil
	default:
		return "", fmt.Errorf("%w: pgf action %T", ErrUnknownVariant, action)
	}
}

func formatAddRemove(op governance.AddRemoveOp, value string) (string, error) {
	switch op {
	case governance.Add:
		return "Add(" + value + ")", nil
	case governance.Remove:
		return "Remove(" + value + ")", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownVariant, op)
	}
}

type VoteView struct {
	Data      string `json:"data"`
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
}

// Votes builds one view per vote, preserving input order. The result is
// never nil so an empty input renders as an empty array.
func Votes(votes []governance.Vote) []VoteView {
	ret := make([]VoteView, 0, len(votes))
	for _, v := range votes {
		ret = append(ret, VoteView{
			Data:      v.Data.String(),
			Delegator: v.Delegator.String(),
			Validator: v.Validator.String(),
		})
	}
	return ret
}

type ProposalResultView struct {
	Result            string `json:"result"`
	TallyType         string `json:"tally_type"`
	TotalAbstainPower string `json:"total_abstain_power"`
	TotalNayPower     string `json:"total_nay_power"`
	TotalVotingPower  string `json:"total_voting_power"`
	TotalYayPower     string `json:"total_yay_power"`
}

func ProposalResult(r *governance.ProposalResult) ProposalResultView {
	return ProposalResultView{
		Result:            r.Result.String(),
		TallyType:         r.TallyType.String(),
		TotalAbstainPower: r.TotalAbstainPower.String(),
		TotalNayPower:     r.TotalNayPower.String(),
		TotalVotingPower:  r.TotalVotingPower.String(),
		TotalYayPower:     r.TotalYayPower.String(),
	}
}

type CommissionPairView struct {
	CommissionRate              string `json:"commission_rate"`
	MaxCommissionChangePerEpoch string `json:"max_commission_change_per_epoch"`
}

func CommissionPair(c *pos.CommissionPair) CommissionPairView {
	return CommissionPairView{
		CommissionRate:              c.CommissionRate.String(),
		MaxCommissionChangePerEpoch: c.MaxCommissionChangePerEpoch.String(),
	}
}

// Address returns the canonical text form of a.
func Address(a address.Address) (string, error) {
	return a.Encode()
}

type ValidatorMetaDataView struct {
	Email         string  `json:"email"`
	Description   *string `json:"description"`
	Website       *string `json:"website"`
	DiscordHandle *string `json:"discord_handle"`
	Avatar        *string `json:"avatar"`
}

func ValidatorMetaData(m *pos.ValidatorMetaData) ValidatorMetaDataView {
	return ValidatorMetaDataView{
		Email:         m.Email,
		Description:   m.Description,
		Website:       m.Website,
		DiscordHandle: m.DiscordHandle,
		Avatar:        m.Avatar,
	}
}

// ValidatorState returns the variant name of s.
func ValidatorState(s pos.ValidatorState) string {
	return s.String()
}
