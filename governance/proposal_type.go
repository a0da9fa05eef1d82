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
	"github.com/blinklabs-io/namgov/types"
)

// ProposalType is the closed set of proposal kinds. The unexported marker
// method keeps the set closed to this package.
type ProposalType interface {
	fmt.Stringer
	isProposalType()
}

// DefaultProposal is a plain proposal, optionally carrying the hash of the
// code to execute when it passes.
type DefaultProposal struct {
	Hash *types.Hash
}

// PGFStewardProposal adds or removes public goods funding stewards.
type PGFStewardProposal struct {
	Stewards []AddRemove[address.Address]
}

// PGFPaymentProposal changes the public goods funding payment schedule.
type PGFPaymentProposal struct {
	Actions []PGFAction
}

func (DefaultProposal) isProposalType()    {}
func (PGFStewardProposal) isProposalType() {}
func (PGFPaymentProposal) isProposalType() {}

func (DefaultProposal) String() string    { return "Default" }
func (PGFStewardProposal) String() string { return "Pgf steward" }
func (PGFPaymentProposal) String() string { return "Pgf funding" }

const (
	proposalTypeDefault uint8 = iota
	proposalTypePGFSteward
	proposalTypePGFPayment
	proposalTypeCount
)

// ReadProposalType reads a ProposalType union from r.
func ReadProposalType(r *borsh.Reader) ProposalType {
	switch r.ReadTag("ProposalType", proposalTypeCount) {
	case proposalTypeDefault:
		return DefaultProposal{Hash: borsh.ReadOptional(r, types.ReadHash)}
	case proposalTypePGFSteward:
		return PGFStewardProposal{
			Stewards: borsh.ReadSeq(r, readAddRemove(address.ReadAddress)),
		}
	case proposalTypePGFPayment:
		return PGFPaymentProposal{Actions: borsh.ReadSeq(r, ReadPGFAction)}
	}
	return nil
}

// AddRemoveOp selects whether an AddRemove adds or removes its value.
type AddRemoveOp uint8

const (
	Add AddRemoveOp = iota
	Remove
	addRemoveCount
)

func (op AddRemoveOp) String() string {
	switch op {
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	default:
		return fmt.Sprintf("AddRemoveOp(%d)", uint8(op))
	}
}

// AddRemove is the Add(T) / Remove(T) union. Both variants carry the same
// payload type, so it is represented as an op plus value.
type AddRemove[T any] struct {
	Op    AddRemoveOp
	Value T
}

func readAddRemove[T any](
	readValue func(*borsh.Reader) T,
) func(*borsh.Reader) AddRemove[T] {
	return func(r *borsh.Reader) AddRemove[T] {
		op := AddRemoveOp(r.ReadTag("AddRemove", uint8(addRemoveCount)))
		return AddRemove[T]{Op: op, Value: readValue(r)}
	}
}

// PGFAction is a single change to the funding schedule.
type PGFAction interface {
	isPGFAction()
}

// ContinuousAction adds or removes a recurring payment.
type ContinuousAction struct {
	AddRemove[PGFTarget]
}

// RetroAction is a one-off retroactive payment.
type RetroAction struct {
	Target PGFTarget
}

func (ContinuousAction) isPGFAction() {}
func (RetroAction) isPGFAction()      {}

const (
	pgfActionContinuous uint8 = iota
	pgfActionRetro
	pgfActionCount
)

// ReadPGFAction reads a PGFAction union from r.
func ReadPGFAction(r *borsh.Reader) PGFAction {
	switch r.ReadTag("PGFAction", pgfActionCount) {
	case pgfActionContinuous:
		return ContinuousAction{readAddRemove(ReadPGFTarget)(r)}
	case pgfActionRetro:
		return RetroAction{Target: ReadPGFTarget(r)}
	}
	return nil
}

// PGFTarget is the recipient of a funding payment.
type PGFTarget interface {
	// Target returns the recipient identifier in display form.
	Target() string
	// PaymentAmount returns the amount paid per epoch (continuous) or once
	// (retro).
	PaymentAmount() types.Amount
	isPGFTarget()
}

// PGFInternalTarget pays an on-chain address.
type PGFInternalTarget struct {
	Address address.Address
	Amount  types.Amount
}

// PGFIbcTarget pays a recipient on a counterparty chain over IBC.
type PGFIbcTarget struct {
	Recipient string
	Amount    types.Amount
	PortID    string
	ChannelID string
}

func (t PGFInternalTarget) Target() string              { return t.Address.String() }
func (t PGFInternalTarget) PaymentAmount() types.Amount { return t.Amount }
func (PGFInternalTarget) isPGFTarget()                  {}

func (t PGFIbcTarget) Target() string              { return t.Recipient }
func (t PGFIbcTarget) PaymentAmount() types.Amount { return t.Amount }
func (PGFIbcTarget) isPGFTarget()                  {}

const (
	pgfTargetInternal uint8 = iota
	pgfTargetIbc
	pgfTargetCount
)

// ReadPGFTarget reads a PGFTarget union from r.
func ReadPGFTarget(r *borsh.Reader) PGFTarget {
	switch r.ReadTag("PGFTarget", pgfTargetCount) {
	case pgfTargetInternal:
		return PGFInternalTarget{
			Address: address.ReadAddress(r),
			Amount:  types.ReadAmount(r),
		}
	case pgfTargetIbc:
		return PGFIbcTarget{
			Recipient: r.ReadString(),
			Amount:    types.ReadAmount(r),
			PortID:    r.ReadString(),
			ChannelID: r.ReadString(),
		}
	}
	return nil
}
