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

package namgov

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown record kind")

// RecordKind names one of the record types this package decodes.
type RecordKind string

const (
	KindProposal          RecordKind = "proposal"
	KindVotes             RecordKind = "votes"
	KindProposalResult    RecordKind = "proposal-result"
	KindCommissionPair    RecordKind = "commission-pair"
	KindAddress           RecordKind = "address"
	KindValidatorMetaData RecordKind = "validator-metadata"
	KindValidatorState    RecordKind = "validator-state"
	KindEpoch             RecordKind = "epoch"
)

type parseFunc func(data []byte, opts DecodeOptions) (string, error)

var recordKinds = []struct {
	kind  RecordKind
	parse parseFunc
}{
	{
		kind: KindProposal,
		parse: func(data []byte, opts DecodeOptions) (string, error) {
			return ProposalParse(data, opts.CurrentEpoch)
		},
	},
	{kind: KindVotes, parse: ignoreOpts(VotesParse)},
	{kind: KindProposalResult, parse: ignoreOpts(ProposalResultParse)},
	{kind: KindCommissionPair, parse: ignoreOpts(CommissionPairParse)},
	{kind: KindAddress, parse: ignoreOpts(AddressParse)},
	{kind: KindValidatorMetaData, parse: ignoreOpts(ValidatorMetaDataParse)},
	{kind: KindValidatorState, parse: ignoreOpts(ValidatorStateParse)},
	{kind: KindEpoch, parse: ignoreOpts(EpochParse)},
}

func ignoreOpts(fn func([]byte) (string, error)) parseFunc {
	return func(data []byte, _ DecodeOptions) (string, error) {
		return fn(data)
	}
}

// RecordKinds returns every supported kind in a fixed order.
func RecordKinds() []RecordKind {
	ret := make([]RecordKind, 0, len(recordKinds))
	for _, rk := range recordKinds {
		ret = append(ret, rk.kind)
	}
	return ret
}

// ParseRecordKind looks up a kind by name, case-insensitively.
func ParseRecordKind(name string) (RecordKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, rk := range recordKinds {
		if string(rk.kind) == name {
			return rk.kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// NeedsEpoch reports whether rendering the kind depends on the current
// epoch.
func (k RecordKind) NeedsEpoch() bool {
	return k == KindProposal
}

// PlainText reports whether the kind renders as bare text rather than JSON.
func (k RecordKind) PlainText() bool {
	return k == KindAddress
}

// DecodeOptions carries the per-call inputs that only some kinds use.
type DecodeOptions struct {
	// CurrentEpoch is the epoch proposal status is derived against.
	CurrentEpoch uint64
	// Optional strips an Option presence flag before decoding.
	Optional bool
}

// Decode dispatches data to the parser for kind.
func Decode(kind RecordKind, data []byte, opts DecodeOptions) (string, error) {
	for _, rk := range recordKinds {
		if rk.kind != kind {
			continue
		}
		if opts.Optional {
			inner, err := UnwrapOptional(data)
			if err != nil {
				return "", err
			}
			data = inner
		}
		return rk.parse(data, opts)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}
