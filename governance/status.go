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

	"github.com/blinklabs-io/namgov/types"
)

// ProposalStatus is the lifecycle phase of a proposal relative to an epoch.
type ProposalStatus uint8

const (
	StatusPending ProposalStatus = iota
	StatusOnGoing
	StatusEnded
)

func (s ProposalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOnGoing:
		return "on-going"
	case StatusEnded:
		return "ended"
	default:
		return fmt.Sprintf("ProposalStatus(%d)", uint8(s))
	}
}

// StatusAt returns the status of a proposal with the given voting window at
// currentEpoch. Voting is open from votingStart up to but excluding
// votingEnd.
func StatusAt(
	currentEpoch, votingStart, votingEnd types.Epoch,
) ProposalStatus {
	switch {
	case currentEpoch < votingStart:
		return StatusPending
	case currentEpoch < votingEnd:
		return StatusOnGoing
	default:
		return StatusEnded
	}
}
