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

package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFallback(t *testing.T) {
	testDefs := []struct {
		name     string
		addr     Address
		expected string
	}{
		{
			name:     "unknown kind",
			addr:     Address{kind: kindCount},
			expected: "Kind(16)(" + strings.Repeat("00", HashLen) + ")",
		},
		{
			name:     "payload on internal kind",
			addr:     Address{kind: KindPos, hash: [HashLen]byte{0xab}},
			expected: "PoS(ab" + strings.Repeat("00", HashLen-1) + ")",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := testDef.addr.Encode()
			require.Error(t, err)
			assert.NotPanics(t, func() {
				assert.Equal(t, testDef.expected, testDef.addr.String())
			})
		})
	}
}
