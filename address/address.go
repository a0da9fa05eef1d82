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

// Package address implements the on-chain account address: a one-byte kind
// discriminant followed by a 20-byte payload, rendered as bech32m text.
package address

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/namgov/borsh"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// HRP is the human-readable part of the bech32m text form.
	HRP = "tnam"
	// HashLen is the payload size carried by hashed address kinds.
	HashLen = 20
	// RawLen is the size of the raw wire encoding.
	RawLen = 1 + HashLen
)

var (
	ErrUnknownKind     = errors.New("unknown address kind")
	ErrInvalidPayload  = errors.New("non-zero payload for internal address")
	ErrInvalidEncoding = errors.New("invalid address encoding")
)

// Kind is the address discriminant byte.
type Kind uint8

const (
	KindImplicit Kind = iota
	KindEstablished
	KindPos
	KindSlashPool
	KindParameters
	KindGovernance
	KindIbc
	KindEthBridge
	KindBridgePool
	KindMultitoken
	KindPgf
	KindErc20
	KindNut
	KindIbcToken
	KindMasp
	KindReplayProtection
	kindCount
)

var kindNames = [...]string{
	KindImplicit:         "Implicit",
	KindEstablished:      "Established",
	KindPos:              "PoS",
	KindSlashPool:        "PosSlashPool",
	KindParameters:       "Parameters",
	KindGovernance:       "Governance",
	KindIbc:              "IBC",
	KindEthBridge:        "EthBridge",
	KindBridgePool:       "EthBridgePool",
	KindMultitoken:       "Multitoken",
	KindPgf:              "PublicGoodFundings",
	KindErc20:            "Erc20",
	KindNut:              "Nut",
	KindIbcToken:         "IbcToken",
	KindMasp:             "MASP",
	KindReplayProtection: "ReplayProtection",
}

func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Hashed reports whether addresses of this kind carry a hash payload.
// All other kinds are singletons with an all-zero payload.
func (k Kind) Hashed() bool {
	switch k {
	case KindImplicit, KindEstablished, KindErc20, KindNut, KindIbcToken:
		return true
	default:
		return false
	}
}

// Address is an immutable, comparable on-chain address.
type Address struct {
	kind Kind
	hash [HashLen]byte
}

// New builds an Address, enforcing the payload rules for kind.
func New(kind Kind, hash [HashLen]byte) (Address, error) {
	if err := validate(kind, hash); err != nil {
		return Address{}, err
	}
	return Address{kind: kind, hash: hash}, nil
}

// Internal returns the singleton address for a hashless kind.
func Internal(kind Kind) (Address, error) {
	return New(kind, [HashLen]byte{})
}

func validate(kind Kind, hash [HashLen]byte) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	if !kind.Hashed() && hash != [HashLen]byte{} {
		return fmt.Errorf("%w: %s", ErrInvalidPayload, kind)
	}
	return nil
}

func (a Address) Kind() Kind {
	return a.kind
}

func (a Address) Hash() [HashLen]byte {
	return a.hash
}

// Bytes returns the raw 21-byte encoding.
func (a Address) Bytes() [RawLen]byte {
	var ret [RawLen]byte
	ret[0] = byte(a.kind)
	copy(ret[1:], a.hash[:])
	return ret
}

// Encode returns the bech32m text form.
func (a Address) Encode() (string, error) {
	if err := validate(a.kind, a.hash); err != nil {
		return "", err
	}
	raw := a.Bytes()
	conv, err := bech32.ConvertBits(raw[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert bits: %w", err)
	}
	encoded, err := bech32.EncodeM(HRP, conv)
	if err != nil {
		return "", fmt.Errorf("failed to encode bech32m: %w", err)
	}
	return encoded, nil
}

// String returns the bech32m text form, or the kind and hex payload when
// the address cannot be encoded.
func (a Address) String() string {
	s, err := a.Encode()
	if err != nil {
		return fmt.Sprintf("%s(%x)", a.kind, a.hash[:])
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	s, err := a.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// DecodeBorsh reads the fixed 21-byte raw form.
func (a *Address) DecodeBorsh(r *borsh.Reader) {
	var raw [RawLen]byte
	r.ReadFixed(raw[:])
	if r.Err != nil {
		return
	}
	parsed, err := fromRaw(raw[:])
	if err != nil {
		r.Fail(fmt.Errorf("%w: %w", borsh.ErrInvalidValue, err))
		return
	}
	*a = parsed
}

// ReadAddress reads an Address from r.
func ReadAddress(r *borsh.Reader) Address {
	var a Address
	a.DecodeBorsh(r)
	return a
}

// Decode parses a buffer holding exactly one raw address.
func Decode(data []byte) (Address, error) {
	var a Address
	if err := borsh.Unmarshal(data, &a); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Parse parses the bech32m text form.
func Parse(s string) (Address, error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	if hrp != HRP {
		return Address{}, fmt.Errorf(
			"%w: unexpected prefix %q",
			ErrInvalidEncoding,
			hrp,
		)
	}
	if version != bech32.VersionM {
		return Address{}, fmt.Errorf(
			"%w: not bech32m",
			ErrInvalidEncoding,
		)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return fromRaw(raw)
}

func fromRaw(raw []byte) (Address, error) {
	if len(raw) != RawLen {
		return Address{}, fmt.Errorf(
			"%w: got %d bytes, expected %d",
			ErrInvalidEncoding,
			len(raw),
			RawLen,
		)
	}
	var hash [HashLen]byte
	copy(hash[:], raw[1:])
	return New(Kind(raw[0]), hash)
}
