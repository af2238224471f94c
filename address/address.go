// Copyright 2025 Lumen Labs Software
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

// Package address models ledger addresses and translates them between the
// legacy flat-hex scheme (era A) and the current bech32m-checksummed scheme
// (era B)
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// PayloadSize is the fixed size of the hash payload carried by every address
const PayloadSize = 26

// EntityType discriminates what kind of ledger entity an address refers to
type EntityType uint8

const (
	EntityResource         EntityType = 0x01
	EntityPackage          EntityType = 0x02
	EntityAccountComponent EntityType = 0x03
	EntityGenericComponent EntityType = 0x04
	// Entity types below were introduced after the legacy era and have no
	// era-A representation
	EntityIdentity         EntityType = 0x05
	EntityValidator        EntityType = 0x06
	EntityAccessController EntityType = 0x07
	EntityPool             EntityType = 0x08
)

var entityNames = map[EntityType]string{
	EntityResource:         "Resource",
	EntityPackage:          "Package",
	EntityAccountComponent: "AccountComponent",
	EntityGenericComponent: "GenericComponent",
	EntityIdentity:         "Identity",
	EntityValidator:        "Validator",
	EntityAccessController: "AccessController",
	EntityPool:             "Pool",
}

// Human-readable prefixes for the current-era scheme, per entity type. The
// full HRP is the entity prefix joined with the network's HRP suffix
var entityHRPPrefixes = map[EntityType]string{
	EntityResource:         "resource_",
	EntityPackage:          "package_",
	EntityAccountComponent: "account_",
	EntityGenericComponent: "component_",
	EntityIdentity:         "identity_",
	EntityValidator:        "validator_",
	EntityAccessController: "accesscontroller_",
	EntityPool:             "pool_",
}

func (e EntityType) String() string {
	if name, ok := entityNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(e))
}

// IsComponent reports whether addresses of this entity type appear as
// component addresses in the value model
func (e EntityType) IsComponent() bool {
	switch e {
	case EntityAccountComponent, EntityGenericComponent, EntityIdentity,
		EntityValidator, EntityAccessController, EntityPool:
		return true
	}
	return false
}

// HasLegacyForm reports whether the entity type existed in the legacy
// address era
func (e EntityType) HasLegacyForm() bool {
	switch e {
	case EntityResource, EntityPackage, EntityAccountComponent,
		EntityGenericComponent:
		return true
	}
	return false
}

// Address is a fixed-size hash payload plus an entity-type discriminant and
// a network identifier. The zero value is not a valid address
type Address struct {
	NetworkID uint8
	Entity    EntityType
	Payload   [PayloadSize]byte
}

// NewAddress builds an Address from its parts, validating the entity type
// and network
func NewAddress(entity EntityType, networkID uint8, payload []byte) (Address, error) {
	if _, ok := entityHRPPrefixes[entity]; !ok {
		return Address{}, UnsupportedEntityTypeError{Entity: entity}
	}
	if NetworkByID(networkID) == NetworkInvalid {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("unknown network ID %d", networkID),
		}
	}
	if len(payload) != PayloadSize {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("invalid payload length: %d", len(payload)),
		}
	}
	addr := Address{NetworkID: networkID, Entity: entity}
	copy(addr.Payload[:], payload)
	return addr, nil
}

// Bytes returns the entity discriminant followed by the payload, which is
// the data part carried inside both textual encodings
func (a Address) Bytes() []byte {
	ret := make([]byte, 0, PayloadSize+1)
	ret = append(ret, byte(a.Entity))
	ret = append(ret, a.Payload[:]...)
	return ret
}

// EncodeCurrent renders the address in the current-era bech32m scheme. The
// human-readable prefix is derived deterministically from the entity type
// and network
func EncodeCurrent(a Address) (string, error) {
	prefix, ok := entityHRPPrefixes[a.Entity]
	if !ok {
		return "", UnsupportedEntityTypeError{Entity: a.Entity}
	}
	network := NetworkByID(a.NetworkID)
	if network == NetworkInvalid {
		return "", InvalidFormatError{
			Detail: fmt.Sprintf("unknown network ID %d", a.NetworkID),
		}
	}
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		return "", InvalidFormatError{Detail: err.Error()}
	}
	encoded, err := bech32.EncodeM(prefix+network.HRPSuffix, convData)
	if err != nil {
		return "", InvalidFormatError{Detail: err.Error()}
	}
	return encoded, nil
}

// DecodeCurrent parses a current-era bech32m address. Checksum failures are
// reported as ChecksumError, distinct from structural problems, so callers
// can distinguish corruption from malformed input
func DecodeCurrent(text string) (Address, error) {
	hrp, data, version, err := bech32.DecodeGeneric(text)
	if err != nil {
		var chkErr bech32.ErrInvalidChecksum
		if errors.As(err, &chkErr) {
			return Address{}, ChecksumError{Detail: err.Error()}
		}
		return Address{}, InvalidFormatError{Detail: err.Error()}
	}
	if version != bech32.VersionM {
		return Address{}, ChecksumError{
			Detail: "checksum uses the bech32 constant, expected bech32m",
		}
	}
	entity, network, err := splitHRP(hrp)
	if err != nil {
		return Address{}, err
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, InvalidFormatError{Detail: err.Error()}
	}
	if len(decoded) != PayloadSize+1 {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("invalid address length: %d", len(decoded)),
		}
	}
	if EntityType(decoded[0]) != entity {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf(
				"entity byte 0x%02x disagrees with prefix %q",
				decoded[0],
				hrp,
			),
		}
	}
	addr := Address{NetworkID: network.ID, Entity: entity}
	copy(addr.Payload[:], decoded[1:])
	return addr, nil
}

func splitHRP(hrp string) (EntityType, Network, error) {
	for entity, prefix := range entityHRPPrefixes {
		if !strings.HasPrefix(hrp, prefix) {
			continue
		}
		network := NetworkByHRPSuffix(strings.TrimPrefix(hrp, prefix))
		if network == NetworkInvalid {
			return 0, NetworkInvalid, InvalidFormatError{
				Detail: fmt.Sprintf("unknown network suffix in prefix %q", hrp),
			}
		}
		return entity, network, nil
	}
	return 0, NetworkInvalid, InvalidFormatError{
		Detail: fmt.Sprintf("unknown entity prefix in %q", hrp),
	}
}

// String returns the current-era encoding, or a hex-ish fallback for
// addresses that cannot be encoded. Use EncodeCurrent when the error matters
func (a Address) String() string {
	encoded, err := EncodeCurrent(a)
	if err != nil {
		return fmt.Sprintf("invalid-address(%x)", a.Bytes())
	}
	return encoded
}

func (a Address) MarshalJSON() ([]byte, error) {
	encoded, err := EncodeCurrent(a)
	if err != nil {
		return nil, err
	}
	return []byte(`"` + encoded + `"`), nil
}
