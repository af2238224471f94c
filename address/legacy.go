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

package address

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Legacy (era A) addresses are a network prefix from the lookup table
// followed by the hex encoding of the entity byte and payload. There is no
// checksum; the network is implied by the prefix

// EncodeLegacy renders the address in the legacy scheme. Entity types
// introduced after the legacy era have no representation and are rejected
func EncodeLegacy(a Address) (string, error) {
	if !a.Entity.HasLegacyForm() {
		return "", UnsupportedEntityTypeError{Entity: a.Entity}
	}
	network := NetworkByID(a.NetworkID)
	if network == NetworkInvalid {
		return "", InvalidFormatError{
			Detail: fmt.Sprintf("unknown network ID %d", a.NetworkID),
		}
	}
	return network.LegacyPrefix + hex.EncodeToString(a.Bytes()), nil
}

// DecodeLegacy parses a legacy address. The caller supplies the network it
// expects; if the prefix encodes a different network the result is a
// NetworkMismatchError rather than a format error
func DecodeLegacy(text string, networkID uint8) (Address, error) {
	network := legacyNetworkOf(text)
	if network == NetworkInvalid {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("unknown legacy network prefix in %q", text),
		}
	}
	if network.ID != networkID {
		return Address{}, NetworkMismatchError{Want: networkID, Got: network.ID}
	}
	data, err := hex.DecodeString(strings.TrimPrefix(text, network.LegacyPrefix))
	if err != nil {
		return Address{}, InvalidFormatError{Detail: err.Error()}
	}
	if len(data) != PayloadSize+1 {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("invalid legacy address length: %d", len(data)),
		}
	}
	entity := EntityType(data[0])
	if !entity.HasLegacyForm() {
		return Address{}, InvalidFormatError{
			Detail: fmt.Sprintf("entity byte 0x%02x did not exist in the legacy era", data[0]),
		}
	}
	addr := Address{NetworkID: network.ID, Entity: entity}
	copy(addr.Payload[:], data[1:])
	return addr, nil
}

func legacyNetworkOf(text string) Network {
	for _, network := range networks {
		if strings.HasPrefix(text, network.LegacyPrefix) {
			return network
		}
	}
	return NetworkInvalid
}
