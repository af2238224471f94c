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
	"bytes"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"
)

const (
	ed25519PublicKeyLen   = 32
	secp256k1PublicKeyLen = 33
)

// DeriveVirtualAccount returns the virtual account component address for a
// public key on the given network. The payload is the leading bytes of the
// BLAKE2b-256 hash of the raw key. Both Ed25519 (32-byte) and compressed
// secp256k1 (33-byte) keys are accepted and validated before hashing
func DeriveVirtualAccount(publicKey []byte, networkID uint8) (Address, error) {
	return deriveVirtual(publicKey, networkID, EntityAccountComponent)
}

// DeriveVirtualIdentity returns the virtual identity component address for a
// public key on the given network
func DeriveVirtualIdentity(publicKey []byte, networkID uint8) (Address, error) {
	return deriveVirtual(publicKey, networkID, EntityIdentity)
}

func deriveVirtual(publicKey []byte, networkID uint8, entity EntityType) (Address, error) {
	if err := ValidatePublicKey(publicKey); err != nil {
		return Address{}, err
	}
	hash := blake2b.Sum256(publicKey)
	return NewAddress(entity, networkID, hash[:PayloadSize])
}

// ValidatePublicKey checks that the bytes are a well-formed public key:
// a canonically encoded point on the Ed25519 curve for 32-byte keys, or a
// parseable compressed secp256k1 key for 33-byte keys. Non-canonical
// Ed25519 encodings are rejected so that every key has exactly one
// derived address
func ValidatePublicKey(publicKey []byte) error {
	switch len(publicKey) {
	case ed25519PublicKeyLen:
		point, err := new(edwards25519.Point).SetBytes(publicKey)
		if err != nil {
			return InvalidFormatError{
				Detail: fmt.Sprintf("invalid Ed25519 public key: %s", err),
			}
		}
		if !bytes.Equal(point.Bytes(), publicKey) {
			return InvalidFormatError{
				Detail: "non-canonical Ed25519 public key encoding",
			}
		}
	case secp256k1PublicKeyLen:
		if _, err := secp256k1.ParsePubKey(publicKey); err != nil {
			return InvalidFormatError{
				Detail: fmt.Sprintf("invalid secp256k1 public key: %s", err),
			}
		}
	default:
		return InvalidFormatError{
			Detail: fmt.Sprintf("invalid public key length: %d", len(publicKey)),
		}
	}
	return nil
}
