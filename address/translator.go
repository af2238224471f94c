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
	"github.com/lumenlabs-io/golumen/cache"
)

// Translator performs era translation with a memoization layer in front of
// the bech32m and lookup work. Address translation is pure and tends to be
// called repeatedly for the same small set of well-known addresses, so the
// cache hit rate is high. A nil store disables memoization without changing
// any result
type Translator struct {
	store *cache.Store
}

// NewTranslator returns a Translator backed by the given store. Passing nil
// yields an uncached translator with identical outputs
func NewTranslator(store *cache.Store) *Translator {
	return &Translator{store: store}
}

// Cache derivation kinds. Each translation direction gets its own keyspace
const (
	derivationToCurrent   = "address/to-current"
	derivationFromCurrent = "address/from-current"
	derivationToLegacy    = "address/to-legacy"
	derivationFromLegacy  = "address/from-legacy"
)

// ToCurrent renders the address in the current-era bech32m scheme
func (t *Translator) ToCurrent(a Address) (string, error) {
	return cache.Memoize(t.store, derivationToCurrent, a.rawKey(), func() (string, error) {
		return EncodeCurrent(a)
	})
}

// FromCurrent parses a current-era address
func (t *Translator) FromCurrent(text string) (Address, error) {
	return cache.Memoize(t.store, derivationFromCurrent, text, func() (Address, error) {
		return DecodeCurrent(text)
	})
}

// ToLegacy renders the address in the legacy scheme
func (t *Translator) ToLegacy(a Address) (string, error) {
	return cache.Memoize(t.store, derivationToLegacy, a.rawKey(), func() (string, error) {
		return EncodeLegacy(a)
	})
}

// FromLegacy parses a legacy address, verifying it against the caller's
// network
func (t *Translator) FromLegacy(text string, networkID uint8) (Address, error) {
	input := struct {
		Text      string `cbor:"1,keyasint"`
		NetworkID uint8  `cbor:"2,keyasint"`
	}{Text: text, NetworkID: networkID}
	return cache.Memoize(t.store, derivationFromLegacy, input, func() (Address, error) {
		return DecodeLegacy(text, networkID)
	})
}

// rawKey is the canonical fingerprint input for an address: network byte,
// entity byte, payload
func (a Address) rawKey() []byte {
	ret := make([]byte, 0, PayloadSize+2)
	ret = append(ret, a.NetworkID, byte(a.Entity))
	ret = append(ret, a.Payload[:]...)
	return ret
}
