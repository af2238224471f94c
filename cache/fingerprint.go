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

package cache

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

var fingerprintMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("unexpected error building canonical CBOR mode: %s", err))
	}
	return em
}()

// Fingerprint derives the cache key for a derivation kind and its input. The
// input is serialized with canonical CBOR so that structurally equal inputs
// always map to the same key, then hashed with BLAKE2b-256
func Fingerprint(kind string, input any) (Key, error) {
	data, err := fingerprintMode.Marshal(input)
	if err != nil {
		return Key{}, fmt.Errorf("fingerprint input: %w", err)
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return Key{}, err
	}
	h.Write([]byte(kind))
	h.Write([]byte{0x00})
	h.Write(data)
	var key Key
	copy(key[:], h.Sum(nil))
	return key, nil
}
