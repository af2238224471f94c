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

package golumen

import (
	"encoding/json"

	"github.com/lumenlabs-io/golumen/manifest"
)

// Request and response payloads are flat and self-describing so they can
// cross a foreign-language boundary unchanged. Values travel as kind-tagged
// JSON documents, binary payloads as lowercase hex strings

type SborEncodeRequest struct {
	Value json.RawMessage `json:"value"`
}

type SborEncodeResponse struct {
	EncodedHex string `json:"encodedHex"`
}

type SborDecodeRequest struct {
	EncodedHex string `json:"encodedHex"`
}

type SborDecodeResponse struct {
	Value json.RawMessage `json:"value"`
}

type JSONEncodeRequest struct {
	EncodedHex string `json:"encodedHex"`
}

type JSONEncodeResponse struct {
	Value json.RawMessage `json:"value"`
}

type JSONDecodeRequest struct {
	Value json.RawMessage `json:"value"`
}

type JSONDecodeResponse struct {
	EncodedHex string `json:"encodedHex"`
}

// TranslateDirection selects the target era of an address translation
type TranslateDirection string

const (
	DirectionToLegacy  TranslateDirection = "ToLegacy"
	DirectionToCurrent TranslateDirection = "ToCurrent"
)

type TranslateAddressRequest struct {
	Address   string             `json:"address"`
	Direction TranslateDirection `json:"direction"`
	// NetworkID is required when translating from the legacy era, which
	// does not carry an explicit network id in its text form
	NetworkID *uint8 `json:"networkId,omitempty"`
}

type TranslateAddressResponse struct {
	Address    string `json:"address"`
	NetworkID  uint8  `json:"networkId"`
	EntityType string `json:"entityType"`
}

type ParseManifestRequest struct {
	Manifest string `json:"manifest"`
}

type ParseManifestResponse struct {
	Instructions []manifest.Instruction `json:"instructions"`
}

type SerializeManifestRequest struct {
	Instructions []manifest.Instruction `json:"instructions"`
}

type SerializeManifestResponse struct {
	Manifest string `json:"manifest"`
}

type DeriveVirtualAccountRequest struct {
	PublicKeyHex string `json:"publicKeyHex"`
	NetworkID    uint8  `json:"networkId"`
}

type DeriveVirtualAccountResponse struct {
	Address string `json:"address"`
}

type DeriveVirtualIdentityRequest struct {
	PublicKeyHex string `json:"publicKeyHex"`
	NetworkID    uint8  `json:"networkId"`
}

type DeriveVirtualIdentityResponse struct {
	Address string `json:"address"`
}
