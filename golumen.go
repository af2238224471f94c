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

// Package golumen is the request façade of the Lumen value-encoding and
// manifest toolkit. It dispatches flat request payloads to the binary and
// JSON codecs, the address translator and the manifest translator, sharing
// one derivation cache across all of them, and shapes every failure into a
// structured boundary error
package golumen

import (
	"encoding/hex"
	"log/slog"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/cache"
	"github.com/lumenlabs-io/golumen/manifest"
	"github.com/lumenlabs-io/golumen/sbor"
	"github.com/lumenlabs-io/golumen/value"
)

// DefaultMaxInputSize bounds request payloads. Operations are pure and
// terminate quickly on bounded input, so this is the only resource limit
// the façade enforces beyond the value depth limit
const DefaultMaxInputSize = 1 << 20

// Toolkit is the single entry surface consumed by foreign-language
// bindings. It is safe for concurrent use: the only shared mutable state is
// the derivation cache, which is concurrency-safe and correctness-neutral
type Toolkit struct {
	logger       *slog.Logger
	store        *cache.Store
	translator   *address.Translator
	cacheSize    int
	maxInputSize int
}

// New returns a Toolkit with an empty derivation cache
func New(options ...ToolkitOptionFunc) *Toolkit {
	t := &Toolkit{
		maxInputSize: DefaultMaxInputSize,
	}
	for _, option := range options {
		option(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.store == nil {
		t.store = cache.New(t.cacheSize)
	}
	t.translator = address.NewTranslator(t.store)
	return t
}

func (t *Toolkit) checkInputSize(size int) error {
	if size > t.maxInputSize {
		return newError(
			ErrInputTooLarge,
			"input of %d bytes exceeds limit of %d",
			size,
			t.maxInputSize,
		)
	}
	return nil
}

// decodeValueJSON parses a kind-tagged JSON document, routing address
// literals through the cached translator
func (t *Toolkit) decodeValueJSON(data []byte) (value.Value, error) {
	return value.Unmarshal(
		data,
		value.WithAddressDecoder(t.translator.FromCurrent),
	)
}

// SborEncode encodes a kind-tagged JSON value document into the canonical
// binary form
func (t *Toolkit) SborEncode(
	req SborEncodeRequest,
) (*SborEncodeResponse, *Error) {
	if err := t.checkInputSize(len(req.Value)); err != nil {
		return nil, shapeError(err)
	}
	v, err := t.decodeValueJSON(req.Value)
	if err != nil {
		return nil, shapeError(err)
	}
	encoded, err := sbor.Encode(v)
	if err != nil {
		return nil, shapeError(err)
	}
	t.logger.Debug(
		"encoded value to binary",
		"kind", v.Kind().String(),
		"bytes", len(encoded),
	)
	return &SborEncodeResponse{
		EncodedHex: hex.EncodeToString(encoded),
	}, nil
}

// SborDecode decodes canonical binary bytes into a kind-tagged JSON value
// document
func (t *Toolkit) SborDecode(
	req SborDecodeRequest,
) (*SborDecodeResponse, *Error) {
	if err := t.checkInputSize(len(req.EncodedHex)); err != nil {
		return nil, shapeError(err)
	}
	raw, err := hex.DecodeString(req.EncodedHex)
	if err != nil {
		return nil, newError(ErrInvalidRequest, "payload is not hex: %s", err)
	}
	v, err := sbor.Decode(raw)
	if err != nil {
		return nil, shapeError(err)
	}
	encoded, err := value.Marshal(v)
	if err != nil {
		return nil, shapeError(err)
	}
	t.logger.Debug(
		"decoded value from binary",
		"kind", v.Kind().String(),
		"bytes", len(raw),
	)
	return &SborDecodeResponse{Value: encoded}, nil
}

// JSONEncode renders binary-encoded bytes as a kind-tagged JSON document
func (t *Toolkit) JSONEncode(
	req JSONEncodeRequest,
) (*JSONEncodeResponse, *Error) {
	resp, err := t.SborDecode(SborDecodeRequest{EncodedHex: req.EncodedHex})
	if err != nil {
		return nil, err
	}
	return &JSONEncodeResponse{Value: resp.Value}, nil
}

// JSONDecode parses a kind-tagged JSON document and returns the canonical
// binary form. Kind and value-shape mismatches fail before any output is
// produced
func (t *Toolkit) JSONDecode(
	req JSONDecodeRequest,
) (*JSONDecodeResponse, *Error) {
	resp, err := t.SborEncode(SborEncodeRequest{Value: req.Value})
	if err != nil {
		return nil, err
	}
	return &JSONDecodeResponse{EncodedHex: resp.EncodedHex}, nil
}

// TranslateAddress converts address text between the legacy and current
// eras. Translating to the current era requires the caller's network id,
// since legacy text names its network only through a prefix table
func (t *Toolkit) TranslateAddress(
	req TranslateAddressRequest,
) (*TranslateAddressResponse, *Error) {
	if err := t.checkInputSize(len(req.Address)); err != nil {
		return nil, shapeError(err)
	}
	var (
		addr address.Address
		text string
		err  error
	)
	switch req.Direction {
	case DirectionToLegacy:
		addr, err = t.translator.FromCurrent(req.Address)
		if err != nil {
			return nil, shapeError(err)
		}
		text, err = t.translator.ToLegacy(addr)
	case DirectionToCurrent:
		if req.NetworkID == nil {
			return nil, newError(
				ErrInvalidRequest,
				"networkId is required when translating to the current era",
			)
		}
		addr, err = t.translator.FromLegacy(req.Address, *req.NetworkID)
		if err != nil {
			return nil, shapeError(err)
		}
		text, err = t.translator.ToCurrent(addr)
	default:
		return nil, newError(
			ErrInvalidRequest,
			"unknown translation direction %q",
			req.Direction,
		)
	}
	if err != nil {
		return nil, shapeError(err)
	}
	return &TranslateAddressResponse{
		Address:    text,
		NetworkID:  addr.NetworkID,
		EntityType: addr.Entity.String(),
	}, nil
}

// ParseManifest parses manifest text into a structured instruction list
func (t *Toolkit) ParseManifest(
	req ParseManifestRequest,
) (*ParseManifestResponse, *Error) {
	if err := t.checkInputSize(len(req.Manifest)); err != nil {
		return nil, shapeError(err)
	}
	m, err := manifest.Parse(
		req.Manifest,
		manifest.WithAddressDecoder(t.translator.FromCurrent),
	)
	if err != nil {
		return nil, shapeError(err)
	}
	t.logger.Debug("parsed manifest", "instructions", len(m.Instructions))
	return &ParseManifestResponse{Instructions: m.Instructions}, nil
}

// SerializeManifest renders a structured instruction list as manifest text.
// The instruction list is validated, including the handle forward-reference
// invariant, before any text is produced
func (t *Toolkit) SerializeManifest(
	req SerializeManifestRequest,
) (*SerializeManifestResponse, *Error) {
	text, err := manifest.Serialize(
		manifest.Manifest{Instructions: req.Instructions},
		manifest.WithAddressEncoder(t.translator.ToCurrent),
	)
	if err != nil {
		return nil, shapeError(err)
	}
	return &SerializeManifestResponse{Manifest: text}, nil
}

// DeriveVirtualAccount derives the virtual account component address for a
// public key and renders it in the current era
func (t *Toolkit) DeriveVirtualAccount(
	req DeriveVirtualAccountRequest,
) (*DeriveVirtualAccountResponse, *Error) {
	addr, err := t.deriveVirtual(
		req.PublicKeyHex,
		req.NetworkID,
		address.DeriveVirtualAccount,
	)
	if err != nil {
		return nil, err
	}
	return &DeriveVirtualAccountResponse{Address: addr}, nil
}

// DeriveVirtualIdentity derives the virtual identity address for a public
// key and renders it in the current era
func (t *Toolkit) DeriveVirtualIdentity(
	req DeriveVirtualIdentityRequest,
) (*DeriveVirtualIdentityResponse, *Error) {
	addr, err := t.deriveVirtual(
		req.PublicKeyHex,
		req.NetworkID,
		address.DeriveVirtualIdentity,
	)
	if err != nil {
		return nil, err
	}
	return &DeriveVirtualIdentityResponse{Address: addr}, nil
}

func (t *Toolkit) deriveVirtual(
	publicKeyHex string,
	networkID uint8,
	derive func([]byte, uint8) (address.Address, error),
) (string, *Error) {
	if err := t.checkInputSize(len(publicKeyHex)); err != nil {
		return "", shapeError(err)
	}
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", newError(
			ErrInvalidRequest,
			"public key is not hex: %s",
			err,
		)
	}
	addr, err := derive(publicKey, networkID)
	if err != nil {
		return "", shapeError(err)
	}
	text, err := t.translator.ToCurrent(addr)
	if err != nil {
		return "", shapeError(err)
	}
	return text, nil
}
