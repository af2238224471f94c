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

package value

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lumenlabs-io/golumen/address"
)

// The JSON form of every value is an object with a "kind" discriminant.
// Integers are rendered as decimal strings since JSON numbers cannot carry
// 64-bit and wider values without silent precision loss; decimals are
// fixed-point strings; byte payloads are lowercase hex; addresses use their
// current-era bech32m text. Field names and casing are a fixed external
// contract for downstream tooling

// Marshal renders a value tree as kind-tagged JSON. Encoding is total for
// every structurally valid tree within the depth limit
func Marshal(v Value) ([]byte, error) {
	if Depth(v) > MaxDepth {
		return nil, DepthExceededError{Limit: MaxDepth}
	}
	return json.Marshal(v)
}

func marshalTagged(kind Kind, value any) ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value any    `json:"value"`
	}{Kind: kind.String(), Value: value})
}

func (v Bool) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindBool, v.Value)
}

func (v I8) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindI8, strconv.FormatInt(int64(v.Value), 10))
}

func (v I16) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindI16, strconv.FormatInt(int64(v.Value), 10))
}

func (v I32) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindI32, strconv.FormatInt(int64(v.Value), 10))
}

func (v I64) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindI64, strconv.FormatInt(v.Value, 10))
}

func (v I128) MarshalJSON() ([]byte, error) {
	if v.Value == nil {
		return marshalTagged(KindI128, "0")
	}
	return marshalTagged(KindI128, v.Value.String())
}

func (v U8) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindU8, strconv.FormatUint(uint64(v.Value), 10))
}

func (v U16) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindU16, strconv.FormatUint(uint64(v.Value), 10))
}

func (v U32) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindU32, strconv.FormatUint(uint64(v.Value), 10))
}

func (v U64) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindU64, strconv.FormatUint(v.Value, 10))
}

func (v U128) MarshalJSON() ([]byte, error) {
	if v.Value == nil {
		return marshalTagged(KindU128, "0")
	}
	return marshalTagged(KindU128, v.Value.String())
}

func (v String) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindString, v.Value)
}

func (v Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string  `json:"kind"`
		Variant uint8   `json:"variant"`
		Fields  []Value `json:"fields,omitempty"`
	}{Kind: KindEnum.String(), Variant: v.Discriminant, Fields: v.Fields})
}

func (v Array) MarshalJSON() ([]byte, error) {
	for _, elem := range v.Elements {
		if elem.Kind() != v.ElementKind {
			return nil, TypeMismatchError{
				Kind: KindArray,
				Detail: fmt.Sprintf(
					"element of kind %s in array of %s",
					elem.Kind(),
					v.ElementKind,
				),
			}
		}
	}
	elements := v.Elements
	if elements == nil {
		elements = []Value{}
	}
	return json.Marshal(struct {
		Kind        string  `json:"kind"`
		ElementKind string  `json:"elementKind"`
		Elements    []Value `json:"elements"`
	}{Kind: KindArray.String(), ElementKind: v.ElementKind.String(), Elements: elements})
}

func (v Tuple) MarshalJSON() ([]byte, error) {
	elements := v.Elements
	if elements == nil {
		elements = []Value{}
	}
	return json.Marshal(struct {
		Kind     string  `json:"kind"`
		Elements []Value `json:"elements"`
	}{Kind: KindTuple.String(), Elements: elements})
}

func (v Map) MarshalJSON() ([]byte, error) {
	type jsonEntry struct {
		Key   Value `json:"key"`
		Value Value `json:"value"`
	}
	entries := make([]jsonEntry, 0, len(v.Entries))
	for _, entry := range v.Entries {
		if entry.Key.Kind() != v.KeyKind || entry.Value.Kind() != v.ValueKind {
			return nil, TypeMismatchError{
				Kind:   KindMap,
				Detail: "entry kind disagrees with declared key/value kinds",
			}
		}
		entries = append(entries, jsonEntry{Key: entry.Key, Value: entry.Value})
	}
	return json.Marshal(struct {
		Kind      string      `json:"kind"`
		KeyKind   string      `json:"keyKind"`
		ValueKind string      `json:"valueKind"`
		Entries   []jsonEntry `json:"entries"`
	}{
		Kind:      KindMap.String(),
		KeyKind:   v.KeyKind.String(),
		ValueKind: v.ValueKind.String(),
		Entries:   entries,
	})
}

func (v Decimal) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindDecimal, v.String())
}

func (v PreciseDecimal) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindPreciseDecimal, v.String())
}

func marshalAddress(kind Kind, addr address.Address) ([]byte, error) {
	encoded, err := address.EncodeCurrent(addr)
	if err != nil {
		return nil, err
	}
	return marshalTagged(kind, encoded)
}

func (v PackageAddress) MarshalJSON() ([]byte, error) {
	return marshalAddress(KindPackageAddress, v.Address)
}

func (v ComponentAddress) MarshalJSON() ([]byte, error) {
	return marshalAddress(KindComponentAddress, v.Address)
}

func (v ResourceAddress) MarshalJSON() ([]byte, error) {
	return marshalAddress(KindResourceAddress, v.Address)
}

func (v Own) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindOwn, hex.EncodeToString(v.ID[:]))
}

func marshalHandle(kind Kind, id HandleID) ([]byte, error) {
	var identifier any
	switch id.Kind {
	case HandleIDNamed:
		identifier = struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		}{Kind: "String", Value: id.Name}
	case HandleIDNumeric:
		identifier = struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		}{Kind: "U32", Value: strconv.FormatUint(uint64(id.ID), 10)}
	default:
		return nil, TypeMismatchError{Kind: kind, Detail: "unknown handle identifier kind"}
	}
	return json.Marshal(struct {
		Kind       string `json:"kind"`
		Identifier any    `json:"identifier"`
	}{Kind: kind.String(), Identifier: identifier})
}

func (v Bucket) MarshalJSON() ([]byte, error) {
	return marshalHandle(KindBucket, v.Identifier)
}

func (v Proof) MarshalJSON() ([]byte, error) {
	return marshalHandle(KindProof, v.Identifier)
}

func (v Expression) MarshalJSON() ([]byte, error) {
	name, err := v.Value.Name()
	if err != nil {
		return nil, err
	}
	return marshalTagged(KindExpression, name)
}

// Name returns the manifest and JSON spelling of the expression
func (e ExpressionKind) Name() (string, error) {
	switch e {
	case ExpressionEntireWorktop:
		return "ENTIRE_WORKTOP", nil
	case ExpressionEntireAuthZone:
		return "ENTIRE_AUTH_ZONE", nil
	}
	return "", TypeMismatchError{Kind: KindExpression, Detail: "unknown expression"}
}

// ExpressionByName is the inverse of ExpressionKind.Name
func ExpressionByName(name string) (ExpressionKind, bool) {
	switch name {
	case "ENTIRE_WORKTOP":
		return ExpressionEntireWorktop, true
	case "ENTIRE_AUTH_ZONE":
		return ExpressionEntireAuthZone, true
	}
	return 0, false
}

func (v Blob) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindBlob, hex.EncodeToString(v.Hash[:]))
}

func (v Bytes) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindBytes, hex.EncodeToString(v.Value))
}

func (v NonFungibleLocalID) MarshalJSON() ([]byte, error) {
	var inner struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}
	switch id := v.ID.(type) {
	case StringLocalID:
		inner.Kind = "String"
		inner.Value = id.Value
	case IntegerLocalID:
		inner.Kind = "Integer"
		inner.Value = strconv.FormatUint(id.Value, 10)
	case BytesLocalID:
		inner.Kind = "Bytes"
		inner.Value = hex.EncodeToString(id.Value)
	case UUIDLocalID:
		inner.Kind = "UUID"
		inner.Value = id.Value.String()
	default:
		return nil, TypeMismatchError{
			Kind:   KindNonFungibleLocalID,
			Detail: "missing local id",
		}
	}
	return marshalTagged(KindNonFungibleLocalID, inner)
}

func (v Hash) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindHash, hex.EncodeToString(v.Value[:]))
}

func (v Ed25519PublicKey) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindEd25519PublicKey, hex.EncodeToString(v.Value[:]))
}

func (v Secp256k1PublicKey) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindSecp256k1PublicKey, hex.EncodeToString(v.Value[:]))
}
