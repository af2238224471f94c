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

	"github.com/google/uuid"

	"github.com/lumenlabs-io/golumen/address"
)

// DecodeOption adjusts how Unmarshal resolves embedded representations
type DecodeOption func(*jsonDecoder)

// WithAddressDecoder overrides how address text is resolved, typically to
// route it through a cached address translator
func WithAddressDecoder(fn func(string) (address.Address, error)) DecodeOption {
	return func(d *jsonDecoder) {
		d.decodeAddress = fn
	}
}

type jsonDecoder struct {
	decodeAddress func(string) (address.Address, error)
}

// Unmarshal parses kind-tagged JSON into a value tree. Parsing is
// all-or-nothing: any kind/shape mismatch fails the whole decode with no
// partial result
func Unmarshal(data []byte, opts ...DecodeOption) (Value, error) {
	dec := &jsonDecoder{decodeAddress: address.DecodeCurrent}
	for _, opt := range opts {
		opt(dec)
	}
	return dec.decodeValue(data, 1)
}

type jsonEnvelope struct {
	Kind        string            `json:"kind"`
	Value       json.RawMessage   `json:"value"`
	Variant     *uint8            `json:"variant"`
	Fields      []json.RawMessage `json:"fields"`
	ElementKind string            `json:"elementKind"`
	Elements    []json.RawMessage `json:"elements"`
	KeyKind     string            `json:"keyKind"`
	ValueKind   string            `json:"valueKind"`
	Entries     []jsonRawEntry    `json:"entries"`
	Identifier  json.RawMessage   `json:"identifier"`
}

type jsonRawEntry struct {
	Key   json.RawMessage `json:"key"`
	Value json.RawMessage `json:"value"`
}

type jsonTaggedString struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (d *jsonDecoder) decodeValue(data []byte, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, DepthExceededError{Limit: MaxDepth}
	}
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed value JSON: %w", err)
	}
	kind, ok := KindByName(env.Kind)
	if !ok {
		return nil, UnrecognizedKindError{Name: env.Kind}
	}
	switch kind {
	case KindBool:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return nil, TypeMismatchError{Kind: kind, Detail: "value is not a JSON boolean"}
		}
		return Bool{Value: b}, nil
	case KindI8, KindI16, KindI32, KindI64, KindI128,
		KindU8, KindU16, KindU32, KindU64, KindU128:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		return ParseInteger(kind, s)
	case KindString:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		return String{Value: s}, nil
	case KindEnum:
		if env.Variant == nil {
			return nil, TypeMismatchError{Kind: kind, Detail: "missing variant"}
		}
		fields := make([]Value, 0, len(env.Fields))
		for _, raw := range env.Fields {
			field, err := d.decodeValue(raw, depth+1)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		if len(fields) == 0 {
			fields = nil
		}
		return Enum{Discriminant: *env.Variant, Fields: fields}, nil
	case KindArray:
		elementKind, ok := KindByName(env.ElementKind)
		if !ok {
			return nil, UnrecognizedKindError{Name: env.ElementKind}
		}
		elements := make([]Value, 0, len(env.Elements))
		for _, raw := range env.Elements {
			elem, err := d.decodeValue(raw, depth+1)
			if err != nil {
				return nil, err
			}
			if elem.Kind() != elementKind {
				return nil, TypeMismatchError{
					Kind: KindArray,
					Detail: fmt.Sprintf(
						"element of kind %s in array of %s",
						elem.Kind(),
						elementKind,
					),
				}
			}
			elements = append(elements, elem)
		}
		return Array{ElementKind: elementKind, Elements: elements}, nil
	case KindTuple:
		elements := make([]Value, 0, len(env.Elements))
		for _, raw := range env.Elements {
			elem, err := d.decodeValue(raw, depth+1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
		}
		return Tuple{Elements: elements}, nil
	case KindMap:
		keyKind, ok := KindByName(env.KeyKind)
		if !ok {
			return nil, UnrecognizedKindError{Name: env.KeyKind}
		}
		valueKind, ok := KindByName(env.ValueKind)
		if !ok {
			return nil, UnrecognizedKindError{Name: env.ValueKind}
		}
		entries := make([]MapEntry, 0, len(env.Entries))
		for _, raw := range env.Entries {
			key, err := d.decodeValue(raw.Key, depth+1)
			if err != nil {
				return nil, err
			}
			val, err := d.decodeValue(raw.Value, depth+1)
			if err != nil {
				return nil, err
			}
			if key.Kind() != keyKind || val.Kind() != valueKind {
				return nil, TypeMismatchError{
					Kind:   KindMap,
					Detail: "entry kind disagrees with declared key/value kinds",
				}
			}
			for _, existing := range entries {
				if Equal(existing.Key, key) {
					return nil, TypeMismatchError{Kind: KindMap, Detail: "duplicate map key"}
				}
			}
			entries = append(entries, MapEntry{Key: key, Value: val})
		}
		return Map{KeyKind: keyKind, ValueKind: valueKind, Entries: entries}, nil
	case KindDecimal:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		dec, err := NewDecimal(s)
		if err != nil {
			return nil, err
		}
		return dec, nil
	case KindPreciseDecimal:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		dec, err := NewPreciseDecimal(s)
		if err != nil {
			return nil, err
		}
		return dec, nil
	case KindPackageAddress, KindComponentAddress, KindResourceAddress:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		addr, err := d.decodeAddress(s)
		if err != nil {
			return nil, err
		}
		return NewAddressValue(kind, addr)
	case KindOwn:
		id, err := fixedHexValue(kind, env.Value, 32)
		if err != nil {
			return nil, err
		}
		var own Own
		copy(own.ID[:], id)
		return own, nil
	case KindBucket, KindProof:
		handle, err := d.decodeHandle(kind, env.Identifier)
		if err != nil {
			return nil, err
		}
		if kind == KindBucket {
			return Bucket{Identifier: handle}, nil
		}
		return Proof{Identifier: handle}, nil
	case KindExpression:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		expr, ok := ExpressionByName(s)
		if !ok {
			return nil, TypeMismatchError{
				Kind:   kind,
				Detail: "unknown expression " + strconv.Quote(s),
			}
		}
		return Expression{Value: expr}, nil
	case KindBlob:
		hash, err := fixedHexValue(kind, env.Value, 32)
		if err != nil {
			return nil, err
		}
		var blob Blob
		copy(blob.Hash[:], hash)
		return blob, nil
	case KindBytes:
		s, err := stringValue(kind, env.Value)
		if err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, TypeMismatchError{Kind: kind, Detail: "value is not a hex string"}
		}
		return Bytes{Value: raw}, nil
	case KindNonFungibleLocalID:
		id, err := decodeLocalID(env.Value)
		if err != nil {
			return nil, err
		}
		return NonFungibleLocalID{ID: id}, nil
	case KindHash:
		raw, err := fixedHexValue(kind, env.Value, 32)
		if err != nil {
			return nil, err
		}
		var hash Hash
		copy(hash.Value[:], raw)
		return hash, nil
	case KindEd25519PublicKey:
		raw, err := fixedHexValue(kind, env.Value, 32)
		if err != nil {
			return nil, err
		}
		var key Ed25519PublicKey
		copy(key.Value[:], raw)
		return key, nil
	case KindSecp256k1PublicKey:
		raw, err := fixedHexValue(kind, env.Value, 33)
		if err != nil {
			return nil, err
		}
		var key Secp256k1PublicKey
		copy(key.Value[:], raw)
		return key, nil
	}
	return nil, UnrecognizedKindError{Name: env.Kind}
}

func (d *jsonDecoder) decodeHandle(kind Kind, data json.RawMessage) (HandleID, error) {
	if len(data) == 0 {
		return HandleID{}, TypeMismatchError{Kind: kind, Detail: "missing identifier"}
	}
	var tagged jsonTaggedString
	if err := json.Unmarshal(data, &tagged); err != nil {
		return HandleID{}, TypeMismatchError{Kind: kind, Detail: "malformed identifier"}
	}
	switch tagged.Kind {
	case "String":
		return NamedHandle(tagged.Value), nil
	case "U32":
		id, err := strconv.ParseUint(tagged.Value, 10, 32)
		if err != nil {
			return HandleID{}, integerParseError(KindU32, tagged.Value, err)
		}
		return NumericHandle(uint32(id)), nil
	}
	return HandleID{}, TypeMismatchError{
		Kind:   kind,
		Detail: "identifier kind must be String or U32",
	}
}

func decodeLocalID(data json.RawMessage) (LocalID, error) {
	if len(data) == 0 {
		return nil, TypeMismatchError{Kind: KindNonFungibleLocalID, Detail: "missing value"}
	}
	var tagged jsonTaggedString
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, TypeMismatchError{Kind: KindNonFungibleLocalID, Detail: "malformed value"}
	}
	switch tagged.Kind {
	case "String":
		return StringLocalID{Value: tagged.Value}, nil
	case "Integer":
		num, err := strconv.ParseUint(tagged.Value, 10, 64)
		if err != nil {
			return nil, integerParseError(KindU64, tagged.Value, err)
		}
		return IntegerLocalID{Value: num}, nil
	case "Bytes":
		raw, err := hex.DecodeString(tagged.Value)
		if err != nil {
			return nil, TypeMismatchError{
				Kind:   KindNonFungibleLocalID,
				Detail: "bytes local id is not hex",
			}
		}
		return BytesLocalID{Value: raw}, nil
	case "UUID":
		id, err := uuid.Parse(tagged.Value)
		if err != nil {
			return nil, TypeMismatchError{
				Kind:   KindNonFungibleLocalID,
				Detail: "invalid UUID local id",
			}
		}
		return UUIDLocalID{Value: id}, nil
	}
	return nil, TypeMismatchError{
		Kind:   KindNonFungibleLocalID,
		Detail: "local id kind must be String, Integer, Bytes or UUID",
	}
}

// NewAddressValue wraps a decoded address in the value for kind, checking
// that the address's entity type belongs to that kind's family
func NewAddressValue(kind Kind, addr address.Address) (Value, error) {
	switch kind {
	case KindPackageAddress:
		if addr.Entity != address.EntityPackage {
			return nil, TypeMismatchError{Kind: kind, Detail: "address is not a package address"}
		}
		return PackageAddress{Address: addr}, nil
	case KindResourceAddress:
		if addr.Entity != address.EntityResource {
			return nil, TypeMismatchError{Kind: kind, Detail: "address is not a resource address"}
		}
		return ResourceAddress{Address: addr}, nil
	case KindComponentAddress:
		if !addr.Entity.IsComponent() {
			return nil, TypeMismatchError{Kind: kind, Detail: "address is not a component address"}
		}
		return ComponentAddress{Address: addr}, nil
	}
	return nil, TypeMismatchError{Kind: kind, Detail: "not an address kind"}
}

func stringValue(kind Kind, data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", TypeMismatchError{Kind: kind, Detail: "value is not a JSON string"}
	}
	return s, nil
}

func fixedHexValue(kind Kind, data json.RawMessage, size int) ([]byte, error) {
	s, err := stringValue(kind, data)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, TypeMismatchError{Kind: kind, Detail: "value is not a hex string"}
	}
	if len(raw) != size {
		return nil, TypeMismatchError{
			Kind:   kind,
			Detail: fmt.Sprintf("expected %d bytes, got %d", size, len(raw)),
		}
	}
	return raw, nil
}
