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

package manifest

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/value"
)

// SerializeOption configures manifest serialization
type SerializeOption func(*serializer)

// WithAddressEncoder overrides how addresses are rendered into manifest
// text
func WithAddressEncoder(
	fn func(address.Address) (string, error),
) SerializeOption {
	return func(s *serializer) {
		s.encodeAddress = fn
	}
}

// Serialize renders a manifest as text. The manifest is validated first, so
// serialized output always parses back to an equal manifest
func Serialize(m Manifest, opts ...SerializeOption) (string, error) {
	s := &serializer{encodeAddress: address.EncodeCurrent}
	for _, opt := range opts {
		opt(s)
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, instr := range m.Instructions {
		sb.WriteString(instr.Op.String())
		for _, arg := range instr.Args {
			sb.WriteByte(' ')
			if err := s.renderValue(&sb, arg, 1); err != nil {
				return "", err
			}
		}
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}

type serializer struct {
	encodeAddress func(address.Address) (string, error)
}

func (s *serializer) renderValue(
	sb *strings.Builder,
	v value.Value,
	depth int,
) error {
	if v == nil {
		return value.TypeMismatchError{
			Detail: "nil value has no manifest text form",
		}
	}
	if depth > value.MaxDepth {
		return value.DepthExceededError{Limit: value.MaxDepth}
	}
	switch tv := v.(type) {
	case value.Bool:
		sb.WriteString(strconv.FormatBool(tv.Value))
	case value.I8:
		fmt.Fprintf(sb, "%di8", tv.Value)
	case value.I16:
		fmt.Fprintf(sb, "%di16", tv.Value)
	case value.I32:
		fmt.Fprintf(sb, "%di32", tv.Value)
	case value.I64:
		fmt.Fprintf(sb, "%di64", tv.Value)
	case value.I128:
		fmt.Fprintf(sb, "%si128", tv.Value.String())
	case value.U8:
		fmt.Fprintf(sb, "%du8", tv.Value)
	case value.U16:
		fmt.Fprintf(sb, "%du16", tv.Value)
	case value.U32:
		fmt.Fprintf(sb, "%du32", tv.Value)
	case value.U64:
		fmt.Fprintf(sb, "%du64", tv.Value)
	case value.U128:
		fmt.Fprintf(sb, "%su128", tv.Value.String())
	case value.String:
		sb.WriteString(strconv.Quote(tv.Value))
	case value.Decimal:
		fmt.Fprintf(sb, "Decimal(%q)", tv.String())
	case value.PreciseDecimal:
		fmt.Fprintf(sb, "PreciseDecimal(%q)", tv.String())
	case value.PackageAddress:
		return s.renderAddress(sb, "PackageAddress", tv.Address)
	case value.ComponentAddress:
		return s.renderAddress(sb, "ComponentAddress", tv.Address)
	case value.ResourceAddress:
		return s.renderAddress(sb, "ResourceAddress", tv.Address)
	case value.Bucket:
		return renderHandle(sb, "Bucket", tv.Identifier)
	case value.Proof:
		return renderHandle(sb, "Proof", tv.Identifier)
	case value.Expression:
		name, err := tv.Value.Name()
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "Expression(%q)", name)
	case value.Bytes:
		fmt.Fprintf(sb, "Bytes(%q)", hex.EncodeToString(tv.Value))
	case value.Blob:
		fmt.Fprintf(sb, "Blob(%q)", hex.EncodeToString(tv.Hash[:]))
	case value.Hash:
		fmt.Fprintf(sb, "Hash(%q)", hex.EncodeToString(tv.Value[:]))
	case value.Own:
		fmt.Fprintf(sb, "Own(%q)", hex.EncodeToString(tv.ID[:]))
	case value.Ed25519PublicKey:
		fmt.Fprintf(
			sb,
			"Ed25519PublicKey(%q)",
			hex.EncodeToString(tv.Value[:]),
		)
	case value.Secp256k1PublicKey:
		fmt.Fprintf(
			sb,
			"Secp256k1PublicKey(%q)",
			hex.EncodeToString(tv.Value[:]),
		)
	case value.NonFungibleLocalID:
		text, err := formatLocalID(tv.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "NonFungibleLocalId(%q)", text)
	case value.Enum:
		fmt.Fprintf(sb, "Enum(%du8", tv.Discriminant)
		for _, field := range tv.Fields {
			sb.WriteString(", ")
			if err := s.renderValue(sb, field, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	case value.Tuple:
		sb.WriteString("Tuple(")
		for i, elem := range tv.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := s.renderValue(sb, elem, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	case value.Array:
		fmt.Fprintf(sb, "Array<%s>(", tv.ElementKind)
		for i, elem := range tv.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			if elem.Kind() != tv.ElementKind {
				return value.TypeMismatchError{
					Kind: value.KindArray,
					Detail: "element kind " + elem.Kind().String() +
						" does not match declared " + tv.ElementKind.String(),
				}
			}
			if err := s.renderValue(sb, elem, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	case value.Map:
		fmt.Fprintf(sb, "Map<%s, %s>(", tv.KeyKind, tv.ValueKind)
		for i, entry := range tv.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			if entry.Key.Kind() != tv.KeyKind ||
				entry.Value.Kind() != tv.ValueKind {
				return value.TypeMismatchError{
					Kind:   value.KindMap,
					Detail: "entry kinds do not match declared kinds",
				}
			}
			if err := s.renderValue(sb, entry.Key, depth+1); err != nil {
				return err
			}
			sb.WriteString(", ")
			if err := s.renderValue(sb, entry.Value, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	default:
		return value.TypeMismatchError{
			Kind:   v.Kind(),
			Detail: "value has no manifest text form",
		}
	}
	return nil
}

func (s *serializer) renderAddress(
	sb *strings.Builder,
	ctor string,
	addr address.Address,
) error {
	text, err := s.encodeAddress(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(sb, "%s(%q)", ctor, text)
	return nil
}

func renderHandle(
	sb *strings.Builder,
	ctor string,
	id value.HandleID,
) error {
	switch id.Kind {
	case value.HandleIDNamed:
		fmt.Fprintf(sb, "%s(%q)", ctor, id.Name)
	case value.HandleIDNumeric:
		fmt.Fprintf(sb, "%s(%du32)", ctor, id.ID)
	default:
		return value.TypeMismatchError{
			Kind:   value.KindBucket,
			Detail: "unknown handle id form",
		}
	}
	return nil
}

// formatLocalID is the inverse of parseLocalID
func formatLocalID(id value.LocalID) (string, error) {
	switch lid := id.(type) {
	case value.StringLocalID:
		return "<" + lid.Value + ">", nil
	case value.IntegerLocalID:
		return "#" + strconv.FormatUint(lid.Value, 10) + "#", nil
	case value.BytesLocalID:
		return "[" + hex.EncodeToString(lid.Value) + "]", nil
	case value.UUIDLocalID:
		return "{" + lid.Value.String() + "}", nil
	}
	return "", value.TypeMismatchError{
		Kind:   value.KindNonFungibleLocalID,
		Detail: "missing local id",
	}
}
