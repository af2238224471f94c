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

package sbor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/lumenlabs-io/golumen/value"
)

// Encode serializes a value tree into its canonical binary form. Encoding is
// deterministic: structurally equal trees always produce identical bytes.
// The tree is pre-validated against the depth limit before any allocation
func Encode(v value.Value) ([]byte, error) {
	if v == nil {
		return nil, value.TypeMismatchError{Detail: "cannot encode nil value"}
	}
	if value.Depth(v) > value.MaxDepth {
		return nil, value.DepthExceededError{Limit: value.MaxDepth}
	}
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v value.Value) error {
	tag, ok := kindTags[v.Kind()]
	if !ok {
		return value.TypeMismatchError{Kind: v.Kind(), Detail: "kind has no wire tag"}
	}
	buf.WriteByte(tag)
	return encodeBody(buf, v)
}

func encodeBody(buf *bytes.Buffer, v value.Value) error {
	switch tv := v.(type) {
	case value.Bool:
		if tv.Value {
			buf.WriteByte(0x01)
		} else {
			buf.WriteByte(0x00)
		}
	case value.I8:
		buf.WriteByte(byte(tv.Value))
	case value.I16:
		writeUint(buf, uint64(uint16(tv.Value)), 2)
	case value.I32:
		writeUint(buf, uint64(uint32(tv.Value)), 4)
	case value.I64:
		writeUint(buf, uint64(tv.Value), 8)
	case value.I128:
		return writeBigInt(buf, tv.Value, 16, true)
	case value.U8:
		buf.WriteByte(tv.Value)
	case value.U16:
		writeUint(buf, uint64(tv.Value), 2)
	case value.U32:
		writeUint(buf, uint64(tv.Value), 4)
	case value.U64:
		writeUint(buf, tv.Value, 8)
	case value.U128:
		return writeBigInt(buf, tv.Value, 16, false)
	case value.String:
		return writeString(buf, tv.Value)
	case value.Array:
		elemTag, ok := kindTags[tv.ElementKind]
		if !ok {
			return value.TypeMismatchError{
				Kind:   value.KindArray,
				Detail: "element kind has no wire tag",
			}
		}
		buf.WriteByte(elemTag)
		if err := writeLength(buf, len(tv.Elements)); err != nil {
			return err
		}
		for _, elem := range tv.Elements {
			if elem.Kind() != tv.ElementKind {
				return value.TypeMismatchError{
					Kind: value.KindArray,
					Detail: fmt.Sprintf(
						"element of kind %s in array of %s",
						elem.Kind(),
						tv.ElementKind,
					),
				}
			}
			if err := encodeBody(buf, elem); err != nil {
				return err
			}
		}
	case value.Tuple:
		if err := writeLength(buf, len(tv.Elements)); err != nil {
			return err
		}
		for _, elem := range tv.Elements {
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
	case value.Enum:
		buf.WriteByte(tv.Discriminant)
		if err := writeLength(buf, len(tv.Fields)); err != nil {
			return err
		}
		for _, field := range tv.Fields {
			if err := encodeValue(buf, field); err != nil {
				return err
			}
		}
	case value.Map:
		keyTag, ok := kindTags[tv.KeyKind]
		if !ok {
			return value.TypeMismatchError{Kind: value.KindMap, Detail: "key kind has no wire tag"}
		}
		valueTag, ok := kindTags[tv.ValueKind]
		if !ok {
			return value.TypeMismatchError{Kind: value.KindMap, Detail: "value kind has no wire tag"}
		}
		buf.WriteByte(keyTag)
		buf.WriteByte(valueTag)
		if err := writeLength(buf, len(tv.Entries)); err != nil {
			return err
		}
		for i, entry := range tv.Entries {
			if entry.Key.Kind() != tv.KeyKind || entry.Value.Kind() != tv.ValueKind {
				return value.TypeMismatchError{
					Kind:   value.KindMap,
					Detail: "entry kind disagrees with declared key/value kinds",
				}
			}
			for _, prev := range tv.Entries[:i] {
				if value.Equal(prev.Key, entry.Key) {
					return value.TypeMismatchError{
						Kind:   value.KindMap,
						Detail: "duplicate map key",
					}
				}
			}
			if err := encodeBody(buf, entry.Key); err != nil {
				return err
			}
			if err := encodeBody(buf, entry.Value); err != nil {
				return err
			}
		}
	case value.PackageAddress:
		writeAddressBody(buf, tv.Address.NetworkID, byte(tv.Address.Entity), tv.Address.Payload)
	case value.ComponentAddress:
		writeAddressBody(buf, tv.Address.NetworkID, byte(tv.Address.Entity), tv.Address.Payload)
	case value.ResourceAddress:
		writeAddressBody(buf, tv.Address.NetworkID, byte(tv.Address.Entity), tv.Address.Payload)
	case value.Own:
		buf.Write(tv.ID[:])
	case value.Bucket:
		return writeHandle(buf, tv.Identifier)
	case value.Proof:
		return writeHandle(buf, tv.Identifier)
	case value.Expression:
		buf.WriteByte(byte(tv.Value))
	case value.Blob:
		buf.Write(tv.Hash[:])
	case value.Decimal:
		return writeBigInt(buf, tv.Num, value.DecimalByteLen, true)
	case value.PreciseDecimal:
		return writeBigInt(buf, tv.Num, value.PreciseDecimalByteLen, true)
	case value.Bytes:
		if err := writeLength(buf, len(tv.Value)); err != nil {
			return err
		}
		buf.Write(tv.Value)
	case value.NonFungibleLocalID:
		return writeLocalID(buf, tv.ID)
	case value.Hash:
		buf.Write(tv.Value[:])
	case value.Ed25519PublicKey:
		buf.Write(tv.Value[:])
	case value.Secp256k1PublicKey:
		buf.Write(tv.Value[:])
	default:
		return value.TypeMismatchError{Kind: v.Kind(), Detail: "kind has no wire tag"}
	}
	return nil
}

func writeUint(buf *bytes.Buffer, v uint64, width int) {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], v)
	buf.Write(scratch[:width])
}

func writeLength(buf *bytes.Buffer, length int) error {
	if length < 0 || length > math.MaxUint32 {
		return value.TypeMismatchError{Detail: "composite length out of range"}
	}
	writeUint(buf, uint64(length), 4)
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := writeLength(buf, len(s)); err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

func writeAddressBody(buf *bytes.Buffer, networkID, entity byte, payload [26]byte) {
	buf.WriteByte(networkID)
	buf.WriteByte(entity)
	buf.Write(payload[:])
}

func writeHandle(buf *bytes.Buffer, id value.HandleID) error {
	switch id.Kind {
	case value.HandleIDNumeric:
		buf.WriteByte(0x00)
		writeUint(buf, uint64(id.ID), 4)
		return nil
	case value.HandleIDNamed:
		buf.WriteByte(0x01)
		return writeString(buf, id.Name)
	}
	return value.TypeMismatchError{Detail: "unknown handle identifier kind"}
}

func writeLocalID(buf *bytes.Buffer, id value.LocalID) error {
	switch tid := id.(type) {
	case value.StringLocalID:
		buf.WriteByte(byte(value.LocalIDString))
		return writeString(buf, tid.Value)
	case value.IntegerLocalID:
		buf.WriteByte(byte(value.LocalIDInteger))
		writeUint(buf, tid.Value, 8)
		return nil
	case value.BytesLocalID:
		buf.WriteByte(byte(value.LocalIDBytes))
		if err := writeLength(buf, len(tid.Value)); err != nil {
			return err
		}
		buf.Write(tid.Value)
		return nil
	case value.UUIDLocalID:
		buf.WriteByte(byte(value.LocalIDUUID))
		buf.Write(tid.Value[:])
		return nil
	}
	return value.TypeMismatchError{
		Kind:   value.KindNonFungibleLocalID,
		Detail: "missing local id",
	}
}

// writeBigInt writes a fixed-width little-endian two's-complement integer,
// rejecting values outside the representable range
func writeBigInt(buf *bytes.Buffer, num *big.Int, width int, signed bool) error {
	if num == nil {
		num = new(big.Int)
	}
	var minVal, maxVal *big.Int
	if signed {
		maxVal = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width*8-1)), big.NewInt(1))
		minVal = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(width*8-1)))
	} else {
		maxVal = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width*8)), big.NewInt(1))
		minVal = new(big.Int)
	}
	if num.Cmp(minVal) < 0 || num.Cmp(maxVal) > 0 {
		return value.NumericOverflowError{Value: num.String()}
	}
	twos := new(big.Int).Set(num)
	if twos.Sign() < 0 {
		twos.Add(twos, new(big.Int).Lsh(big.NewInt(1), uint(width*8)))
	}
	be := twos.Bytes()
	le := make([]byte, width)
	for i := 0; i < len(be); i++ {
		le[i] = be[len(be)-1-i]
	}
	buf.Write(le)
	return nil
}
