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
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/value"
)

// Decode parses a binary payload into a value tree, requiring the payload to
// be exactly one value: trailing bytes are a MalformedEncodingError
func Decode(data []byte) (value.Value, error) {
	v, n, err := DecodePrefix(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, MalformedEncodingError{
			Offset: n,
			Detail: fmt.Sprintf("%d trailing bytes after value", len(data)-n),
		}
	}
	return v, nil
}

// DecodePrefix parses a single value from the front of data and returns the
// number of bytes consumed. It never reads past the declared end of the
// value, so a value can be embedded within a larger buffer
func DecodePrefix(data []byte) (value.Value, int, error) {
	d := &decoder{data: data}
	v, err := d.decodeValue(1)
	if err != nil {
		return nil, 0, err
	}
	return v, d.pos, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) decodeValue(depth int) (value.Value, error) {
	if depth > value.MaxDepth {
		return nil, value.DepthExceededError{Limit: value.MaxDepth}
	}
	tag, err := d.readByte("type tag")
	if err != nil {
		return nil, err
	}
	if _, ok := tagKinds[tag]; !ok {
		return nil, UnknownTypeTagError{Offset: d.pos - 1, Tag: tag}
	}
	return d.decodeBody(tag, depth)
}

func (d *decoder) decodeBody(tag byte, depth int) (value.Value, error) {
	if depth > value.MaxDepth {
		return nil, value.DepthExceededError{Limit: value.MaxDepth}
	}
	switch tag {
	case TagBool:
		b, err := d.readByte("bool body")
		if err != nil {
			return nil, err
		}
		switch b {
		case 0x00:
			return value.Bool{Value: false}, nil
		case 0x01:
			return value.Bool{Value: true}, nil
		}
		return nil, MalformedEncodingError{
			Offset: d.pos - 1,
			Detail: fmt.Sprintf("invalid bool byte 0x%02x", b),
		}
	case TagI8:
		b, err := d.readByte("i8 body")
		if err != nil {
			return nil, err
		}
		return value.I8{Value: int8(b)}, nil
	case TagI16:
		n, err := d.readUint(2, "i16 body")
		if err != nil {
			return nil, err
		}
		return value.I16{Value: int16(n)}, nil
	case TagI32:
		n, err := d.readUint(4, "i32 body")
		if err != nil {
			return nil, err
		}
		return value.I32{Value: int32(n)}, nil
	case TagI64:
		n, err := d.readUint(8, "i64 body")
		if err != nil {
			return nil, err
		}
		return value.I64{Value: int64(n)}, nil
	case TagI128:
		raw, err := d.readBytes(16, "i128 body")
		if err != nil {
			return nil, err
		}
		return value.I128{Value: leToBigInt(raw, true)}, nil
	case TagU8:
		b, err := d.readByte("u8 body")
		if err != nil {
			return nil, err
		}
		return value.U8{Value: b}, nil
	case TagU16:
		n, err := d.readUint(2, "u16 body")
		if err != nil {
			return nil, err
		}
		return value.U16{Value: uint16(n)}, nil
	case TagU32:
		n, err := d.readUint(4, "u32 body")
		if err != nil {
			return nil, err
		}
		return value.U32{Value: uint32(n)}, nil
	case TagU64:
		n, err := d.readUint(8, "u64 body")
		if err != nil {
			return nil, err
		}
		return value.U64{Value: n}, nil
	case TagU128:
		raw, err := d.readBytes(16, "u128 body")
		if err != nil {
			return nil, err
		}
		return value.U128{Value: leToBigInt(raw, false)}, nil
	case TagString:
		s, err := d.readString("string body")
		if err != nil {
			return nil, err
		}
		return value.String{Value: s}, nil
	case TagArray:
		elemTag, err := d.readByte("array element tag")
		if err != nil {
			return nil, err
		}
		elemKind, ok := tagKinds[elemTag]
		if !ok {
			return nil, UnknownTypeTagError{Offset: d.pos - 1, Tag: elemTag}
		}
		count, err := d.readLength("array length")
		if err != nil {
			return nil, err
		}
		elements := make([]value.Value, 0, count)
		for i := 0; i < count; i++ {
			elem, err := d.decodeBody(elemTag, depth+1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
		}
		return value.Array{ElementKind: elemKind, Elements: elements}, nil
	case TagTuple:
		count, err := d.readLength("tuple length")
		if err != nil {
			return nil, err
		}
		elements := make([]value.Value, 0, count)
		for i := 0; i < count; i++ {
			elem, err := d.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
		}
		return value.Tuple{Elements: elements}, nil
	case TagEnum:
		discriminant, err := d.readByte("enum discriminant")
		if err != nil {
			return nil, err
		}
		count, err := d.readLength("enum field count")
		if err != nil {
			return nil, err
		}
		var fields []value.Value
		for i := 0; i < count; i++ {
			field, err := d.decodeValue(depth + 1)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return value.Enum{Discriminant: discriminant, Fields: fields}, nil
	case TagMap:
		keyTag, err := d.readByte("map key tag")
		if err != nil {
			return nil, err
		}
		keyKind, ok := tagKinds[keyTag]
		if !ok {
			return nil, UnknownTypeTagError{Offset: d.pos - 1, Tag: keyTag}
		}
		valueTag, err := d.readByte("map value tag")
		if err != nil {
			return nil, err
		}
		valueKind, ok := tagKinds[valueTag]
		if !ok {
			return nil, UnknownTypeTagError{Offset: d.pos - 1, Tag: valueTag}
		}
		count, err := d.readLength("map length")
		if err != nil {
			return nil, err
		}
		entries := make([]value.MapEntry, 0, count)
		for i := 0; i < count; i++ {
			key, err := d.decodeBody(keyTag, depth+1)
			if err != nil {
				return nil, err
			}
			val, err := d.decodeBody(valueTag, depth+1)
			if err != nil {
				return nil, err
			}
			for _, prev := range entries {
				if value.Equal(prev.Key, key) {
					return nil, MalformedEncodingError{
						Offset: d.pos,
						Detail: "duplicate map key",
					}
				}
			}
			entries = append(entries, value.MapEntry{Key: key, Value: val})
		}
		return value.Map{KeyKind: keyKind, ValueKind: valueKind, Entries: entries}, nil
	case TagPackageAddress, TagComponentAddress, TagResourceAddress:
		return d.decodeAddress(tag)
	case TagOwn:
		raw, err := d.readBytes(32, "own body")
		if err != nil {
			return nil, err
		}
		var own value.Own
		copy(own.ID[:], raw)
		return own, nil
	case TagBucket:
		id, err := d.readHandle()
		if err != nil {
			return nil, err
		}
		return value.Bucket{Identifier: id}, nil
	case TagProof:
		id, err := d.readHandle()
		if err != nil {
			return nil, err
		}
		return value.Proof{Identifier: id}, nil
	case TagExpression:
		b, err := d.readByte("expression body")
		if err != nil {
			return nil, err
		}
		if b > byte(value.ExpressionEntireAuthZone) {
			return nil, MalformedEncodingError{
				Offset: d.pos - 1,
				Detail: fmt.Sprintf("invalid expression byte 0x%02x", b),
			}
		}
		return value.Expression{Value: value.ExpressionKind(b)}, nil
	case TagBlob:
		raw, err := d.readBytes(32, "blob body")
		if err != nil {
			return nil, err
		}
		var blob value.Blob
		copy(blob.Hash[:], raw)
		return blob, nil
	case TagDecimal:
		raw, err := d.readBytes(value.DecimalByteLen, "decimal body")
		if err != nil {
			return nil, err
		}
		dec, err := value.NewDecimalFromScaled(leToBigInt(raw, true))
		if err != nil {
			return nil, err
		}
		return dec, nil
	case TagPreciseDecimal:
		raw, err := d.readBytes(value.PreciseDecimalByteLen, "precise decimal body")
		if err != nil {
			return nil, err
		}
		dec, err := value.NewPreciseDecimalFromScaled(leToBigInt(raw, true))
		if err != nil {
			return nil, err
		}
		return dec, nil
	case TagBytes:
		length, err := d.readLength("bytes length")
		if err != nil {
			return nil, err
		}
		raw, err := d.readBytes(length, "bytes body")
		if err != nil {
			return nil, err
		}
		ret := make([]byte, length)
		copy(ret, raw)
		return value.Bytes{Value: ret}, nil
	case TagNonFungibleLocalID:
		return d.decodeLocalID()
	case TagHash:
		raw, err := d.readBytes(32, "hash body")
		if err != nil {
			return nil, err
		}
		var hash value.Hash
		copy(hash.Value[:], raw)
		return hash, nil
	case TagEd25519PublicKey:
		raw, err := d.readBytes(32, "ed25519 public key body")
		if err != nil {
			return nil, err
		}
		var key value.Ed25519PublicKey
		copy(key.Value[:], raw)
		return key, nil
	case TagSecp256k1PublicKey:
		raw, err := d.readBytes(33, "secp256k1 public key body")
		if err != nil {
			return nil, err
		}
		var key value.Secp256k1PublicKey
		copy(key.Value[:], raw)
		return key, nil
	}
	return nil, UnknownTypeTagError{Offset: d.pos - 1, Tag: tag}
}

func (d *decoder) decodeAddress(tag byte) (value.Value, error) {
	start := d.pos
	raw, err := d.readBytes(address.PayloadSize+2, "address body")
	if err != nil {
		return nil, err
	}
	addr, err := address.NewAddress(address.EntityType(raw[1]), raw[0], raw[2:])
	if err != nil {
		return nil, MalformedEncodingError{Offset: start, Detail: err.Error()}
	}
	var kind value.Kind
	switch tag {
	case TagPackageAddress:
		kind = value.KindPackageAddress
	case TagResourceAddress:
		kind = value.KindResourceAddress
	default:
		kind = value.KindComponentAddress
	}
	v, err := addressValueForKind(kind, addr)
	if err != nil {
		return nil, MalformedEncodingError{Offset: start, Detail: err.Error()}
	}
	return v, nil
}

func addressValueForKind(kind value.Kind, addr address.Address) (value.Value, error) {
	switch kind {
	case value.KindPackageAddress:
		if addr.Entity != address.EntityPackage {
			return nil, fmt.Errorf("entity %s under package address tag", addr.Entity)
		}
		return value.PackageAddress{Address: addr}, nil
	case value.KindResourceAddress:
		if addr.Entity != address.EntityResource {
			return nil, fmt.Errorf("entity %s under resource address tag", addr.Entity)
		}
		return value.ResourceAddress{Address: addr}, nil
	default:
		if !addr.Entity.IsComponent() {
			return nil, fmt.Errorf("entity %s under component address tag", addr.Entity)
		}
		return value.ComponentAddress{Address: addr}, nil
	}
}

func (d *decoder) readHandle() (value.HandleID, error) {
	variant, err := d.readByte("handle variant")
	if err != nil {
		return value.HandleID{}, err
	}
	switch variant {
	case 0x00:
		id, err := d.readUint(4, "handle id")
		if err != nil {
			return value.HandleID{}, err
		}
		return value.NumericHandle(uint32(id)), nil
	case 0x01:
		name, err := d.readString("handle name")
		if err != nil {
			return value.HandleID{}, err
		}
		return value.NamedHandle(name), nil
	}
	return value.HandleID{}, MalformedEncodingError{
		Offset: d.pos - 1,
		Detail: fmt.Sprintf("invalid handle variant 0x%02x", variant),
	}
}

func (d *decoder) decodeLocalID() (value.Value, error) {
	variant, err := d.readByte("local id variant")
	if err != nil {
		return nil, err
	}
	switch value.LocalIDKind(variant) {
	case value.LocalIDString:
		s, err := d.readString("string local id")
		if err != nil {
			return nil, err
		}
		return value.NonFungibleLocalID{ID: value.StringLocalID{Value: s}}, nil
	case value.LocalIDInteger:
		n, err := d.readUint(8, "integer local id")
		if err != nil {
			return nil, err
		}
		return value.NonFungibleLocalID{ID: value.IntegerLocalID{Value: n}}, nil
	case value.LocalIDBytes:
		length, err := d.readLength("bytes local id length")
		if err != nil {
			return nil, err
		}
		raw, err := d.readBytes(length, "bytes local id")
		if err != nil {
			return nil, err
		}
		ret := make([]byte, length)
		copy(ret, raw)
		return value.NonFungibleLocalID{ID: value.BytesLocalID{Value: ret}}, nil
	case value.LocalIDUUID:
		raw, err := d.readBytes(16, "uuid local id")
		if err != nil {
			return nil, err
		}
		var id uuid.UUID
		copy(id[:], raw)
		return value.NonFungibleLocalID{ID: value.UUIDLocalID{Value: id}}, nil
	}
	return nil, MalformedEncodingError{
		Offset: d.pos - 1,
		Detail: fmt.Sprintf("invalid local id variant 0x%02x", variant),
	}
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) readByte(what string) (byte, error) {
	if d.remaining() < 1 {
		return 0, MalformedEncodingError{
			Offset: d.pos,
			Detail: "unexpected end of input reading " + what,
		}
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(n int, what string) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, MalformedEncodingError{
			Offset: d.pos,
			Detail: "unexpected end of input reading " + what,
		}
	}
	raw := d.data[d.pos : d.pos+n]
	d.pos += n
	return raw, nil
}

func (d *decoder) readUint(width int, what string) (uint64, error) {
	raw, err := d.readBytes(width, what)
	if err != nil {
		return 0, err
	}
	var scratch [8]byte
	copy(scratch[:], raw)
	return binary.LittleEndian.Uint64(scratch[:]), nil
}

// readLength reads a u32 length prefix and sanity-checks it against the
// remaining buffer so a corrupt prefix cannot trigger a huge allocation:
// every element body is at least one byte
func (d *decoder) readLength(what string) (int, error) {
	n, err := d.readUint(4, what)
	if err != nil {
		return 0, err
	}
	if n > uint64(d.remaining()) {
		return 0, MalformedEncodingError{
			Offset: d.pos - 4,
			Detail: fmt.Sprintf("%s %d overruns remaining %d bytes", what, n, d.remaining()),
		}
	}
	return int(n), nil
}

func (d *decoder) readString(what string) (string, error) {
	length, err := d.readLength(what + " length")
	if err != nil {
		return "", err
	}
	raw, err := d.readBytes(length, what)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", MalformedEncodingError{
			Offset: d.pos - length,
			Detail: what + " is not valid UTF-8",
		}
	}
	return string(raw), nil
}

// leToBigInt interprets little-endian bytes as an integer, two's complement
// when signed
func leToBigInt(data []byte, signed bool) *big.Int {
	be := make([]byte, len(data))
	for i := range data {
		be[len(data)-1-i] = data[i]
	}
	num := new(big.Int).SetBytes(be)
	if signed && len(data) > 0 && data[len(data)-1]&0x80 != 0 {
		num.Sub(num, new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8)))
	}
	return num
}
