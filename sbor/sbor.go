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

// Package sbor implements the canonical compact binary serialization for
// ledger values. The byte layout is a fixed wire contract: one discriminant
// byte per kind, little-endian fixed-width numerics, and u32 length prefixes
// ahead of composite elements so a single left-to-right pass can decode any
// payload
package sbor

import (
	"github.com/lumenlabs-io/golumen/value"
)

// Type discriminant bytes. These values are the external contract with the
// ledger and must not be changed
const (
	TagBool byte = 0x01

	TagI8   byte = 0x02
	TagI16  byte = 0x03
	TagI32  byte = 0x04
	TagI64  byte = 0x05
	TagI128 byte = 0x06
	TagU8   byte = 0x07
	TagU16  byte = 0x08
	TagU32  byte = 0x09
	TagU64  byte = 0x0a
	TagU128 byte = 0x0b

	TagString byte = 0x0c

	TagArray byte = 0x20
	TagTuple byte = 0x21
	TagEnum  byte = 0x22
	TagMap   byte = 0x23

	TagPackageAddress   byte = 0x80
	TagComponentAddress byte = 0x81
	TagResourceAddress  byte = 0x82

	TagOwn        byte = 0x90
	TagBucket     byte = 0x91
	TagProof      byte = 0x92
	TagExpression byte = 0x93
	TagBlob       byte = 0x94

	TagDecimal        byte = 0xa0
	TagPreciseDecimal byte = 0xa1

	TagNonFungibleLocalID byte = 0xb0

	TagBytes byte = 0xb8

	TagHash               byte = 0xc0
	TagEd25519PublicKey   byte = 0xc1
	TagSecp256k1PublicKey byte = 0xc2
)

var kindTags = map[value.Kind]byte{
	value.KindBool:               TagBool,
	value.KindI8:                 TagI8,
	value.KindI16:                TagI16,
	value.KindI32:                TagI32,
	value.KindI64:                TagI64,
	value.KindI128:               TagI128,
	value.KindU8:                 TagU8,
	value.KindU16:                TagU16,
	value.KindU32:                TagU32,
	value.KindU64:                TagU64,
	value.KindU128:               TagU128,
	value.KindString:             TagString,
	value.KindArray:              TagArray,
	value.KindTuple:              TagTuple,
	value.KindEnum:               TagEnum,
	value.KindMap:                TagMap,
	value.KindPackageAddress:     TagPackageAddress,
	value.KindComponentAddress:   TagComponentAddress,
	value.KindResourceAddress:    TagResourceAddress,
	value.KindOwn:                TagOwn,
	value.KindBucket:             TagBucket,
	value.KindProof:              TagProof,
	value.KindExpression:         TagExpression,
	value.KindBlob:               TagBlob,
	value.KindDecimal:            TagDecimal,
	value.KindPreciseDecimal:     TagPreciseDecimal,
	value.KindNonFungibleLocalID: TagNonFungibleLocalID,
	value.KindBytes:              TagBytes,
	value.KindHash:               TagHash,
	value.KindEd25519PublicKey:   TagEd25519PublicKey,
	value.KindSecp256k1PublicKey: TagSecp256k1PublicKey,
}

var tagKinds = func() map[byte]value.Kind {
	ret := make(map[byte]value.Kind, len(kindTags))
	for kind, tag := range kindTags {
		ret[tag] = kind
	}
	return ret
}()

// TagForKind returns the discriminant byte for a value kind
func TagForKind(kind value.Kind) (byte, bool) {
	tag, ok := kindTags[kind]
	return tag, ok
}

// KindForTag returns the value kind for a discriminant byte
func KindForTag(tag byte) (value.Kind, bool) {
	kind, ok := tagKinds[tag]
	return kind, ok
}
