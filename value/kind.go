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

// Kind identifies the semantic kind of a Value. The set of kinds is closed:
// codecs match exhaustively on it, and adding a kind is a single-point change
// checked at compile time
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindString
	KindEnum
	KindArray
	KindTuple
	KindMap
	KindDecimal
	KindPreciseDecimal
	KindPackageAddress
	KindComponentAddress
	KindResourceAddress
	KindOwn
	KindBucket
	KindProof
	KindExpression
	KindBlob
	KindBytes
	KindNonFungibleLocalID
	KindHash
	KindEd25519PublicKey
	KindSecp256k1PublicKey
)

var kindNames = map[Kind]string{
	KindBool:               "Bool",
	KindI8:                 "I8",
	KindI16:                "I16",
	KindI32:                "I32",
	KindI64:                "I64",
	KindI128:               "I128",
	KindU8:                 "U8",
	KindU16:                "U16",
	KindU32:                "U32",
	KindU64:                "U64",
	KindU128:               "U128",
	KindString:             "String",
	KindEnum:               "Enum",
	KindArray:              "Array",
	KindTuple:              "Tuple",
	KindMap:                "Map",
	KindDecimal:            "Decimal",
	KindPreciseDecimal:     "PreciseDecimal",
	KindPackageAddress:     "PackageAddress",
	KindComponentAddress:   "ComponentAddress",
	KindResourceAddress:    "ResourceAddress",
	KindOwn:                "Own",
	KindBucket:             "Bucket",
	KindProof:              "Proof",
	KindExpression:         "Expression",
	KindBlob:               "Blob",
	KindBytes:              "Bytes",
	KindNonFungibleLocalID: "NonFungibleLocalId",
	KindHash:               "Hash",
	KindEd25519PublicKey:   "Ed25519PublicKey",
	KindSecp256k1PublicKey: "Secp256k1PublicKey",
}

var kindsByName = func() map[string]Kind {
	ret := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		ret[name] = kind
	}
	return ret
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindByName returns the Kind for a kind name used in the JSON and manifest
// representations. The boolean result reports whether the name is known
func KindByName(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}
