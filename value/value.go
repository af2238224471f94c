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
	"bytes"
	"math/big"

	"github.com/google/uuid"

	"github.com/lumenlabs-io/golumen/address"
)

// Value is the common intermediate representation shared by the binary codec,
// the JSON codec and the manifest translator. It is a closed tagged union:
// the only implementations are the types in this package. Values own their
// children outright, so a tree can never contain a cycle
type Value interface {
	Kind() Kind

	isValue()
}

type Bool struct {
	Value bool
}

type I8 struct {
	Value int8
}

type I16 struct {
	Value int16
}

type I32 struct {
	Value int32
}

type I64 struct {
	Value int64
}

// I128 holds a signed 128-bit integer. Go has no native 128-bit integer
// type, so the value is carried as a big.Int constrained to the 128-bit
// two's-complement range
type I128 struct {
	Value *big.Int
}

type U8 struct {
	Value uint8
}

type U16 struct {
	Value uint16
}

type U32 struct {
	Value uint32
}

type U64 struct {
	Value uint64
}

// U128 holds an unsigned 128-bit integer as a big.Int constrained to
// [0, 2^128)
type U128 struct {
	Value *big.Int
}

type String struct {
	Value string
}

// Enum is a discriminated variant with an ordered field list
type Enum struct {
	Discriminant uint8
	Fields       []Value
}

// Array is a homogeneous list. Every element must have ElementKind as its
// runtime kind; codecs reject violated nesting
type Array struct {
	ElementKind Kind
	Elements    []Value
}

type Tuple struct {
	Elements []Value
}

type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an ordered key/value association. Keys must be unique within a map
// instance and all keys (values) must match KeyKind (ValueKind)
type Map struct {
	KeyKind   Kind
	ValueKind Kind
	Entries   []MapEntry
}

type PackageAddress struct {
	Address address.Address
}

type ComponentAddress struct {
	Address address.Address
}

type ResourceAddress struct {
	Address address.Address
}

// Own is a handle to a node owned by the enclosing value
type Own struct {
	ID [32]byte
}

// HandleIDKind selects between the two forms a transient bucket/proof
// identifier can take
type HandleIDKind uint8

const (
	HandleIDNumeric HandleIDKind = iota
	HandleIDNamed
)

// HandleID is a transient identifier for a bucket or proof within a single
// manifest. Named identifiers come from manifest text, numeric ones from
// binary payloads
type HandleID struct {
	Kind HandleIDKind
	Name string
	ID   uint32
}

func NamedHandle(name string) HandleID {
	return HandleID{Kind: HandleIDNamed, Name: name}
}

func NumericHandle(id uint32) HandleID {
	return HandleID{Kind: HandleIDNumeric, ID: id}
}

type Bucket struct {
	Identifier HandleID
}

type Proof struct {
	Identifier HandleID
}

// ExpressionKind enumerates the supported manifest expressions
type ExpressionKind uint8

const (
	ExpressionEntireWorktop ExpressionKind = iota
	ExpressionEntireAuthZone
)

type Expression struct {
	Value ExpressionKind
}

// Blob references a binary blob attached to a transaction by its hash
type Blob struct {
	Hash [32]byte
}

type Bytes struct {
	Value []byte
}

// LocalIDKind selects the sub-variant of a non-fungible local id
type LocalIDKind uint8

const (
	LocalIDString LocalIDKind = iota
	LocalIDInteger
	LocalIDBytes
	LocalIDUUID
)

// LocalID is a non-fungible local id, one of four sub-variants
type LocalID interface {
	LocalIDKind() LocalIDKind

	isLocalID()
}

type StringLocalID struct {
	Value string
}

type IntegerLocalID struct {
	Value uint64
}

type BytesLocalID struct {
	Value []byte
}

type UUIDLocalID struct {
	Value uuid.UUID
}

func (l StringLocalID) LocalIDKind() LocalIDKind  { return LocalIDString }
func (l IntegerLocalID) LocalIDKind() LocalIDKind { return LocalIDInteger }
func (l BytesLocalID) LocalIDKind() LocalIDKind   { return LocalIDBytes }
func (l UUIDLocalID) LocalIDKind() LocalIDKind    { return LocalIDUUID }

func (l StringLocalID) isLocalID()  {}
func (l IntegerLocalID) isLocalID() {}
func (l BytesLocalID) isLocalID()   {}
func (l UUIDLocalID) isLocalID()    {}

type NonFungibleLocalID struct {
	ID LocalID
}

type Hash struct {
	Value [32]byte
}

type Ed25519PublicKey struct {
	Value [32]byte
}

type Secp256k1PublicKey struct {
	Value [33]byte
}

func (v Bool) Kind() Kind               { return KindBool }
func (v I8) Kind() Kind                 { return KindI8 }
func (v I16) Kind() Kind                { return KindI16 }
func (v I32) Kind() Kind                { return KindI32 }
func (v I64) Kind() Kind                { return KindI64 }
func (v I128) Kind() Kind               { return KindI128 }
func (v U8) Kind() Kind                 { return KindU8 }
func (v U16) Kind() Kind                { return KindU16 }
func (v U32) Kind() Kind                { return KindU32 }
func (v U64) Kind() Kind                { return KindU64 }
func (v U128) Kind() Kind               { return KindU128 }
func (v String) Kind() Kind             { return KindString }
func (v Enum) Kind() Kind               { return KindEnum }
func (v Array) Kind() Kind              { return KindArray }
func (v Tuple) Kind() Kind              { return KindTuple }
func (v Map) Kind() Kind                { return KindMap }
func (v Decimal) Kind() Kind            { return KindDecimal }
func (v PreciseDecimal) Kind() Kind     { return KindPreciseDecimal }
func (v PackageAddress) Kind() Kind     { return KindPackageAddress }
func (v ComponentAddress) Kind() Kind   { return KindComponentAddress }
func (v ResourceAddress) Kind() Kind    { return KindResourceAddress }
func (v Own) Kind() Kind                { return KindOwn }
func (v Bucket) Kind() Kind             { return KindBucket }
func (v Proof) Kind() Kind              { return KindProof }
func (v Expression) Kind() Kind         { return KindExpression }
func (v Blob) Kind() Kind               { return KindBlob }
func (v Bytes) Kind() Kind              { return KindBytes }
func (v NonFungibleLocalID) Kind() Kind { return KindNonFungibleLocalID }
func (v Hash) Kind() Kind               { return KindHash }
func (v Ed25519PublicKey) Kind() Kind   { return KindEd25519PublicKey }
func (v Secp256k1PublicKey) Kind() Kind { return KindSecp256k1PublicKey }

func (v Bool) isValue()               {}
func (v I8) isValue()                 {}
func (v I16) isValue()                {}
func (v I32) isValue()                {}
func (v I64) isValue()                {}
func (v I128) isValue()               {}
func (v U8) isValue()                 {}
func (v U16) isValue()                {}
func (v U32) isValue()                {}
func (v U64) isValue()                {}
func (v U128) isValue()               {}
func (v String) isValue()             {}
func (v Enum) isValue()               {}
func (v Array) isValue()              {}
func (v Tuple) isValue()              {}
func (v Map) isValue()                {}
func (v Decimal) isValue()            {}
func (v PreciseDecimal) isValue()     {}
func (v PackageAddress) isValue()     {}
func (v ComponentAddress) isValue()   {}
func (v ResourceAddress) isValue()    {}
func (v Own) isValue()                {}
func (v Bucket) isValue()             {}
func (v Proof) isValue()              {}
func (v Expression) isValue()         {}
func (v Blob) isValue()               {}
func (v Bytes) isValue()              {}
func (v NonFungibleLocalID) isValue() {}
func (v Hash) isValue()               {}
func (v Ed25519PublicKey) isValue()   {}
func (v Secp256k1PublicKey) isValue() {}

// Equal reports structural, kind-aware equality. Values of different kinds
// are never equal, even when they hold the same numeric value
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av.Value == b.(Bool).Value
	case I8:
		return av.Value == b.(I8).Value
	case I16:
		return av.Value == b.(I16).Value
	case I32:
		return av.Value == b.(I32).Value
	case I64:
		return av.Value == b.(I64).Value
	case I128:
		return bigIntEqual(av.Value, b.(I128).Value)
	case U8:
		return av.Value == b.(U8).Value
	case U16:
		return av.Value == b.(U16).Value
	case U32:
		return av.Value == b.(U32).Value
	case U64:
		return av.Value == b.(U64).Value
	case U128:
		return bigIntEqual(av.Value, b.(U128).Value)
	case String:
		return av.Value == b.(String).Value
	case Enum:
		bv := b.(Enum)
		if av.Discriminant != bv.Discriminant {
			return false
		}
		return valuesEqual(av.Fields, bv.Fields)
	case Array:
		bv := b.(Array)
		if av.ElementKind != bv.ElementKind {
			return false
		}
		return valuesEqual(av.Elements, bv.Elements)
	case Tuple:
		return valuesEqual(av.Elements, b.(Tuple).Elements)
	case Map:
		bv := b.(Map)
		if av.KeyKind != bv.KeyKind || av.ValueKind != bv.ValueKind {
			return false
		}
		if len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if !Equal(av.Entries[i].Key, bv.Entries[i].Key) ||
				!Equal(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	case Decimal:
		return bigIntEqual(av.Num, b.(Decimal).Num)
	case PreciseDecimal:
		return bigIntEqual(av.Num, b.(PreciseDecimal).Num)
	case PackageAddress:
		return av.Address == b.(PackageAddress).Address
	case ComponentAddress:
		return av.Address == b.(ComponentAddress).Address
	case ResourceAddress:
		return av.Address == b.(ResourceAddress).Address
	case Own:
		return av.ID == b.(Own).ID
	case Bucket:
		return av.Identifier == b.(Bucket).Identifier
	case Proof:
		return av.Identifier == b.(Proof).Identifier
	case Expression:
		return av.Value == b.(Expression).Value
	case Blob:
		return av.Hash == b.(Blob).Hash
	case Bytes:
		return bytes.Equal(av.Value, b.(Bytes).Value)
	case NonFungibleLocalID:
		return localIDEqual(av.ID, b.(NonFungibleLocalID).ID)
	case Hash:
		return av.Value == b.(Hash).Value
	case Ed25519PublicKey:
		return av.Value == b.(Ed25519PublicKey).Value
	case Secp256k1PublicKey:
		return av.Value == b.(Secp256k1PublicKey).Value
	}
	return false
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func bigIntEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

func localIDEqual(a, b LocalID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.LocalIDKind() != b.LocalIDKind() {
		return false
	}
	switch av := a.(type) {
	case StringLocalID:
		return av.Value == b.(StringLocalID).Value
	case IntegerLocalID:
		return av.Value == b.(IntegerLocalID).Value
	case BytesLocalID:
		return bytes.Equal(av.Value, b.(BytesLocalID).Value)
	case UUIDLocalID:
		return av.Value == b.(UUIDLocalID).Value
	}
	return false
}

// Depth returns the nesting depth of the value tree. A leaf has depth 1.
// Codecs use this to pre-validate a tree against the depth limit before
// allocating an encode buffer
func Depth(v Value) int {
	maxChild := 0
	for _, child := range children(v) {
		if d := Depth(child); d > maxChild {
			maxChild = d
		}
	}
	return maxChild + 1
}

// Size returns the total number of nodes in the value tree
func Size(v Value) int {
	total := 1
	for _, child := range children(v) {
		total += Size(child)
	}
	return total
}

func children(v Value) []Value {
	switch tv := v.(type) {
	case Enum:
		return tv.Fields
	case Array:
		return tv.Elements
	case Tuple:
		return tv.Elements
	case Map:
		ret := make([]Value, 0, len(tv.Entries)*2)
		for _, entry := range tv.Entries {
			ret = append(ret, entry.Key, entry.Value)
		}
		return ret
	}
	return nil
}
