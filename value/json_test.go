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
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lumenlabs-io/golumen/address"
)

func TestMarshalFixedForms(t *testing.T) {
	decimal, err := NewDecimal("1.50")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	i128, err := NewI128("-170141183460469231731687303715884105728")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	testDefs := []struct {
		value        Value
		expectedJson string
	}{
		{U16{Value: 300}, `{"kind":"U16","value":"300"}`},
		{U64{Value: 18446744073709551615}, `{"kind":"U64","value":"18446744073709551615"}`},
		{I8{Value: -5}, `{"kind":"I8","value":"-5"}`},
		{Bool{Value: true}, `{"kind":"Bool","value":true}`},
		{String{Value: "hello"}, `{"kind":"String","value":"hello"}`},
		// trailing zero normalized
		{decimal, `{"kind":"Decimal","value":"1.5"}`},
		{i128, `{"kind":"I128","value":"-170141183460469231731687303715884105728"}`},
		{Bytes{Value: []byte{0xde, 0xad}}, `{"kind":"Bytes","value":"dead"}`},
		{
			Array{ElementKind: KindU8, Elements: []Value{U8{Value: 1}, U8{Value: 2}}},
			`{"kind":"Array","elementKind":"U8","elements":[{"kind":"U8","value":"1"},{"kind":"U8","value":"2"}]}`,
		},
		{
			Enum{Discriminant: 1, Fields: []Value{U8{Value: 9}}},
			`{"kind":"Enum","variant":1,"fields":[{"kind":"U8","value":"9"}]}`,
		},
		{
			Bucket{Identifier: NamedHandle("xrd_payment")},
			`{"kind":"Bucket","identifier":{"kind":"String","value":"xrd_payment"}}`,
		},
		{
			Expression{Value: ExpressionEntireWorktop},
			`{"kind":"Expression","value":"ENTIRE_WORKTOP"}`,
		},
	}
	for _, testDef := range testDefs {
		jsonData, err := Marshal(testDef.value)
		if err != nil {
			t.Fatalf("failed to marshal %#v: %s", testDef.value, err)
		}
		if string(jsonData) != testDef.expectedJson {
			t.Fatalf(
				"JSON did not match expected value, got: %s, wanted: %s",
				jsonData,
				testDef.expectedJson,
			)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	decimal, err := NewDecimal("-0.000000000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	precise, err := NewPreciseDecimal("123.456")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	u128, err := NewU128("340282366920938463463374607431768211455")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	addr, err := address.NewAddress(
		address.EntityResource,
		address.NetworkMainnet.ID,
		make([]byte, address.PayloadSize),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	testDefs := []Value{
		Bool{Value: false},
		I64{Value: -9223372036854775808},
		u128,
		decimal,
		precise,
		String{Value: "with \"quotes\" and \n newline"},
		ResourceAddress{Address: addr},
		Own{ID: [32]byte{1, 2, 3}},
		Bucket{Identifier: NumericHandle(42)},
		Proof{Identifier: NamedHandle("p")},
		Expression{Value: ExpressionEntireAuthZone},
		Blob{Hash: [32]byte{0xff}},
		NonFungibleLocalID{ID: StringLocalID{Value: "hero_1"}},
		NonFungibleLocalID{ID: IntegerLocalID{Value: 12345}},
		NonFungibleLocalID{ID: BytesLocalID{Value: []byte{9, 9}}},
		NonFungibleLocalID{ID: UUIDLocalID{
			Value: uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
		}},
		Hash{Value: [32]byte{7}},
		Ed25519PublicKey{Value: [32]byte{4}},
		Secp256k1PublicKey{Value: [33]byte{2}},
		Map{
			KeyKind:   KindString,
			ValueKind: KindDecimal,
			Entries: []MapEntry{
				{Key: String{Value: "price"}, Value: decimal},
			},
		},
		Tuple{Elements: []Value{
			U8{Value: 1},
			Enum{Discriminant: 0},
			Array{ElementKind: KindString, Elements: []Value{
				String{Value: "a"},
			}},
		}},
	}
	for _, testDef := range testDefs {
		jsonData, err := Marshal(testDef)
		if err != nil {
			t.Fatalf("failed to marshal %#v: %s", testDef, err)
		}
		decoded, err := Unmarshal(jsonData)
		if err != nil {
			t.Fatalf("failed to unmarshal %s: %s", jsonData, err)
		}
		if !Equal(testDef, decoded) {
			t.Fatalf(
				"round trip mismatch: started with %#v, got %#v (JSON: %s)",
				testDef,
				decoded,
				jsonData,
			)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	testDefs := []struct {
		jsonData string
		expected any
	}{
		{`{"kind":"Quaternion","value":"1"}`, new(UnrecognizedKindError)},
		{`{"kind":"U8","value":"300"}`, new(NumericOverflowError)},
		{`{"kind":"I16","value":"-32769"}`, new(NumericOverflowError)},
		{`{"kind":"U16","value":"abc"}`, new(TypeMismatchError)},
		{`{"kind":"Bytes","value":"zz"}`, new(TypeMismatchError)},
		{`{"kind":"Decimal","value":"1.2.3"}`, new(TypeMismatchError)},
		{
			`{"kind":"Array","elementKind":"U8","elements":[{"kind":"U16","value":"1"}]}`,
			new(TypeMismatchError),
		},
	}
	for _, testDef := range testDefs {
		_, err := Unmarshal([]byte(testDef.jsonData))
		if err == nil {
			t.Fatalf("expected error decoding %s", testDef.jsonData)
		}
		var matched bool
		switch target := testDef.expected.(type) {
		case *UnrecognizedKindError:
			matched = errors.As(err, target)
		case *NumericOverflowError:
			matched = errors.As(err, target)
		case *TypeMismatchError:
			matched = errors.As(err, target)
		}
		if !matched {
			t.Fatalf(
				"unexpected error type decoding %s: %s",
				testDef.jsonData,
				err,
			)
		}
	}
}

func TestMarshalDepthLimit(t *testing.T) {
	v := Value(U8{Value: 1})
	for n := 0; n < MaxDepth; n++ {
		v = Tuple{Elements: []Value{v}}
	}
	if _, err := Marshal(v); err == nil {
		t.Fatalf("expected DepthExceededError")
	} else if !errors.As(err, new(DepthExceededError)) {
		t.Fatalf("unexpected error type: %s", err)
	}
}

func TestUnmarshalDepthLimit(t *testing.T) {
	jsonData := ""
	for n := 0; n < MaxDepth+1; n++ {
		jsonData += `{"kind":"Tuple","elements":[`
	}
	jsonData += `{"kind":"U8","value":"1"}`
	for n := 0; n < MaxDepth+1; n++ {
		jsonData += `]}`
	}
	_, err := Unmarshal([]byte(jsonData))
	if err == nil {
		t.Fatalf("expected DepthExceededError")
	}
	if !errors.As(err, new(DepthExceededError)) {
		t.Fatalf("unexpected error type: %s", err)
	}
}
