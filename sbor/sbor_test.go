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
	"encoding/hex"
	"errors"
	"testing"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/value"
)

func TestEncodeFixedVectors(t *testing.T) {
	testDefs := []struct {
		value       value.Value
		expectedHex string
	}{
		// 300 as little-endian u16 behind the U16 tag
		{value.U16{Value: 300}, "082c01"},
		{value.Bool{Value: true}, "0101"},
		{value.Bool{Value: false}, "0100"},
		{value.U8{Value: 0xff}, "07ff"},
		{value.I8{Value: -1}, "02ff"},
		{value.U32{Value: 1}, "0901000000"},
		{value.String{Value: "hi"}, "0c020000006869"},
		{
			value.Array{
				ElementKind: value.KindU8,
				Elements: []value.Value{
					value.U8{Value: 1},
					value.U8{Value: 2},
				},
			},
			"20070200000001" + "02",
		},
		{
			value.Tuple{Elements: []value.Value{value.U16{Value: 300}}},
			"2101000000082c01",
		},
		{
			value.Enum{Discriminant: 2, Fields: []value.Value{value.Bool{Value: true}}},
			"220201000000" + "0101",
		},
	}
	for _, testDef := range testDefs {
		encoded, err := Encode(testDef.value)
		if err != nil {
			t.Fatalf("failed to encode %#v: %s", testDef.value, err)
		}
		if hex.EncodeToString(encoded) != testDef.expectedHex {
			t.Fatalf(
				"encoding did not match expected value, got: %s, wanted: %s",
				hex.EncodeToString(encoded),
				testDef.expectedHex,
			)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("failed to decode %s: %s", testDef.expectedHex, err)
		}
		if !value.Equal(testDef.value, decoded) {
			t.Fatalf(
				"decode mismatch: started with %#v, got %#v",
				testDef.value,
				decoded,
			)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	decimal, err := value.NewDecimal("-123.456")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	precise, err := value.NewPreciseDecimal("0.000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	i128, err := value.NewI128("-170141183460469231731687303715884105728")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	u128, err := value.NewU128("340282366920938463463374607431768211455")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	addr, err := address.NewAddress(
		address.EntityAccountComponent,
		address.NetworkMainnet.ID,
		make([]byte, address.PayloadSize),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	testDefs := []value.Value{
		value.I16{Value: -32768},
		value.I32{Value: -2147483648},
		value.I64{Value: -9223372036854775808},
		value.U64{Value: 18446744073709551615},
		i128,
		u128,
		decimal,
		precise,
		value.String{Value: ""},
		value.String{Value: "ünïcode ☃"},
		value.Bytes{Value: []byte{}},
		value.Bytes{Value: []byte{0, 1, 2, 3}},
		value.ComponentAddress{Address: addr},
		value.Own{ID: [32]byte{0xaa}},
		value.Bucket{Identifier: value.NamedHandle("b")},
		value.Bucket{Identifier: value.NumericHandle(7)},
		value.Proof{Identifier: value.NamedHandle("p")},
		value.Expression{Value: value.ExpressionEntireAuthZone},
		value.Blob{Hash: [32]byte{0x11}},
		value.NonFungibleLocalID{ID: value.StringLocalID{Value: "hero"}},
		value.NonFungibleLocalID{ID: value.IntegerLocalID{Value: 42}},
		value.NonFungibleLocalID{ID: value.BytesLocalID{Value: []byte{1}}},
		value.Hash{Value: [32]byte{0x22}},
		value.Ed25519PublicKey{Value: [32]byte{0x33}},
		value.Secp256k1PublicKey{Value: [33]byte{0x02}},
		value.Map{
			KeyKind:   value.KindString,
			ValueKind: value.KindU64,
			Entries: []value.MapEntry{
				{Key: value.String{Value: "a"}, Value: value.U64{Value: 1}},
				{Key: value.String{Value: "b"}, Value: value.U64{Value: 2}},
			},
		},
		value.Tuple{Elements: []value.Value{
			value.Enum{
				Discriminant: 1,
				Fields: []value.Value{
					value.Array{
						ElementKind: value.KindU16,
						Elements: []value.Value{
							value.U16{Value: 300},
							value.U16{Value: 0},
						},
					},
				},
			},
		}},
	}
	for _, testDef := range testDefs {
		encoded, err := Encode(testDef)
		if err != nil {
			t.Fatalf("failed to encode %#v: %s", testDef, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf(
				"failed to decode %x (from %#v): %s",
				encoded,
				testDef,
				err,
			)
		}
		if !value.Equal(testDef, decoded) {
			t.Fatalf(
				"round trip mismatch: started with %#v, got %#v",
				testDef,
				decoded,
			)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	testDefs := []struct {
		encodedHex string
	}{
		// empty input
		{""},
		// u16 missing its second byte
		{"082c"},
		// string length prefix overruns the buffer
		{"0c050000006869"},
		// array declares three elements, carries two
		{"2007030000000102"},
		// tuple declares one element, carries none
		{"2101000000"},
		// address body cut short
		{"81010300"},
	}
	for _, testDef := range testDefs {
		raw, err := hex.DecodeString(testDef.encodedHex)
		if err != nil {
			t.Fatalf("failed to decode test hex: %s", err)
		}
		_, err = Decode(raw)
		if err == nil {
			t.Fatalf("expected error decoding %s", testDef.encodedHex)
		}
		if !errors.As(err, new(MalformedEncodingError)) {
			t.Fatalf(
				"unexpected error type decoding %s: %s",
				testDef.encodedHex,
				err,
			)
		}
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0x7f, 0x00})
	if err == nil {
		t.Fatalf("expected error for unknown tag")
	}
	var tagErr UnknownTypeTagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("unexpected error type: %s", err)
	}
	if tagErr.Tag != 0x7f {
		t.Fatalf("error reported tag %#02x, wanted 0x7f", tagErr.Tag)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	raw, err := hex.DecodeString("082c0100")
	if err != nil {
		t.Fatalf("failed to decode test hex: %s", err)
	}
	if _, err := Decode(raw); err == nil {
		t.Fatalf("expected error for trailing bytes")
	}
}

func TestDecodePrefix(t *testing.T) {
	// a u16 value followed by unrelated bytes, as when embedded in a larger
	// buffer
	raw, err := hex.DecodeString("082c01deadbeef")
	if err != nil {
		t.Fatalf("failed to decode test hex: %s", err)
	}
	v, consumed, err := DecodePrefix(raw)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if consumed != 3 {
		t.Fatalf("consumed %d bytes, wanted 3", consumed)
	}
	if !value.Equal(v, value.U16{Value: 300}) {
		t.Fatalf("decoded %#v, wanted U16(300)", v)
	}
}

func TestDepthLimit(t *testing.T) {
	v := value.Value(value.U8{Value: 1})
	for n := 0; n < value.MaxDepth; n++ {
		v = value.Tuple{Elements: []value.Value{v}}
	}
	if _, err := Encode(v); err == nil {
		t.Fatalf("expected DepthExceededError on encode")
	} else if !errors.As(err, new(value.DepthExceededError)) {
		t.Fatalf("unexpected error type: %s", err)
	}

	// build the same shape on the wire: tuple tag + count 1, repeated past
	// the limit, with a u8 leaf
	var raw []byte
	for n := 0; n < value.MaxDepth+1; n++ {
		raw = append(raw, 0x21, 0x01, 0x00, 0x00, 0x00)
	}
	raw = append(raw, 0x07, 0x01)
	if _, err := Decode(raw); err == nil {
		t.Fatalf("expected DepthExceededError on decode")
	} else if !errors.As(err, new(value.DepthExceededError)) {
		t.Fatalf("unexpected error type: %s", err)
	}
}

func TestEncodeRejectsViolatedNesting(t *testing.T) {
	_, err := Encode(value.Array{
		ElementKind: value.KindU8,
		Elements:    []value.Value{value.U16{Value: 1}},
	})
	if err == nil {
		t.Fatalf("expected error for mismatched element kind")
	}
	if !errors.As(err, new(value.TypeMismatchError)) {
		t.Fatalf("unexpected error type: %s", err)
	}

	_, err = Encode(value.Map{
		KeyKind:   value.KindString,
		ValueKind: value.KindU8,
		Entries: []value.MapEntry{
			{Key: value.String{Value: "a"}, Value: value.U8{Value: 1}},
			{Key: value.String{Value: "a"}, Value: value.U8{Value: 2}},
		},
	})
	if err == nil {
		t.Fatalf("expected error for duplicate map key")
	}
	if !errors.As(err, new(value.TypeMismatchError)) {
		t.Fatalf("unexpected error type: %s", err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := value.Map{
		KeyKind:   value.KindString,
		ValueKind: value.KindU8,
		Entries: []value.MapEntry{
			{Key: value.String{Value: "x"}, Value: value.U8{Value: 1}},
		},
	}
	first, err := Encode(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := Encode(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hex.EncodeToString(first) != hex.EncodeToString(second) {
		t.Fatalf("encoding is not deterministic")
	}
}
