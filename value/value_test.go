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
	"testing"
)

func TestEqualIsKindAware(t *testing.T) {
	testDefs := []struct {
		a        Value
		b        Value
		expected bool
	}{
		{U8{Value: 7}, U8{Value: 7}, true},
		// same numeric value, different width
		{U8{Value: 7}, U16{Value: 7}, false},
		{I32{Value: -1}, I32{Value: -1}, true},
		{I32{Value: -1}, I64{Value: -1}, false},
		{String{Value: "abc"}, String{Value: "abc"}, true},
		{String{Value: "abc"}, String{Value: "abd"}, false},
		{Bool{Value: true}, Bool{Value: true}, true},
		{Bool{Value: true}, U8{Value: 1}, false},
	}
	for _, testDef := range testDefs {
		if got := Equal(testDef.a, testDef.b); got != testDef.expected {
			t.Fatalf(
				"Equal(%#v, %#v) = %v, wanted %v",
				testDef.a,
				testDef.b,
				got,
				testDef.expected,
			)
		}
	}
}

func TestEqualComposites(t *testing.T) {
	a := Tuple{Elements: []Value{
		U16{Value: 300},
		Array{
			ElementKind: KindU8,
			Elements:    []Value{U8{Value: 1}, U8{Value: 2}},
		},
	}}
	b := Tuple{Elements: []Value{
		U16{Value: 300},
		Array{
			ElementKind: KindU8,
			Elements:    []Value{U8{Value: 1}, U8{Value: 2}},
		},
	}}
	if !Equal(a, b) {
		t.Fatalf("structurally equal tuples compared unequal")
	}
	c := Tuple{Elements: []Value{
		U16{Value: 300},
		Array{
			ElementKind: KindU8,
			Elements:    []Value{U8{Value: 1}, U8{Value: 3}},
		},
	}}
	if Equal(a, c) {
		t.Fatalf("tuples with different elements compared equal")
	}
}

func TestEqualMap(t *testing.T) {
	a := Map{
		KeyKind:   KindString,
		ValueKind: KindU8,
		Entries: []MapEntry{
			{Key: String{Value: "x"}, Value: U8{Value: 1}},
			{Key: String{Value: "y"}, Value: U8{Value: 2}},
		},
	}
	b := Map{
		KeyKind:   KindString,
		ValueKind: KindU8,
		Entries: []MapEntry{
			{Key: String{Value: "x"}, Value: U8{Value: 1}},
			{Key: String{Value: "y"}, Value: U8{Value: 2}},
		},
	}
	if !Equal(a, b) {
		t.Fatalf("equal maps compared unequal")
	}
	// entry order is significant
	c := Map{
		KeyKind:   KindString,
		ValueKind: KindU8,
		Entries: []MapEntry{
			{Key: String{Value: "y"}, Value: U8{Value: 2}},
			{Key: String{Value: "x"}, Value: U8{Value: 1}},
		},
	}
	if Equal(a, c) {
		t.Fatalf("maps with different entry order compared equal")
	}
}

func TestDepth(t *testing.T) {
	testDefs := []struct {
		value    Value
		expected int
	}{
		{U8{Value: 1}, 1},
		{Tuple{Elements: []Value{U8{Value: 1}}}, 2},
		{
			Tuple{Elements: []Value{
				Array{ElementKind: KindU8, Elements: []Value{U8{Value: 1}}},
			}},
			3,
		},
		{
			Enum{
				Discriminant: 0,
				Fields: []Value{
					Tuple{Elements: []Value{String{Value: "x"}}},
				},
			},
			3,
		},
	}
	for _, testDef := range testDefs {
		if got := Depth(testDef.value); got != testDef.expected {
			t.Fatalf(
				"Depth(%#v) = %d, wanted %d",
				testDef.value,
				got,
				testDef.expected,
			)
		}
	}
}

func TestDepthDeepNesting(t *testing.T) {
	v := Value(U8{Value: 1})
	for n := 0; n < MaxDepth+5; n++ {
		v = Tuple{Elements: []Value{v}}
	}
	if got := Depth(v); got != MaxDepth+6 {
		t.Fatalf("Depth = %d, wanted %d", got, MaxDepth+6)
	}
}

func TestSize(t *testing.T) {
	v := Tuple{Elements: []Value{
		U8{Value: 1},
		Map{
			KeyKind:   KindString,
			ValueKind: KindU8,
			Entries: []MapEntry{
				{Key: String{Value: "x"}, Value: U8{Value: 1}},
			},
		},
	}}
	// tuple + u8 + map + key + value
	if got := Size(v); got != 5 {
		t.Fatalf("Size = %d, wanted 5", got)
	}
}
