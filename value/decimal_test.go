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
	"math/big"
	"strings"
	"testing"
)

func TestDecimalParseFormat(t *testing.T) {
	testDefs := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"1", "1"},
		{"-1", "-1"},
		{"1.5", "1.5"},
		// trailing zeros normalize away
		{"1.50", "1.5"},
		{"1.500000000000000000", "1.5"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"-0.5", "-0.5"},
		{"123456789.987654321", "123456789.987654321"},
		{"-0.000", "0"},
	}
	for _, testDef := range testDefs {
		d, err := NewDecimal(testDef.input)
		if err != nil {
			t.Fatalf("failed to parse decimal %q: %s", testDef.input, err)
		}
		if d.String() != testDef.expected {
			t.Fatalf(
				"decimal %q formatted as %q, wanted %q",
				testDef.input,
				d.String(),
				testDef.expected,
			)
		}
	}
}

func TestDecimalParseErrors(t *testing.T) {
	testDefs := []struct {
		input    string
		overflow bool
	}{
		{"", false},
		{"abc", false},
		{"1.2.3", false},
		{"1,5", false},
		// 19 fractional digits exceeds the scale
		{"0.0000000000000000001", true},
		// beyond the 192-bit scaled range
		{strings.Repeat("9", 60), true},
	}
	for _, testDef := range testDefs {
		_, err := NewDecimal(testDef.input)
		if err == nil {
			t.Fatalf("expected error parsing decimal %q", testDef.input)
		}
		if testDef.overflow {
			if !errors.As(err, new(NumericOverflowError)) {
				t.Fatalf(
					"expected NumericOverflowError for %q, got: %s",
					testDef.input,
					err,
				)
			}
		} else {
			if !errors.As(err, new(TypeMismatchError)) {
				t.Fatalf(
					"expected TypeMismatchError for %q, got: %s",
					testDef.input,
					err,
				)
			}
		}
	}
}

func TestDecimalScaledRoundTrip(t *testing.T) {
	d, err := NewDecimal("1.5")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := new(big.Int).Mul(
		big.NewInt(15),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil),
	)
	if d.Num.Cmp(expected) != 0 {
		t.Fatalf("scaled integer %s, wanted %s", d.Num, expected)
	}
	back, err := NewDecimalFromScaled(d.Num)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if back.String() != "1.5" {
		t.Fatalf("round-tripped decimal formatted as %q", back.String())
	}
}

func TestPreciseDecimal(t *testing.T) {
	d, err := NewPreciseDecimal("0.5")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.String() != "0.5" {
		t.Fatalf("precise decimal formatted as %q, wanted 0.5", d.String())
	}
	// 36 fractional digits are representable
	small := "0." + strings.Repeat("0", 35) + "1"
	d2, err := NewPreciseDecimal(small)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d2.String() != small {
		t.Fatalf("precise decimal formatted as %q, wanted %q", d2.String(), small)
	}
	// 37 are not
	if _, err := NewPreciseDecimal("0." + strings.Repeat("0", 36) + "1"); err == nil {
		t.Fatalf("expected error for 37 fractional digits")
	}
}

func TestInt128Bounds(t *testing.T) {
	maxI128 := "170141183460469231731687303715884105727"
	minI128 := "-170141183460469231731687303715884105728"
	maxU128 := "340282366920938463463374607431768211455"
	if _, err := NewI128(maxI128); err != nil {
		t.Fatalf("failed to parse i128 max: %s", err)
	}
	if _, err := NewI128(minI128); err != nil {
		t.Fatalf("failed to parse i128 min: %s", err)
	}
	if _, err := NewU128(maxU128); err != nil {
		t.Fatalf("failed to parse u128 max: %s", err)
	}
	if _, err := NewI128("170141183460469231731687303715884105728"); err == nil {
		t.Fatalf("expected overflow above i128 max")
	}
	if _, err := NewU128("-1"); err == nil {
		t.Fatalf("expected error for negative u128")
	}
}

func TestParseInteger(t *testing.T) {
	v, err := ParseInteger(KindU16, "300")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !Equal(v, U16{Value: 300}) {
		t.Fatalf("parsed %#v, wanted U16(300)", v)
	}
	if _, err := ParseInteger(KindU8, "300"); err == nil {
		t.Fatalf("expected overflow parsing 300 as u8")
	}
	if _, err := ParseInteger(KindI8, "-129"); err == nil {
		t.Fatalf("expected overflow parsing -129 as i8")
	}
	if _, err := ParseInteger(KindU8, "1.5"); err == nil {
		t.Fatalf("expected error parsing non-integer text")
	}
}
