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
	"strconv"
)

// 128-bit two's-complement bounds
var (
	i128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	i128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	u128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// NewI128 parses a decimal string into an I128, enforcing the 128-bit
// signed range
func NewI128(s string) (I128, error) {
	num, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return I128{}, TypeMismatchError{Kind: KindI128, Detail: "invalid integer string " + strconv.Quote(s)}
	}
	if num.Cmp(i128Min) < 0 || num.Cmp(i128Max) > 0 {
		return I128{}, NumericOverflowError{Kind: KindI128, Value: s}
	}
	return I128{Value: num}, nil
}

// NewU128 parses a decimal string into a U128, enforcing the 128-bit
// unsigned range
func NewU128(s string) (U128, error) {
	num, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U128{}, TypeMismatchError{Kind: KindU128, Detail: "invalid integer string " + strconv.Quote(s)}
	}
	if num.Sign() < 0 || num.Cmp(u128Max) > 0 {
		return U128{}, NumericOverflowError{Kind: KindU128, Value: s}
	}
	return U128{Value: num}, nil
}

// ParseInteger parses a decimal string into the integer value of the given
// kind, rejecting out-of-range values with NumericOverflowError. Both the
// JSON codec and the manifest literal grammar route integer parsing through
// here so the two representations agree on every edge case
func ParseInteger(kind Kind, s string) (Value, error) {
	switch kind {
	case KindI128:
		v, err := NewI128(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	case KindU128:
		v, err := NewU128(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	signed := false
	var bits int
	switch kind {
	case KindI8:
		signed, bits = true, 8
	case KindI16:
		signed, bits = true, 16
	case KindI32:
		signed, bits = true, 32
	case KindI64:
		signed, bits = true, 64
	case KindU8:
		bits = 8
	case KindU16:
		bits = 16
	case KindU32:
		bits = 32
	case KindU64:
		bits = 64
	default:
		return nil, TypeMismatchError{Kind: kind, Detail: "not an integer kind"}
	}
	if signed {
		num, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, integerParseError(kind, s, err)
		}
		switch kind {
		case KindI8:
			return I8{Value: int8(num)}, nil
		case KindI16:
			return I16{Value: int16(num)}, nil
		case KindI32:
			return I32{Value: int32(num)}, nil
		default:
			return I64{Value: num}, nil
		}
	}
	num, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return nil, integerParseError(kind, s, err)
	}
	switch kind {
	case KindU8:
		return U8{Value: uint8(num)}, nil
	case KindU16:
		return U16{Value: uint16(num)}, nil
	case KindU32:
		return U32{Value: uint32(num)}, nil
	default:
		return U64{Value: num}, nil
	}
}

func integerParseError(kind Kind, s string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return NumericOverflowError{Kind: kind, Value: s}
	}
	return TypeMismatchError{Kind: kind, Detail: "invalid integer string " + strconv.Quote(s)}
}

// IsInteger reports whether the kind is one of the fixed-width integer kinds
func (k Kind) IsInteger() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64, KindI128,
		KindU8, KindU16, KindU32, KindU64, KindU128:
		return true
	}
	return false
}
