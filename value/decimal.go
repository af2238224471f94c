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
	"math/big"
	"strconv"
	"strings"
)

const (
	// DecimalScale is the number of fractional digits carried by Decimal
	DecimalScale = 18
	// PreciseDecimalScale is the number of fractional digits carried by
	// PreciseDecimal
	PreciseDecimalScale = 36

	// DecimalByteLen is the width of the scaled integer behind Decimal
	DecimalByteLen = 24
	// PreciseDecimalByteLen is the width of the scaled integer behind
	// PreciseDecimal
	PreciseDecimalByteLen = 32
)

// Scaled integer bounds: 192-bit two's complement for Decimal, 256-bit for
// PreciseDecimal
var (
	decimalMax = new(big.Int).Sub(
		new(big.Int).Lsh(big.NewInt(1), DecimalByteLen*8-1),
		big.NewInt(1),
	)
	decimalMin = new(big.Int).Neg(
		new(big.Int).Lsh(big.NewInt(1), DecimalByteLen*8-1),
	)
	preciseDecimalMax = new(big.Int).Sub(
		new(big.Int).Lsh(big.NewInt(1), PreciseDecimalByteLen*8-1),
		big.NewInt(1),
	)
	preciseDecimalMin = new(big.Int).Neg(
		new(big.Int).Lsh(big.NewInt(1), PreciseDecimalByteLen*8-1),
	)
)

// Decimal is a signed fixed-precision decimal with 18 fractional digits,
// carried as its underlying scaled integer
type Decimal struct {
	Num *big.Int
}

// PreciseDecimal is the higher-precision decimal variant with 36 fractional
// digits
type PreciseDecimal struct {
	Num *big.Int
}

// NewDecimal parses a fixed-point decimal string such as "1.5" or "-0.001"
func NewDecimal(s string) (Decimal, error) {
	num, err := parseScaled(s, KindDecimal, DecimalScale, decimalMin, decimalMax)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Num: num}, nil
}

// NewPreciseDecimal parses a fixed-point decimal string into the
// higher-precision variant
func NewPreciseDecimal(s string) (PreciseDecimal, error) {
	num, err := parseScaled(
		s,
		KindPreciseDecimal,
		PreciseDecimalScale,
		preciseDecimalMin,
		preciseDecimalMax,
	)
	if err != nil {
		return PreciseDecimal{}, err
	}
	return PreciseDecimal{Num: num}, nil
}

// NewDecimalFromScaled builds a Decimal directly from its scaled integer
// representation, as found in the binary encoding
func NewDecimalFromScaled(num *big.Int) (Decimal, error) {
	if num.Cmp(decimalMin) < 0 || num.Cmp(decimalMax) > 0 {
		return Decimal{}, NumericOverflowError{Kind: KindDecimal, Value: num.String()}
	}
	return Decimal{Num: new(big.Int).Set(num)}, nil
}

// NewPreciseDecimalFromScaled builds a PreciseDecimal from its scaled
// integer representation
func NewPreciseDecimalFromScaled(num *big.Int) (PreciseDecimal, error) {
	if num.Cmp(preciseDecimalMin) < 0 || num.Cmp(preciseDecimalMax) > 0 {
		return PreciseDecimal{}, NumericOverflowError{
			Kind:  KindPreciseDecimal,
			Value: num.String(),
		}
	}
	return PreciseDecimal{Num: new(big.Int).Set(num)}, nil
}

// String renders the decimal in its normalized fixed-point form: no trailing
// fractional zeros, no fractional part at all for whole numbers
func (d Decimal) String() string {
	return formatScaled(d.Num, DecimalScale)
}

func (d PreciseDecimal) String() string {
	return formatScaled(d.Num, PreciseDecimalScale)
}

func parseScaled(s string, kind Kind, scale int, min, max *big.Int) (*big.Int, error) {
	input := s
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, TypeMismatchError{Kind: kind, Detail: "empty decimal string"}
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, TypeMismatchError{
			Kind:   kind,
			Detail: "invalid decimal string " + strconv.Quote(input),
		}
	}
	if len(fracPart) > scale {
		return nil, NumericOverflowError{Kind: kind, Value: input}
	}
	digits := intPart + fracPart + strings.Repeat("0", scale-len(fracPart))
	num, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, TypeMismatchError{
			Kind:   kind,
			Detail: "invalid decimal string " + strconv.Quote(input),
		}
	}
	if neg {
		num.Neg(num)
	}
	if num.Cmp(min) < 0 || num.Cmp(max) > 0 {
		return nil, NumericOverflowError{Kind: kind, Value: input}
	}
	return num, nil
}

func formatScaled(num *big.Int, scale int) string {
	if num == nil {
		num = new(big.Int)
	}
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	quo, rem := new(big.Int).QuoRem(num, divisor, new(big.Int))
	sign := ""
	if num.Sign() < 0 {
		sign = "-"
		quo.Abs(quo)
		rem.Abs(rem)
	}
	if rem.Sign() == 0 {
		return sign + quo.String()
	}
	frac := rem.String()
	frac = strings.Repeat("0", scale-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	return sign + quo.String() + "." + frac
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
