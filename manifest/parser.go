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

package manifest

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"

	"github.com/google/uuid"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/value"
)

// ParseOption configures manifest parsing
type ParseOption func(*parser)

// WithAddressDecoder overrides how address literals in manifest text are
// decoded, letting callers route decoding through a caching translator
func WithAddressDecoder(
	fn func(string) (address.Address, error),
) ParseOption {
	return func(p *parser) {
		p.decodeAddress = fn
	}
}

// Parse translates manifest text into a validated instruction list. The
// walk is a single left-to-right pass: each instruction is checked against
// the opcode table and against the handles declared by the instructions
// before it
func Parse(text string, opts ...ParseOption) (Manifest, error) {
	p := &parser{
		lex:           newLexer(text),
		decodeAddress: address.DecodeCurrent,
		scope:         newHandleScope(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.next(); err != nil {
		return Manifest{}, err
	}
	var m Manifest
	for p.tok.typ != tokEOF {
		instr, err := p.parseInstruction()
		if err != nil {
			return Manifest{}, err
		}
		m.Instructions = append(m.Instructions, instr)
	}
	return m, nil
}

type parser struct {
	lex           *lexer
	tok           token
	decodeAddress func(string) (address.Address, error)
	scope         *handleScope
}

func (p *parser) next() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) SyntaxError {
	return SyntaxError{
		Line:   p.tok.line,
		Column: p.tok.column,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (p *parser) expectPunct(s string) error {
	if p.tok.typ != tokPunct || p.tok.text != s {
		return p.errorf("expected %q, got %s", s, p.tok.describe())
	}
	return p.next()
}

func (p *parser) parseInstruction() (Instruction, error) {
	if p.tok.typ != tokIdent {
		return Instruction{}, p.errorf(
			"expected instruction, got %s",
			p.tok.describe(),
		)
	}
	op, ok := OpcodeByName(p.tok.text)
	if !ok {
		return Instruction{}, UnknownInstructionError{Name: p.tok.text}
	}
	if err := p.next(); err != nil {
		return Instruction{}, err
	}
	var args []value.Value
	for !(p.tok.typ == tokPunct && p.tok.text == ";") {
		if p.tok.typ == tokEOF {
			return Instruction{}, p.errorf(
				"unexpected end of input in %s",
				op,
			)
		}
		arg, err := p.parseValue(1)
		if err != nil {
			return Instruction{}, err
		}
		args = append(args, arg)
	}
	if err := p.next(); err != nil {
		return Instruction{}, err
	}
	instr := Instruction{Op: op, Args: args}
	if err := validateArgs(op, args); err != nil {
		return Instruction{}, err
	}
	if err := p.scope.applyInstruction(instr); err != nil {
		return Instruction{}, err
	}
	return instr, nil
}

var integerSuffixes = map[string]value.Kind{
	"i8":   value.KindI8,
	"i16":  value.KindI16,
	"i32":  value.KindI32,
	"i64":  value.KindI64,
	"i128": value.KindI128,
	"u8":   value.KindU8,
	"u16":  value.KindU16,
	"u32":  value.KindU32,
	"u64":  value.KindU64,
	"u128": value.KindU128,
}

// splitIntegerLiteral splits "300u16" into its digits and width suffix
func splitIntegerLiteral(text string) (string, string, bool) {
	i := 0
	if i < len(text) && (text[i] == '-' || text[i] == '+') {
		i++
	}
	start := i
	for i < len(text) && unicode.IsDigit(rune(text[i])) {
		i++
	}
	if i == start || i == len(text) {
		return "", "", false
	}
	return text[:i], text[i:], true
}

func (p *parser) parseValue(depth int) (value.Value, error) {
	if depth > value.MaxDepth {
		return nil, value.DepthExceededError{Limit: value.MaxDepth}
	}
	tok := p.tok
	switch tok.typ {
	case tokString:
		if err := p.next(); err != nil {
			return nil, err
		}
		return value.String{Value: tok.text}, nil
	case tokNumber:
		if err := p.next(); err != nil {
			return nil, err
		}
		digits, suffix, ok := splitIntegerLiteral(tok.text)
		if !ok {
			return nil, SyntaxError{
				Line:   tok.line,
				Column: tok.column,
				Detail: "malformed number literal " + strconv.Quote(tok.text),
			}
		}
		kind, ok := integerSuffixes[suffix]
		if !ok {
			return nil, SyntaxError{
				Line:   tok.line,
				Column: tok.column,
				Detail: "unknown integer width suffix " + strconv.Quote(suffix),
			}
		}
		return value.ParseInteger(kind, digits)
	case tokIdent:
		return p.parseConstructor(tok, depth)
	}
	return nil, p.errorf("expected value, got %s", tok.describe())
}

func (p *parser) parseConstructor(tok token, depth int) (value.Value, error) {
	name := tok.text
	if err := p.next(); err != nil {
		return nil, err
	}
	switch name {
	case "true":
		return value.Bool{Value: true}, nil
	case "false":
		return value.Bool{Value: false}, nil
	case "Decimal":
		s, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		d, err := value.NewDecimal(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "PreciseDecimal":
		s, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		d, err := value.NewPreciseDecimal(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "PackageAddress", "ComponentAddress", "ResourceAddress":
		kind, _ := value.KindByName(name)
		s, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		addr, err := p.decodeAddress(s)
		if err != nil {
			return nil, err
		}
		return value.NewAddressValue(kind, addr)
	case "Bucket":
		id, err := p.parseHandleArg()
		if err != nil {
			return nil, err
		}
		return value.Bucket{Identifier: id}, nil
	case "Proof":
		id, err := p.parseHandleArg()
		if err != nil {
			return nil, err
		}
		return value.Proof{Identifier: id}, nil
	case "Expression":
		s, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		expr, ok := value.ExpressionByName(s)
		if !ok {
			return nil, SyntaxError{
				Line:   tok.line,
				Column: tok.column,
				Detail: "unknown expression " + strconv.Quote(s),
			}
		}
		return value.Expression{Value: expr}, nil
	case "Bytes":
		raw, err := p.parseHexArg(tok, -1)
		if err != nil {
			return nil, err
		}
		return value.Bytes{Value: raw}, nil
	case "Blob":
		raw, err := p.parseHexArg(tok, 32)
		if err != nil {
			return nil, err
		}
		var v value.Blob
		copy(v.Hash[:], raw)
		return v, nil
	case "Hash":
		raw, err := p.parseHexArg(tok, 32)
		if err != nil {
			return nil, err
		}
		var v value.Hash
		copy(v.Value[:], raw)
		return v, nil
	case "Own":
		raw, err := p.parseHexArg(tok, 32)
		if err != nil {
			return nil, err
		}
		var v value.Own
		copy(v.ID[:], raw)
		return v, nil
	case "Ed25519PublicKey":
		raw, err := p.parseHexArg(tok, 32)
		if err != nil {
			return nil, err
		}
		var v value.Ed25519PublicKey
		copy(v.Value[:], raw)
		return v, nil
	case "Secp256k1PublicKey":
		raw, err := p.parseHexArg(tok, 33)
		if err != nil {
			return nil, err
		}
		var v value.Secp256k1PublicKey
		copy(v.Value[:], raw)
		return v, nil
	case "NonFungibleLocalId":
		s, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		id, err := parseLocalID(s)
		if err != nil {
			return nil, err
		}
		return value.NonFungibleLocalID{ID: id}, nil
	case "Enum":
		return p.parseEnum(depth)
	case "Tuple":
		elems, err := p.parseValueList(depth)
		if err != nil {
			return nil, err
		}
		return value.Tuple{Elements: elems}, nil
	case "Array":
		return p.parseArray(tok, depth)
	case "Map":
		return p.parseMap(tok, depth)
	}
	return nil, SyntaxError{
		Line:   tok.line,
		Column: tok.column,
		Detail: "unknown value constructor " + strconv.Quote(name),
	}
}

// parseStringArg consumes ( "..." )
func (p *parser) parseStringArg() (string, error) {
	if err := p.expectPunct("("); err != nil {
		return "", err
	}
	if p.tok.typ != tokString {
		return "", p.errorf("expected string literal, got %s", p.tok.describe())
	}
	s := p.tok.text
	if err := p.next(); err != nil {
		return "", err
	}
	if err := p.expectPunct(")"); err != nil {
		return "", err
	}
	return s, nil
}

// parseHandleArg consumes ( "name" ) or ( <u32 literal> )
func (p *parser) parseHandleArg() (value.HandleID, error) {
	if err := p.expectPunct("("); err != nil {
		return value.HandleID{}, err
	}
	var id value.HandleID
	switch p.tok.typ {
	case tokString:
		id = value.NamedHandle(p.tok.text)
	case tokNumber:
		digits, suffix, ok := splitIntegerLiteral(p.tok.text)
		if !ok || suffix != "u32" {
			return value.HandleID{}, p.errorf(
				"handle id must be a name or a u32 literal",
			)
		}
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return value.HandleID{}, p.errorf(
				"handle id %q out of range",
				p.tok.text,
			)
		}
		id = value.NumericHandle(uint32(n))
	default:
		return value.HandleID{}, p.errorf(
			"expected handle id, got %s",
			p.tok.describe(),
		)
	}
	if err := p.next(); err != nil {
		return value.HandleID{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return value.HandleID{}, err
	}
	return id, nil
}

func (p *parser) parseHexArg(tok token, size int) ([]byte, error) {
	s, err := p.parseStringArg()
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, SyntaxError{
			Line:   tok.line,
			Column: tok.column,
			Detail: "malformed hex in " + tok.text + " literal",
		}
	}
	if size >= 0 && len(raw) != size {
		return nil, SyntaxError{
			Line:   tok.line,
			Column: tok.column,
			Detail: fmt.Sprintf(
				"%s literal must hold %d bytes, got %d",
				tok.text,
				size,
				len(raw),
			),
		}
	}
	return raw, nil
}

// parseValueList consumes ( v, v, ... ), allowing an empty list
func (p *parser) parseValueList(depth int) ([]value.Value, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var elems []value.Value
	for !(p.tok.typ == tokPunct && p.tok.text == ")") {
		if len(elems) > 0 {
			if err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return elems, nil
}

// parseEnum consumes ( <u8 discriminant>, field, ... )
func (p *parser) parseEnum(depth int) (value.Value, error) {
	elems, err := p.parseValueList(depth)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, p.errorf("Enum requires a u8 discriminant")
	}
	disc, ok := elems[0].(value.U8)
	if !ok {
		return nil, value.TypeMismatchError{
			Kind:   value.KindEnum,
			Detail: "enum discriminant must be a u8 literal",
		}
	}
	return value.Enum{
		Discriminant: disc.Value,
		Fields:       elems[1:],
	}, nil
}

// parseKindParam consumes one kind name inside Array<...> or Map<...>
func (p *parser) parseKindParam() (value.Kind, error) {
	if p.tok.typ != tokIdent {
		return 0, p.errorf("expected kind name, got %s", p.tok.describe())
	}
	kind, ok := value.KindByName(p.tok.text)
	if !ok {
		return 0, value.UnrecognizedKindError{Name: p.tok.text}
	}
	return kind, p.next()
}

func (p *parser) parseArray(tok token, depth int) (value.Value, error) {
	if err := p.expectPunct("<"); err != nil {
		return nil, err
	}
	elementKind, err := p.parseKindParam()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	elems, err := p.parseValueList(depth)
	if err != nil {
		return nil, err
	}
	for _, elem := range elems {
		if elem.Kind() != elementKind {
			return nil, value.TypeMismatchError{
				Kind: value.KindArray,
				Detail: "element kind " + elem.Kind().String() +
					" does not match declared " + elementKind.String(),
			}
		}
	}
	return value.Array{ElementKind: elementKind, Elements: elems}, nil
}

// parseMap consumes Map<K, V>(k, v, k, v, ...) with alternating keys and
// values
func (p *parser) parseMap(tok token, depth int) (value.Value, error) {
	if err := p.expectPunct("<"); err != nil {
		return nil, err
	}
	keyKind, err := p.parseKindParam()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	valueKind, err := p.parseKindParam()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	elems, err := p.parseValueList(depth)
	if err != nil {
		return nil, err
	}
	if len(elems)%2 != 0 {
		return nil, SyntaxError{
			Line:   tok.line,
			Column: tok.column,
			Detail: "map literal requires alternating keys and values",
		}
	}
	entries := make([]value.MapEntry, 0, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		k, v := elems[i], elems[i+1]
		if k.Kind() != keyKind {
			return nil, value.TypeMismatchError{
				Kind: value.KindMap,
				Detail: "key kind " + k.Kind().String() +
					" does not match declared " + keyKind.String(),
			}
		}
		if v.Kind() != valueKind {
			return nil, value.TypeMismatchError{
				Kind: value.KindMap,
				Detail: "value kind " + v.Kind().String() +
					" does not match declared " + valueKind.String(),
			}
		}
		entries = append(entries, value.MapEntry{Key: k, Value: v})
	}
	return value.Map{
		KeyKind:   keyKind,
		ValueKind: valueKind,
		Entries:   entries,
	}, nil
}

// parseLocalID reads the delimited text form of a non-fungible local id:
// <name> for strings, #123# for integers, [hex] for bytes, {uuid} for UUIDs
func parseLocalID(s string) (value.LocalID, error) {
	if len(s) < 2 {
		return nil, SyntaxError{Detail: "malformed non-fungible local id"}
	}
	body := s[1 : len(s)-1]
	switch {
	case s[0] == '<' && s[len(s)-1] == '>':
		if body == "" {
			return nil, SyntaxError{Detail: "empty string local id"}
		}
		return value.StringLocalID{Value: body}, nil
	case s[0] == '#' && s[len(s)-1] == '#':
		n, err := strconv.ParseUint(body, 10, 64)
		if err != nil {
			return nil, SyntaxError{
				Detail: "malformed integer local id " + strconv.Quote(s),
			}
		}
		return value.IntegerLocalID{Value: n}, nil
	case s[0] == '[' && s[len(s)-1] == ']':
		raw, err := hex.DecodeString(body)
		if err != nil || len(raw) == 0 {
			return nil, SyntaxError{
				Detail: "malformed bytes local id " + strconv.Quote(s),
			}
		}
		return value.BytesLocalID{Value: raw}, nil
	case s[0] == '{' && s[len(s)-1] == '}':
		id, err := uuid.Parse(body)
		if err != nil {
			return nil, SyntaxError{
				Detail: "malformed uuid local id " + strconv.Quote(s),
			}
		}
		return value.UUIDLocalID{Value: id}, nil
	}
	return nil, SyntaxError{Detail: "malformed non-fungible local id"}
}
