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
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenType uint8

const (
	tokEOF tokenType = iota
	tokIdent
	tokString
	tokNumber
	tokPunct
)

type token struct {
	typ    tokenType
	text   string
	line   int
	column int
}

func (t token) describe() string {
	switch t.typ {
	case tokEOF:
		return "end of input"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

type lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, column: 1}
}

func (l *lexer) errorf(format string, args ...any) SyntaxError {
	return SyntaxError{
		Line:   l.line,
		Column: l.column,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (l *lexer) advance() byte {
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipSpace consumes whitespace and '#' line comments
func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentPart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	tok := token{line: l.line, column: l.column}
	if l.pos >= len(l.input) {
		tok.typ = tokEOF
		return tok, nil
	}
	c := l.peek()
	switch {
	case strings.IndexByte("()<>,;", c) >= 0:
		l.advance()
		tok.typ = tokPunct
		tok.text = string(c)
		return tok, nil
	case c == '"':
		text, err := l.lexString()
		if err != nil {
			return token{}, err
		}
		tok.typ = tokString
		tok.text = text
		return tok, nil
	case c == '-' || c == '+' || unicode.IsDigit(rune(c)):
		start := l.pos
		l.advance()
		for l.pos < len(l.input) && isIdentPart(l.peek()) {
			l.advance()
		}
		tok.typ = tokNumber
		tok.text = l.input[start:l.pos]
		return tok, nil
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.input) && isIdentPart(l.peek()) {
			l.advance()
		}
		tok.typ = tokIdent
		tok.text = l.input[start:l.pos]
		return tok, nil
	default:
		return token{}, l.errorf("unexpected character %q", string(c))
	}
}

// lexString consumes a double-quoted literal. Escape sequences follow the
// Go string-literal syntax, which is what serialization emits, so every
// serialized string lexes back to the same text
func (l *lexer) lexString() (string, error) {
	startLine, startColumn := l.line, l.column
	start := l.pos
	l.advance() // opening quote
	for {
		if l.pos >= len(l.input) {
			return "", l.errorf("unterminated string literal")
		}
		c := l.advance()
		if c == '"' {
			break
		}
		switch c {
		case '\n':
			return "", l.errorf("unterminated string literal")
		case '\\':
			if l.pos >= len(l.input) {
				return "", l.errorf("unterminated string literal")
			}
			l.advance()
		}
	}
	text, err := strconv.Unquote(l.input[start:l.pos])
	if err != nil {
		return "", SyntaxError{
			Line:   startLine,
			Column: startColumn,
			Detail: "invalid string literal",
		}
	}
	return text, nil
}
