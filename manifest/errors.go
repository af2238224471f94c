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

import "fmt"

// SyntaxError is returned for manifest text that fails tokenization or does
// not follow the instruction grammar
type SyntaxError struct {
	Line   int
	Column int
	Detail string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Detail)
}

// UnknownInstructionError is returned when an instruction keyword is not
// part of the closed opcode enumeration
type UnknownInstructionError struct {
	Name string
}

func (e UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %q", e.Name)
}

// ArgumentCountMismatchError is returned when an instruction has the wrong
// number of arguments for its opcode
type ArgumentCountMismatchError struct {
	Op       Opcode
	Want     int
	Got      int
	Variadic bool
}

func (e ArgumentCountMismatchError) Error() string {
	if e.Variadic {
		return fmt.Sprintf(
			"%s expects at least %d arguments, got %d",
			e.Op,
			e.Want,
			e.Got,
		)
	}
	return fmt.Sprintf("%s expects %d arguments, got %d", e.Op, e.Want, e.Got)
}

// ArgumentTypeMismatchError is returned when an argument's kind disagrees
// with what the opcode expects at that position
type ArgumentTypeMismatchError struct {
	Op       Opcode
	Position int
	Want     string
	Got      string
}

func (e ArgumentTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"%s argument %d must be %s, got %s",
		e.Op,
		e.Position,
		e.Want,
		e.Got,
	)
}

// UndeclaredHandleError is returned when a bucket or proof is referenced
// before any earlier instruction produced it
type UndeclaredHandleError struct {
	Handle string
	Name   string
}

func (e UndeclaredHandleError) Error() string {
	return fmt.Sprintf("%s %q referenced before declaration", e.Handle, e.Name)
}
