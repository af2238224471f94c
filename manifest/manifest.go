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

// Package manifest translates transaction manifests between their text form
// and a structured instruction list over typed values
package manifest

import (
	"encoding/json"

	"github.com/lumenlabs-io/golumen/value"
)

// Instruction is one manifest instruction with its typed arguments
type Instruction struct {
	Op   Opcode
	Args []value.Value
}

// Manifest is an ordered instruction list
type Manifest struct {
	Instructions []Instruction
}

func (i Instruction) MarshalJSON() ([]byte, error) {
	args := make([]json.RawMessage, 0, len(i.Args))
	for _, arg := range i.Args {
		encoded, err := value.Marshal(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, encoded)
	}
	return json.Marshal(struct {
		Instruction string            `json:"instruction"`
		Args        []json.RawMessage `json:"args,omitempty"`
	}{
		Instruction: i.Op.String(),
		Args:        args,
	})
}

func (i *Instruction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Instruction string            `json:"instruction"`
		Args        []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	op, ok := OpcodeByName(raw.Instruction)
	if !ok {
		return UnknownInstructionError{Name: raw.Instruction}
	}
	args := make([]value.Value, 0, len(raw.Args))
	for _, rawArg := range raw.Args {
		arg, err := value.Unmarshal(rawArg)
		if err != nil {
			return err
		}
		args = append(args, arg)
	}
	i.Op = op
	i.Args = args
	return nil
}

// Validate checks every instruction against the opcode table and walks the
// manifest in order, enforcing that buckets and proofs are declared before
// use. Parse output always validates; manifests assembled from structured
// input go through the same checks before serialization
func (m Manifest) Validate() error {
	scope := newHandleScope()
	for _, instr := range m.Instructions {
		if err := validateArgs(instr.Op, instr.Args); err != nil {
			return err
		}
		if err := scope.applyInstruction(instr); err != nil {
			return err
		}
	}
	return nil
}

// handleScope tracks the named buckets and proofs declared so far. Bucket
// and proof names live in separate namespaces. Numeric handles originate in
// binary payloads and are not scope-checked
type handleScope struct {
	buckets map[string]struct{}
	proofs  map[string]struct{}
}

func newHandleScope() *handleScope {
	return &handleScope{
		buckets: map[string]struct{}{},
		proofs:  map[string]struct{}{},
	}
}

func (s *handleScope) declare(a argKind, v value.Value) error {
	switch a {
	case argNewBucket:
		bucket := v.(value.Bucket)
		if bucket.Identifier.Kind != value.HandleIDNamed {
			return nil
		}
		name := bucket.Identifier.Name
		if _, ok := s.buckets[name]; ok {
			return SyntaxError{
				Detail: "bucket \"" + name + "\" already declared",
			}
		}
		s.buckets[name] = struct{}{}
	case argNewProof:
		proof := v.(value.Proof)
		if proof.Identifier.Kind != value.HandleIDNamed {
			return nil
		}
		name := proof.Identifier.Name
		if _, ok := s.proofs[name]; ok {
			return SyntaxError{
				Detail: "proof \"" + name + "\" already declared",
			}
		}
		s.proofs[name] = struct{}{}
	}
	return nil
}

// require checks that every named bucket or proof reachable from v has
// already been declared
func (s *handleScope) require(v value.Value) error {
	switch h := v.(type) {
	case value.Bucket:
		if h.Identifier.Kind == value.HandleIDNamed {
			if _, ok := s.buckets[h.Identifier.Name]; !ok {
				return UndeclaredHandleError{
					Handle: "bucket",
					Name:   h.Identifier.Name,
				}
			}
		}
	case value.Proof:
		if h.Identifier.Kind == value.HandleIDNamed {
			if _, ok := s.proofs[h.Identifier.Name]; !ok {
				return UndeclaredHandleError{
					Handle: "proof",
					Name:   h.Identifier.Name,
				}
			}
		}
	case value.Array:
		for _, elem := range h.Elements {
			if err := s.require(elem); err != nil {
				return err
			}
		}
	case value.Tuple:
		for _, elem := range h.Elements {
			if err := s.require(elem); err != nil {
				return err
			}
		}
	case value.Enum:
		for _, field := range h.Fields {
			if err := s.require(field); err != nil {
				return err
			}
		}
	case value.Map:
		for _, entry := range h.Entries {
			if err := s.require(entry.Key); err != nil {
				return err
			}
			if err := s.require(entry.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyInstruction checks handle references for one instruction, then
// records the handles it declares. A handle declared by an instruction is
// not visible to that same instruction's other arguments
func (s *handleScope) applyInstruction(instr Instruction) error {
	spec := opcodeSpecs[instr.Op]
	for i, arg := range instr.Args {
		if i < len(spec.args) {
			k := spec.args[i]
			if k == argNewBucket || k == argNewProof {
				continue
			}
		}
		if err := s.require(arg); err != nil {
			return err
		}
	}
	for i, k := range spec.args {
		if k == argNewBucket || k == argNewProof {
			if err := s.declare(k, instr.Args[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
