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
	"github.com/lumenlabs-io/golumen/value"
)

// Opcode identifies a manifest instruction. The set is closed: parsing an
// instruction keyword outside this enumeration fails with
// UnknownInstructionError
type Opcode uint8

const (
	OpTakeFromWorktop Opcode = iota + 1
	OpTakeFromWorktopByAmount
	OpTakeFromWorktopByIDs
	OpReturnToWorktop
	OpAssertWorktopContains
	OpAssertWorktopContainsByAmount
	OpPopFromAuthZone
	OpPushToAuthZone
	OpClearAuthZone
	OpCreateProofFromAuthZone
	OpCreateProofFromAuthZoneByAmount
	OpCreateProofFromBucket
	OpCloneProof
	OpDropProof
	OpDropAllProofs
	OpCallFunction
	OpCallMethod
	OpBurnResource
	OpMintFungible
)

var opcodeNames = map[Opcode]string{
	OpTakeFromWorktop:                 "TAKE_FROM_WORKTOP",
	OpTakeFromWorktopByAmount:         "TAKE_FROM_WORKTOP_BY_AMOUNT",
	OpTakeFromWorktopByIDs:            "TAKE_FROM_WORKTOP_BY_IDS",
	OpReturnToWorktop:                 "RETURN_TO_WORKTOP",
	OpAssertWorktopContains:           "ASSERT_WORKTOP_CONTAINS",
	OpAssertWorktopContainsByAmount:   "ASSERT_WORKTOP_CONTAINS_BY_AMOUNT",
	OpPopFromAuthZone:                 "POP_FROM_AUTH_ZONE",
	OpPushToAuthZone:                  "PUSH_TO_AUTH_ZONE",
	OpClearAuthZone:                   "CLEAR_AUTH_ZONE",
	OpCreateProofFromAuthZone:         "CREATE_PROOF_FROM_AUTH_ZONE",
	OpCreateProofFromAuthZoneByAmount: "CREATE_PROOF_FROM_AUTH_ZONE_BY_AMOUNT",
	OpCreateProofFromBucket:           "CREATE_PROOF_FROM_BUCKET",
	OpCloneProof:                      "CLONE_PROOF",
	OpDropProof:                       "DROP_PROOF",
	OpDropAllProofs:                   "DROP_ALL_PROOFS",
	OpCallFunction:                    "CALL_FUNCTION",
	OpCallMethod:                      "CALL_METHOD",
	OpBurnResource:                    "BURN_RESOURCE",
	OpMintFungible:                    "MINT_FUNGIBLE",
}

var opcodesByName = map[string]Opcode{}

func init() {
	for op, name := range opcodeNames {
		opcodesByName[name] = op
	}
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// OpcodeByName returns the opcode for an instruction keyword
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// argKind constrains one argument position of an instruction
type argKind uint8

const (
	// argValue admits any value, used by the variadic tails of
	// CALL_FUNCTION and CALL_METHOD
	argValue argKind = iota
	argResourceAddress
	argComponentAddress
	argPackageAddress
	argDecimal
	argString
	argLocalIDArray
	// argNewBucket and argNewProof declare a fresh named handle
	argNewBucket
	argNewProof
	// argBucket and argProof consume a previously declared handle
	argBucket
	argProof
)

func (a argKind) String() string {
	switch a {
	case argResourceAddress:
		return "ResourceAddress"
	case argComponentAddress:
		return "ComponentAddress"
	case argPackageAddress:
		return "PackageAddress"
	case argDecimal:
		return "Decimal"
	case argString:
		return "String"
	case argLocalIDArray:
		return "Array<NonFungibleLocalId>"
	case argNewBucket, argBucket:
		return "Bucket"
	case argNewProof, argProof:
		return "Proof"
	}
	return "Value"
}

type opcodeSpec struct {
	args []argKind
	// variadic opcodes accept any number of additional values after the
	// fixed positions
	variadic bool
}

var opcodeSpecs = map[Opcode]opcodeSpec{
	OpTakeFromWorktop: {
		args: []argKind{argResourceAddress, argNewBucket},
	},
	OpTakeFromWorktopByAmount: {
		args: []argKind{argDecimal, argResourceAddress, argNewBucket},
	},
	OpTakeFromWorktopByIDs: {
		args: []argKind{argLocalIDArray, argResourceAddress, argNewBucket},
	},
	OpReturnToWorktop: {
		args: []argKind{argBucket},
	},
	OpAssertWorktopContains: {
		args: []argKind{argResourceAddress},
	},
	OpAssertWorktopContainsByAmount: {
		args: []argKind{argDecimal, argResourceAddress},
	},
	OpPopFromAuthZone: {
		args: []argKind{argNewProof},
	},
	OpPushToAuthZone: {
		args: []argKind{argProof},
	},
	OpClearAuthZone: {},
	OpCreateProofFromAuthZone: {
		args: []argKind{argResourceAddress, argNewProof},
	},
	OpCreateProofFromAuthZoneByAmount: {
		args: []argKind{argDecimal, argResourceAddress, argNewProof},
	},
	OpCreateProofFromBucket: {
		args: []argKind{argBucket, argNewProof},
	},
	OpCloneProof: {
		args: []argKind{argProof, argNewProof},
	},
	OpDropProof: {
		args: []argKind{argProof},
	},
	OpDropAllProofs: {},
	OpCallFunction: {
		args:     []argKind{argPackageAddress, argString, argString},
		variadic: true,
	},
	OpCallMethod: {
		args:     []argKind{argComponentAddress, argString},
		variadic: true,
	},
	OpBurnResource: {
		args: []argKind{argBucket},
	},
	OpMintFungible: {
		args: []argKind{argResourceAddress, argDecimal},
	},
}

// matchesArg reports whether a value satisfies one argument position
func matchesArg(a argKind, v value.Value) bool {
	switch a {
	case argValue:
		return true
	case argResourceAddress:
		_, ok := v.(value.ResourceAddress)
		return ok
	case argComponentAddress:
		_, ok := v.(value.ComponentAddress)
		return ok
	case argPackageAddress:
		_, ok := v.(value.PackageAddress)
		return ok
	case argDecimal:
		_, ok := v.(value.Decimal)
		return ok
	case argString:
		_, ok := v.(value.String)
		return ok
	case argLocalIDArray:
		arr, ok := v.(value.Array)
		return ok && arr.ElementKind == value.KindNonFungibleLocalID
	case argNewBucket, argBucket:
		_, ok := v.(value.Bucket)
		return ok
	case argNewProof, argProof:
		_, ok := v.(value.Proof)
		return ok
	}
	return false
}

// validateArgs checks argument count and per-position kinds for one
// instruction. Handle scoping is checked separately
func validateArgs(op Opcode, args []value.Value) error {
	spec, ok := opcodeSpecs[op]
	if !ok {
		return UnknownInstructionError{Name: op.String()}
	}
	if spec.variadic {
		if len(args) < len(spec.args) {
			return ArgumentCountMismatchError{
				Op:       op,
				Want:     len(spec.args),
				Got:      len(args),
				Variadic: true,
			}
		}
	} else if len(args) != len(spec.args) {
		return ArgumentCountMismatchError{
			Op:   op,
			Want: len(spec.args),
			Got:  len(args),
		}
	}
	for i, arg := range args {
		if arg == nil {
			return ArgumentTypeMismatchError{
				Op:       op,
				Position: i,
				Want:     "Value",
				Got:      "nil",
			}
		}
	}
	for i, want := range spec.args {
		if !matchesArg(want, args[i]) {
			return ArgumentTypeMismatchError{
				Op:       op,
				Position: i,
				Want:     want.String(),
				Got:      args[i].Kind().String(),
			}
		}
	}
	return nil
}
