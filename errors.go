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

package golumen

import (
	"errors"
	"fmt"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/manifest"
	"github.com/lumenlabs-io/golumen/sbor"
	"github.com/lumenlabs-io/golumen/value"
)

// ErrorKind tags every failure crossing the toolkit boundary. The set of
// kinds is a fixed contract with foreign-language bindings
type ErrorKind string

const (
	ErrMalformedEncoding     ErrorKind = "MalformedEncoding"
	ErrUnknownTypeTag        ErrorKind = "UnknownTypeTag"
	ErrDepthExceeded         ErrorKind = "DepthExceeded"
	ErrUnrecognizedKind      ErrorKind = "UnrecognizedKind"
	ErrTypeMismatch          ErrorKind = "TypeMismatch"
	ErrNumericOverflow       ErrorKind = "NumericOverflow"
	ErrInvalidAddressFormat  ErrorKind = "InvalidAddressFormat"
	ErrChecksumMismatch      ErrorKind = "ChecksumMismatch"
	ErrNetworkMismatch       ErrorKind = "NetworkMismatch"
	ErrUnsupportedEntityType ErrorKind = "UnsupportedEntityType"
	ErrUnknownInstruction    ErrorKind = "UnknownInstruction"
	ErrArgumentCountMismatch ErrorKind = "ArgumentCountMismatch"
	ErrArgumentTypeMismatch  ErrorKind = "ArgumentTypeMismatch"
	ErrUndeclaredHandle      ErrorKind = "UndeclaredHandle"
	ErrInputTooLarge         ErrorKind = "InputTooLarge"
	ErrInvalidRequest        ErrorKind = "InvalidRequest"
)

// Error is the structured failure returned by every Toolkit operation. The
// kind of the underlying failure is preserved, never collapsed into a
// generic error
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// shapeError maps internal error types onto boundary kinds. Errors already
// shaped pass through unchanged
func shapeError(err error) *Error {
	var boundary *Error
	if errors.As(err, &boundary) {
		return boundary
	}
	kind := ErrInvalidRequest
	switch {
	case errors.As(err, new(sbor.MalformedEncodingError)):
		kind = ErrMalformedEncoding
	case errors.As(err, new(sbor.UnknownTypeTagError)):
		kind = ErrUnknownTypeTag
	case errors.As(err, new(value.DepthExceededError)):
		kind = ErrDepthExceeded
	case errors.As(err, new(value.UnrecognizedKindError)):
		kind = ErrUnrecognizedKind
	case errors.As(err, new(value.TypeMismatchError)):
		kind = ErrTypeMismatch
	case errors.As(err, new(value.NumericOverflowError)):
		kind = ErrNumericOverflow
	case errors.As(err, new(address.ChecksumError)):
		kind = ErrChecksumMismatch
	case errors.As(err, new(address.NetworkMismatchError)):
		kind = ErrNetworkMismatch
	case errors.As(err, new(address.UnsupportedEntityTypeError)):
		kind = ErrUnsupportedEntityType
	case errors.As(err, new(address.InvalidFormatError)):
		kind = ErrInvalidAddressFormat
	case errors.As(err, new(manifest.UnknownInstructionError)):
		kind = ErrUnknownInstruction
	case errors.As(err, new(manifest.ArgumentCountMismatchError)):
		kind = ErrArgumentCountMismatch
	case errors.As(err, new(manifest.ArgumentTypeMismatchError)):
		kind = ErrArgumentTypeMismatch
	case errors.As(err, new(manifest.UndeclaredHandleError)):
		kind = ErrUndeclaredHandle
	case errors.As(err, new(manifest.SyntaxError)):
		kind = ErrInvalidRequest
	}
	return &Error{Kind: kind, Message: err.Error()}
}
