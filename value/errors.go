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

import "fmt"

// UnrecognizedKindError is returned when a JSON payload names a kind that is
// not part of the value model
type UnrecognizedKindError struct {
	Name string
}

func (e UnrecognizedKindError) Error() string {
	return fmt.Sprintf("unrecognized value kind %q", e.Name)
}

// TypeMismatchError is returned when the shape of a value disagrees with its
// declared kind, for example a non-hex string for a byte array or an array
// element whose kind differs from the declared element kind
type TypeMismatchError struct {
	Kind   Kind
	Detail string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for kind %s: %s", e.Kind, e.Detail)
}

// NumericOverflowError is returned when a numeric string exceeds the range
// of its declared width
type NumericOverflowError struct {
	Kind  Kind
	Value string
}

func (e NumericOverflowError) Error() string {
	return fmt.Sprintf("numeric value %q overflows %s", e.Value, e.Kind)
}

// MaxDepth is the maximum nesting depth either codec accepts. Depth is
// counted explicitly rather than relying on recursion limits, so exceeding
// it is a reported error instead of stack exhaustion
const MaxDepth = 64

// DepthExceededError is returned when a value tree nests past MaxDepth
type DepthExceededError struct {
	Limit int
}

func (e DepthExceededError) Error() string {
	return fmt.Sprintf("value tree exceeds maximum nesting depth of %d", e.Limit)
}
