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

package sbor

import "fmt"

// MalformedEncodingError is returned when a payload is structurally invalid:
// a length prefix overruns the remaining buffer, a truncated body, trailing
// garbage, or an invalid fixed-width body
type MalformedEncodingError struct {
	Offset int
	Detail string
}

func (e MalformedEncodingError) Error() string {
	return fmt.Sprintf("malformed encoding at offset %d: %s", e.Offset, e.Detail)
}

// UnknownTypeTagError is returned when a discriminant byte is not part of
// the wire contract
type UnknownTypeTagError struct {
	Offset int
	Tag    byte
}

func (e UnknownTypeTagError) Error() string {
	return fmt.Sprintf("unknown type tag 0x%02x at offset %d", e.Tag, e.Offset)
}
