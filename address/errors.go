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

package address

import "fmt"

// InvalidFormatError is returned for structurally malformed address text:
// unknown prefixes, bad lengths, characters outside the expected alphabet
type InvalidFormatError struct {
	Detail string
}

func (e InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid address format: %s", e.Detail)
}

// ChecksumError is returned when a current-era address is structurally valid
// but its bech32m checksum does not verify, which usually indicates
// corruption rather than malformed input
type ChecksumError struct {
	Detail string
}

func (e ChecksumError) Error() string {
	return fmt.Sprintf("address checksum mismatch: %s", e.Detail)
}

// NetworkMismatchError is returned when the caller-supplied network
// disagrees with the network encoded in a legacy address
type NetworkMismatchError struct {
	Want uint8
	Got  uint8
}

func (e NetworkMismatchError) Error() string {
	return fmt.Sprintf(
		"network mismatch: caller expects network %d but address encodes network %d",
		e.Want,
		e.Got,
	)
}

// UnsupportedEntityTypeError is returned when an entity type cannot be
// represented in the target address scheme, such as translating a
// current-era-only entity into the legacy scheme
type UnsupportedEntityTypeError struct {
	Entity EntityType
}

func (e UnsupportedEntityTypeError) Error() string {
	return fmt.Sprintf("entity type %s is not representable in the target scheme", e.Entity)
}
