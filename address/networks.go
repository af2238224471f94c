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

// Network definitions
var (
	NetworkMainnet = Network{
		ID:           1,
		Name:         "mainnet",
		HRPSuffix:    "lmn",
		LegacyPrefix: "lm",
	}
	NetworkTestnet = Network{
		ID:           2,
		Name:         "testnet",
		HRPSuffix:    "tlm",
		LegacyPrefix: "tl",
	}
	NetworkSimulator = Network{
		ID:           242,
		Name:         "simulator",
		HRPSuffix:    "sim",
		LegacyPrefix: "sm",
	}

	NetworkInvalid = Network{
		ID:   0,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkSimulator,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByID returns a predefined network by ID
func NetworkByID(id uint8) Network {
	for _, network := range networks {
		if network.ID == id {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByHRPSuffix returns a predefined network by the suffix used in
// current-era bech32m human-readable prefixes
func NetworkByHRPSuffix(suffix string) Network {
	for _, network := range networks {
		if network.HRPSuffix == suffix {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByLegacyPrefix returns a predefined network by its legacy address
// prefix. The legacy era encodes the network via this lookup table rather
// than a checksum
func NetworkByLegacyPrefix(prefix string) Network {
	for _, network := range networks {
		if network.LegacyPrefix == prefix {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Lumen network
type Network struct {
	ID           uint8 // network ID used for addresses
	Name         string
	HRPSuffix    string
	LegacyPrefix string
}

func (n Network) String() string {
	return n.Name
}
