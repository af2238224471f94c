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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumenlabs-io/golumen"
)

type deriveFlags struct {
	flagset  *flag.FlagSet
	identity bool
}

func newDeriveFlags() *deriveFlags {
	f := &deriveFlags{
		flagset: flag.NewFlagSet("derive", flag.ExitOnError),
	}
	f.flagset.BoolVar(
		&f.identity,
		"identity",
		false,
		"derive a virtual identity address instead of an account",
	)
	return f
}

func runDerive(f *globalFlags) {
	deriveFlags := newDeriveFlags()
	err := deriveFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(deriveFlags.flagset.Args()) < 1 {
		fmt.Printf("ERROR: you must specify a public key in hex\n")
		os.Exit(1)
	}
	toolkit := f.toolkit()
	publicKeyHex := deriveFlags.flagset.Arg(0)
	networkID := f.networkID()
	if deriveFlags.identity {
		resp, terr := toolkit.DeriveVirtualIdentity(
			golumen.DeriveVirtualIdentityRequest{
				PublicKeyHex: publicKeyHex,
				NetworkID:    networkID,
			},
		)
		exitOnError(terr)
		fmt.Println(resp.Address)
		return
	}
	resp, terr := toolkit.DeriveVirtualAccount(
		golumen.DeriveVirtualAccountRequest{
			PublicKeyHex: publicKeyHex,
			NetworkID:    networkID,
		},
	)
	exitOnError(terr)
	fmt.Println(resp.Address)
}
