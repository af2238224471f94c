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

type translateFlags struct {
	flagset  *flag.FlagSet
	toLegacy bool
}

func newTranslateFlags() *translateFlags {
	f := &translateFlags{
		flagset: flag.NewFlagSet("translate", flag.ExitOnError),
	}
	f.flagset.BoolVar(
		&f.toLegacy,
		"to-legacy",
		false,
		"translate to the legacy era (defaults to the current era)",
	)
	return f
}

func runTranslate(f *globalFlags) {
	translateFlags := newTranslateFlags()
	err := translateFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(translateFlags.flagset.Args()) < 1 {
		fmt.Printf("ERROR: you must specify an address\n")
		os.Exit(1)
	}
	toolkit := f.toolkit()
	req := golumen.TranslateAddressRequest{
		Address:   translateFlags.flagset.Arg(0),
		Direction: golumen.DirectionToLegacy,
	}
	if !translateFlags.toLegacy {
		networkID := f.networkID()
		req.Direction = golumen.DirectionToCurrent
		req.NetworkID = &networkID
	}
	resp, terr := toolkit.TranslateAddress(req)
	exitOnError(terr)
	fmt.Printf(
		"%s (network %d, entity %s)\n",
		resp.Address,
		resp.NetworkID,
		resp.EntityType,
	)
}
