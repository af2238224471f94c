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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lumenlabs-io/golumen"
)

type manifestFlags struct {
	flagset *flag.FlagSet
	input   string
}

func newManifestFlags(name string) *manifestFlags {
	f := &manifestFlags{
		flagset: flag.NewFlagSet(name, flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.input,
		"input",
		"-",
		"input file, or - for stdin",
	)
	return f
}

func runParse(f *globalFlags) {
	manifestFlags := newManifestFlags("parse")
	err := manifestFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	toolkit := f.toolkit()
	resp, terr := toolkit.ParseManifest(golumen.ParseManifestRequest{
		Manifest: string(readInput(manifestFlags.input)),
	})
	exitOnError(terr)
	out, err := json.MarshalIndent(resp.Instructions, "", "  ")
	if err != nil {
		fmt.Printf("failed to render instructions: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func runSerialize(f *globalFlags) {
	manifestFlags := newManifestFlags("serialize")
	err := manifestFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	toolkit := f.toolkit()
	var req golumen.SerializeManifestRequest
	if err := json.Unmarshal(readInput(manifestFlags.input), &req.Instructions); err != nil {
		fmt.Printf("failed to parse instruction list: %s\n", err)
		os.Exit(1)
	}
	resp, terr := toolkit.SerializeManifest(req)
	exitOnError(terr)
	fmt.Print(resp.Manifest)
}
