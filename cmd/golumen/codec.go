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
	"strings"

	"github.com/lumenlabs-io/golumen"
)

type codecFlags struct {
	flagset *flag.FlagSet
	input   string
}

func newCodecFlags(name string) *codecFlags {
	f := &codecFlags{
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

func runEncode(f *globalFlags) {
	codecFlags := newCodecFlags("encode")
	err := codecFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	toolkit := f.toolkit()
	resp, terr := toolkit.SborEncode(golumen.SborEncodeRequest{
		Value: json.RawMessage(readInput(codecFlags.input)),
	})
	exitOnError(terr)
	fmt.Println(resp.EncodedHex)
}

func runDecode(f *globalFlags) {
	codecFlags := newCodecFlags("decode")
	err := codecFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	toolkit := f.toolkit()
	encodedHex := strings.TrimSpace(string(readInput(codecFlags.input)))
	resp, terr := toolkit.SborDecode(golumen.SborDecodeRequest{
		EncodedHex: encodedHex,
	})
	exitOnError(terr)
	fmt.Println(string(resp.Value))
}
