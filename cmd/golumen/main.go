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
	"io"
	"os"

	"github.com/lumenlabs-io/golumen"
	"github.com/lumenlabs-io/golumen/address"
)

type globalFlags struct {
	flagset   *flag.FlagSet
	network   string
	cacheSize int
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.network,
		"network",
		"mainnet",
		"network to interpret legacy addresses against",
	)
	f.flagset.IntVar(
		&f.cacheSize,
		"cache-size",
		0,
		"derivation cache capacity (0 uses the default)",
	)
	return f
}

func (f *globalFlags) networkID() uint8 {
	network := address.NetworkByName(f.network)
	if network == address.NetworkInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.network)
		os.Exit(1)
	}
	return network.ID
}

func (f *globalFlags) toolkit() *golumen.Toolkit {
	return golumen.New(golumen.WithCacheSize(f.cacheSize))
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "encode":
			runEncode(f)
		case "decode":
			runDecode(f)
		case "translate":
			runTranslate(f)
		case "parse":
			runParse(f)
		case "serialize":
			runSerialize(f)
		case "derive":
			runDerive(f)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf(
			"You must specify a subcommand (encode, decode, translate, parse, serialize, or derive)\n",
		)
		os.Exit(1)
	}
}

// readInput returns the named file's contents, or stdin when path is "-"
// or empty
func readInput(path string) []byte {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("failed to read stdin: %s\n", err)
			os.Exit(1)
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("failed to read %s: %s\n", path, err)
		os.Exit(1)
	}
	return data
}

func exitOnError(err *golumen.Error) {
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
}
