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
	"encoding/json"
	"fmt"
	"testing"

	"github.com/lumenlabs-io/golumen/address"
	"github.com/lumenlabs-io/golumen/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccountAddress(t *testing.T) string {
	t.Helper()
	payload := make([]byte, address.PayloadSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	addr, err := address.NewAddress(
		address.EntityAccountComponent,
		address.NetworkMainnet.ID,
		payload,
	)
	if err != nil {
		t.Fatalf("failed to build address: %s", err)
	}
	encoded, err := address.EncodeCurrent(addr)
	if err != nil {
		t.Fatalf("failed to encode address: %s", err)
	}
	return encoded
}

func TestSborEncodeDecode(t *testing.T) {
	toolkit := New()
	resp, terr := toolkit.SborEncode(SborEncodeRequest{
		Value: json.RawMessage(`{"kind":"U16","value":"300"}`),
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if resp.EncodedHex != "082c01" {
		t.Fatalf("encoded %q, wanted 082c01", resp.EncodedHex)
	}
	decoded, terr := toolkit.SborDecode(SborDecodeRequest{
		EncodedHex: resp.EncodedHex,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if string(decoded.Value) != `{"kind":"U16","value":"300"}` {
		t.Fatalf("decoded %s", decoded.Value)
	}
}

func TestJSONEncodeDecode(t *testing.T) {
	toolkit := New()
	resp, terr := toolkit.JSONDecode(JSONDecodeRequest{
		Value: json.RawMessage(`{"kind":"Decimal","value":"1.50"}`),
	})
	require.Nil(t, terr)
	back, terr := toolkit.JSONEncode(JSONEncodeRequest{
		EncodedHex: resp.EncodedHex,
	})
	require.Nil(t, terr)
	// trailing zero normalized on the way through
	assert.Equal(
		t,
		`{"kind":"Decimal","value":"1.5"}`,
		string(back.Value),
	)
}

func TestErrorKinds(t *testing.T) {
	toolkit := New()
	testDefs := []struct {
		run      func() *Error
		expected ErrorKind
	}{
		{
			func() *Error {
				_, err := toolkit.SborEncode(SborEncodeRequest{
					Value: json.RawMessage(`{"kind":"Quaternion","value":"1"}`),
				})
				return err
			},
			ErrUnrecognizedKind,
		},
		{
			func() *Error {
				_, err := toolkit.SborEncode(SborEncodeRequest{
					Value: json.RawMessage(`{"kind":"U8","value":"300"}`),
				})
				return err
			},
			ErrNumericOverflow,
		},
		{
			func() *Error {
				_, err := toolkit.SborEncode(SborEncodeRequest{
					Value: json.RawMessage(`{"kind":"U8","value":true}`),
				})
				return err
			},
			ErrTypeMismatch,
		},
		{
			func() *Error {
				// u16 missing its second byte
				_, err := toolkit.SborDecode(SborDecodeRequest{
					EncodedHex: "082c",
				})
				return err
			},
			ErrMalformedEncoding,
		},
		{
			func() *Error {
				_, err := toolkit.SborDecode(SborDecodeRequest{
					EncodedHex: "7f00",
				})
				return err
			},
			ErrUnknownTypeTag,
		},
		{
			func() *Error {
				_, err := toolkit.SborDecode(SborDecodeRequest{
					EncodedHex: "not hex",
				})
				return err
			},
			ErrInvalidRequest,
		},
		{
			func() *Error {
				_, err := toolkit.ParseManifest(ParseManifestRequest{
					Manifest: `FROB_THE_WORKTOP;`,
				})
				return err
			},
			ErrUnknownInstruction,
		},
		{
			func() *Error {
				_, err := toolkit.ParseManifest(ParseManifestRequest{
					Manifest: `RETURN_TO_WORKTOP Bucket("x");`,
				})
				return err
			},
			ErrUndeclaredHandle,
		},
		{
			func() *Error {
				encoded := testAccountAddress(t)
				corrupted := encoded[:len(encoded)-1]
				if encoded[len(encoded)-1] == 'q' {
					corrupted += "p"
				} else {
					corrupted += "q"
				}
				_, err := toolkit.TranslateAddress(TranslateAddressRequest{
					Address:   corrupted,
					Direction: DirectionToLegacy,
				})
				return err
			},
			ErrChecksumMismatch,
		},
		{
			func() *Error {
				_, err := toolkit.TranslateAddress(TranslateAddressRequest{
					Address:   "zz0102",
					Direction: "Sideways",
				})
				return err
			},
			ErrInvalidRequest,
		},
		{
			func() *Error {
				_, err := toolkit.DeriveVirtualAccount(DeriveVirtualAccountRequest{
					PublicKeyHex: "abcd",
					NetworkID:    address.NetworkMainnet.ID,
				})
				return err
			},
			ErrInvalidAddressFormat,
		},
	}
	for _, testDef := range testDefs {
		err := testDef.run()
		if err == nil {
			t.Fatalf("expected error of kind %s", testDef.expected)
		}
		if err.Kind != testDef.expected {
			t.Fatalf(
				"error kind %s, wanted %s (message: %s)",
				err.Kind,
				testDef.expected,
				err.Message,
			)
		}
	}
}

func TestTranslateAddress(t *testing.T) {
	toolkit := New()
	current := testAccountAddress(t)
	legacy, terr := toolkit.TranslateAddress(TranslateAddressRequest{
		Address:   current,
		Direction: DirectionToLegacy,
	})
	require.Nil(t, terr)
	assert.Equal(t, "AccountComponent", legacy.EntityType)
	assert.Equal(t, address.NetworkMainnet.ID, legacy.NetworkID)
	networkID := address.NetworkMainnet.ID
	back, terr := toolkit.TranslateAddress(TranslateAddressRequest{
		Address:   legacy.Address,
		Direction: DirectionToCurrent,
		NetworkID: &networkID,
	})
	require.Nil(t, terr)
	assert.Equal(t, current, back.Address)
}

func TestTranslateToCurrentRequiresNetwork(t *testing.T) {
	toolkit := New()
	_, terr := toolkit.TranslateAddress(TranslateAddressRequest{
		Address:   "lm0102",
		Direction: DirectionToCurrent,
	})
	if terr == nil {
		t.Fatalf("expected error")
	}
	if terr.Kind != ErrInvalidRequest {
		t.Fatalf("error kind %s, wanted InvalidRequest", terr.Kind)
	}
}

func TestManifestThroughFacade(t *testing.T) {
	toolkit := New()
	component := testAccountAddress(t)
	text := fmt.Sprintf(
		"CALL_METHOD ComponentAddress(%q) \"free_tokens\";\nCLEAR_AUTH_ZONE;",
		component,
	)
	parsed, terr := toolkit.ParseManifest(ParseManifestRequest{Manifest: text})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if len(parsed.Instructions) != 2 {
		t.Fatalf("parsed %d instructions", len(parsed.Instructions))
	}
	serialized, terr := toolkit.SerializeManifest(SerializeManifestRequest{
		Instructions: parsed.Instructions,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	reparsed, terr := toolkit.ParseManifest(ParseManifestRequest{
		Manifest: serialized.Manifest,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if len(reparsed.Instructions) != 2 {
		t.Fatalf("re-parsed %d instructions", len(reparsed.Instructions))
	}
}

func TestInstructionsSurviveJSON(t *testing.T) {
	toolkit := New()
	component := testAccountAddress(t)
	text := fmt.Sprintf(
		"CALL_METHOD ComponentAddress(%q) \"deposit\" Decimal(\"2.5\");",
		component,
	)
	parsed, terr := toolkit.ParseManifest(ParseManifestRequest{Manifest: text})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	// instructions cross the boundary as JSON
	jsonData, err := json.Marshal(parsed.Instructions)
	if err != nil {
		t.Fatalf("failed to marshal instructions: %s", err)
	}
	var req SerializeManifestRequest
	if err := json.Unmarshal(
		[]byte(`{"instructions":`+string(jsonData)+`}`),
		&req,
	); err != nil {
		t.Fatalf("failed to unmarshal request: %s", err)
	}
	serialized, terr := toolkit.SerializeManifest(req)
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	reparsed, terr := toolkit.ParseManifest(ParseManifestRequest{
		Manifest: serialized.Manifest,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if len(reparsed.Instructions) != 1 {
		t.Fatalf("re-parsed %d instructions", len(reparsed.Instructions))
	}
}

func TestInputTooLarge(t *testing.T) {
	toolkit := New(WithMaxInputSize(8))
	_, terr := toolkit.ParseManifest(ParseManifestRequest{
		Manifest: "CLEAR_AUTH_ZONE;",
	})
	if terr == nil {
		t.Fatalf("expected error")
	}
	if terr.Kind != ErrInputTooLarge {
		t.Fatalf("error kind %s, wanted InputTooLarge", terr.Kind)
	}
}

func TestCacheInjection(t *testing.T) {
	// outputs are identical with memoization disabled
	cached := New()
	uncached := New(WithCache(cache.Nop()))
	current := testAccountAddress(t)
	first, terr := cached.TranslateAddress(TranslateAddressRequest{
		Address:   current,
		Direction: DirectionToLegacy,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	second, terr := uncached.TranslateAddress(TranslateAddressRequest{
		Address:   current,
		Direction: DirectionToLegacy,
	})
	if terr != nil {
		t.Fatalf("unexpected error: %s", terr)
	}
	if first.Address != second.Address {
		t.Fatalf(
			"cached and uncached outputs differ: %q vs %q",
			first.Address,
			second.Address,
		)
	}
}
