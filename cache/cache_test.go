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

package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMemoizeReturnsComputedValue(t *testing.T) {
	store := New(16)
	result, err := Memoize(store, "test/upper", "abc", func() (string, error) {
		return "ABC", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if result != "ABC" {
		t.Fatalf("got %q, wanted ABC", result)
	}
}

func TestMemoizeCachesSuccesses(t *testing.T) {
	store := New(16)
	var calls int
	for n := 0; n < 5; n++ {
		result, err := Memoize(store, "test/calls", 42, func() (int, error) {
			calls++
			return 99, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if result != 99 {
			t.Fatalf("got %d, wanted 99", result)
		}
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, wanted 1", calls)
	}
}

func TestMemoizeDoesNotCacheErrors(t *testing.T) {
	store := New(16)
	var calls int
	boom := errors.New("boom")
	for n := 0; n < 3; n++ {
		_, err := Memoize(store, "test/errors", "in", func() (string, error) {
			calls++
			return "", boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("compute ran %d times, wanted 3 (errors are not cached)", calls)
	}
}

func TestKeyspacesAreDistinct(t *testing.T) {
	store := New(16)
	first, err := Memoize(store, "kind/a", "same", func() (string, error) {
		return "from-a", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := Memoize(store, "kind/b", "same", func() (string, error) {
		return "from-b", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != "from-a" || second != "from-b" {
		t.Fatalf("derivation kinds share a keyspace: %q, %q", first, second)
	}
}

// Cache transparency: for the same sequence of inputs, a bounded store, a
// nop store and a nil store must yield identical outputs
func TestTransparency(t *testing.T) {
	stores := map[string]*Store{
		"bounded": New(4),
		"nop":     Nop(),
		"nil":     nil,
	}
	inputs := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 1}
	expected := make([]string, 0, len(inputs))
	for _, in := range inputs {
		expected = append(expected, fmt.Sprintf("out-%d", in))
	}
	for name, store := range stores {
		got := make([]string, 0, len(inputs))
		for _, in := range inputs {
			in := in
			result, err := Memoize(store, "test/transparent", in, func() (string, error) {
				return fmt.Sprintf("out-%d", in), nil
			})
			if err != nil {
				t.Fatalf("[%s] unexpected error: %s", name, err)
			}
			got = append(got, result)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Fatalf(
					"[%s] output %d was %q, wanted %q",
					name,
					i,
					got[i],
					expected[i],
				)
			}
		}
	}
}

func TestEvictionKeepsOutputsCorrect(t *testing.T) {
	// a store far smaller than the working set still returns correct values
	store := New(2)
	for round := 0; round < 3; round++ {
		for i := 0; i < 10; i++ {
			result, err := Memoize(store, "test/evict", i, func() (int, error) {
				return i * 2, nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if result != i*2 {
				t.Fatalf(
					"round %d: got %d for input %d, wanted %d",
					round,
					result,
					i,
					i*2,
				)
			}
		}
	}
}

func TestConcurrentCallersComputeOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := New(16)
	const callers = 32
	var computations atomic.Int64
	release := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
			results[i], errs[i] = Memoize(
				store,
				"test/once",
				"shared-input",
				func() (string, error) {
					computations.Add(1)
					return "shared-output", nil
				},
			)
		}()
	}
	close(release)
	wg.Wait()
	for i := 0; i < callers; i++ {
		i := i
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %s", i, errs[i])
		}
		if results[i] != "shared-output" {
			t.Fatalf("caller %d got %q", i, results[i])
		}
	}
	// callers racing ahead of the first insert collapse into one flight;
	// callers arriving after it hit the cache
	if n := computations.Load(); n != 1 {
		t.Fatalf("derivation ran %d times, wanted 1", n)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	type input struct {
		A string
		B int
	}
	first, err := Fingerprint("kind", input{A: "x", B: 1})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := Fingerprint("kind", input{A: "x", B: 1})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != second {
		t.Fatalf("fingerprints of equal inputs differ")
	}
	different, err := Fingerprint("kind", input{A: "x", B: 2})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first == different {
		t.Fatalf("fingerprints of different inputs collide")
	}
	otherKind, err := Fingerprint("other", input{A: "x", B: 1})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first == otherKind {
		t.Fatalf("fingerprints of different kinds collide")
	}
}
