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

//go:build ristretto

package cache

import (
	"github.com/dgraph-io/ristretto"
)

// Cost-aware backend built on ristretto. Admission is probabilistic and
// writes are buffered, so entries may take a moment to become visible;
// the Store recomputes on miss, which keeps outputs identical to the
// strict-LRU backend
type ristrettoBackend struct {
	cache *ristretto.Cache
}

func newBackend(capacity int) backend {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	return &ristrettoBackend{cache: cache}
}

func (b *ristrettoBackend) get(key Key) (any, bool) {
	return b.cache.Get(string(key[:]))
}

func (b *ristrettoBackend) add(key Key, value any) {
	b.cache.Set(string(key[:]), value, 1)
}
