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

//go:build !ristretto

package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Strict least-recently-used backend. Get refreshes recency, Add evicts the
// least-recently-used entry once the bound is exceeded
type lruBackend struct {
	cache *lru.Cache[Key, any]
}

func newBackend(capacity int) backend {
	cache, err := lru.New[Key, any](capacity)
	if err != nil {
		// Only reachable with a non-positive capacity, which New guards
		panic(err)
	}
	return &lruBackend{cache: cache}
}

func (b *lruBackend) get(key Key) (any, bool) {
	return b.cache.Get(key)
}

func (b *lruBackend) add(key Key, value any) {
	b.cache.Add(key, value)
}
