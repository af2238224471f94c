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
	"log/slog"

	"github.com/lumenlabs-io/golumen/cache"
)

// ToolkitOptionFunc is a type that represents functions that modify the
// Toolkit config
type ToolkitOptionFunc func(*Toolkit)

// WithLogger specifies the logger to use. If none is provided,
// slog.Default() is used
func WithLogger(logger *slog.Logger) ToolkitOptionFunc {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// WithCache specifies an existing derivation cache store to use, which is
// useful for sharing one store across toolkits or injecting cache.Nop() in
// tests
func WithCache(store *cache.Store) ToolkitOptionFunc {
	return func(t *Toolkit) {
		t.store = store
	}
}

// WithCacheSize specifies the derivation cache capacity in entries. Ignored
// when WithCache is also given
func WithCacheSize(capacity int) ToolkitOptionFunc {
	return func(t *Toolkit) {
		t.cacheSize = capacity
	}
}

// WithMaxInputSize specifies the maximum request payload size in bytes.
// Larger inputs are rejected before any parsing begins
func WithMaxInputSize(size int) ToolkitOptionFunc {
	return func(t *Toolkit) {
		t.maxInputSize = size
	}
}
