// Copyright 2025 Poiesic Systems
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


// Package store provides a uniform key/value persistence abstraction over
// interchangeable embedded database engines.
//
// Callers use it to cache opaque binary records on disk without knowing
// which engine does the persisting. Each engine lives in its own adapter
// subpackage (store/bolt, store/badgerdb, store/leveldb, store/pebbledb)
// that registers a Driver at init time; importing an adapter compiles that
// engine in, and a configuration value names the one to use:
//
//	import _ "github.com/acmoYimke/neomutt/store/bolt"
//
//	h, err := store.Open("bolt", "/path/to/cache.db")
//	if err != nil {
//	    // caching disabled, not fatal
//	}
//	defer h.Close()
//
// # Contract
//
// A Handle exposes five operations (Fetch, Store, Delete, Close, Version)
// with identical semantics regardless of backend. Keys and values are raw
// byte slices with explicit lengths; they need not be valid text, and
// equality is byte-exact. Store has replace semantics: writing a value for
// an existing key fully overwrites the prior value. A fetch miss is a
// normal outcome reported as ErrNotFound, not a failure.
//
// Opening tries read-write creation first and falls back to a strictly
// read-only open before giving up, so a cache that cannot be written can
// still be read.
//
// # Ownership
//
// Values returned by Fetch are copies owned by the caller; adapters copy
// engine-owned buffers (and release any engine-side references) before
// returning, so no explicit free step exists at this layer.
//
// Close is idempotent at the Handle layer: the first call releases the
// engine resources, later calls are no-ops, and every other operation on a
// closed (or nil) Handle fails safely with ErrUnavailable.
//
// # Concurrency
//
// Operations are synchronous and blocking with no internal timeouts or
// cancellation. A single Handle is not safe for concurrent use without
// external locking; independent Handles share no state at this layer.
//
// # Error Handling
//
// Storage is a best-effort cache, not a system of record. No operation
// panics; all failure is reported through the sentinel errors in this
// package, checked with errors.Is. An open that fails both modes yields
// ErrUnavailable and callers should treat it as "caching disabled".
package store
