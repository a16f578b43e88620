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


package store

import "errors"

var (
	// ErrUnavailable indicates that the store could not be opened in either
	// read-write or read-only mode, or that an operation was attempted on a
	// nil or closed handle. Callers treat it as "caching disabled".
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound indicates that no record exists for the given key.
	// A fetch miss is a normal outcome, not an error condition.
	ErrNotFound = errors.New("record not found")

	// ErrCapacityExceeded indicates a key or value length beyond the
	// engines' representable maximum. The operation had no partial effect.
	ErrCapacityExceeded = errors.New("key or value too large")

	// ErrBackendFailure indicates that the underlying engine reported an
	// internal error. The engine's own error is joined for diagnostics.
	ErrBackendFailure = errors.New("backend failure")

	// ErrUnknownBackend indicates that no driver is registered under the
	// requested backend name.
	ErrUnknownBackend = errors.New("unknown backend")
)
