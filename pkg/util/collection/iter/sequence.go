// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package iter

// Sequence abstracts a restartable cursor over a (possibly generated) domain
// of values.  A sequence is positioned on its first value immediately after
// construction, or after a call to Init.  Sequences are not re-entrant: there
// is exactly one active cursor per instance.
type Sequence[T any] interface {
	// Init (re)starts the enumeration from the beginning.
	Init()

	// HasValue checks whether or not a current value exists.
	HasValue() bool

	// Value returns the current value without advancing the cursor.  This
	// panics if there is no current value.
	Value() T

	// Next advances the cursor.  This has no effect on an exhausted sequence.
	Next()

	// Stop forces exhaustion.  Subsequent calls to HasValue return false until
	// the sequence is restarted with Init.
	Stop()
}

// ===============================================================
// Default implementations
// ===============================================================

// Collect restarts a given sequence and allocates a new array containing all of
// its values.  This drains the sequence.
func Collect[T any](seq Sequence[T]) []T {
	var items []T = make([]T, 0)
	//
	for seq.Init(); seq.HasValue(); seq.Next() {
		items = append(items, seq.Value())
	}
	//
	return items
}

// Count restarts a given sequence and counts the number of values it holds.
// This drains the sequence.
func Count[T any](seq Sequence[T]) uint {
	count := uint(0)

	for seq.Init(); seq.HasValue(); seq.Next() {
		count++
	}

	return count
}

// exhausted is the panic raised when reading the value of an exhausted
// sequence.
func exhausted() {
	panic("sequence has no value")
}
