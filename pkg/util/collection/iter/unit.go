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

type unitSequence[T any] struct {
	item     T
	hasValue bool
}

// NewUnitSequence constructs a sequence holding exactly one item.
func NewUnitSequence[T any](item T) Sequence[T] {
	return &unitSequence[T]{item, true}
}

//nolint:revive
func (p *unitSequence[T]) Init() {
	p.hasValue = true
}

//nolint:revive
func (p *unitSequence[T]) HasValue() bool {
	return p.hasValue
}

//nolint:revive
func (p *unitSequence[T]) Value() T {
	if !p.hasValue {
		exhausted()
	}

	return p.item
}

//nolint:revive
func (p *unitSequence[T]) Next() {
	p.hasValue = false
}

//nolint:revive
func (p *unitSequence[T]) Stop() {
	p.hasValue = false
}
