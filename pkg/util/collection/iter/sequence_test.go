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

import (
	"testing"
)

func Test_ArraySequence_0(t *testing.T) {
	checkSequence(t, NewEmptySequence[uint](), []uint{})
}

func Test_ArraySequence_1(t *testing.T) {
	checkSequence(t, NewArraySequence[uint](1), []uint{1})
}

func Test_ArraySequence_2(t *testing.T) {
	checkSequence(t, NewArraySequence[uint](1, 2, 3), []uint{1, 2, 3})
}

func Test_ArraySequence_3(t *testing.T) {
	seq := NewArraySequence[uint](1, 2, 3)
	seq.Next()
	seq.Next()
	// Partial consumption then restart
	checkSequence(t, seq, []uint{1, 2, 3})
}

func Test_UnitSequence_1(t *testing.T) {
	checkSequence(t, NewUnitSequence[uint](7), []uint{7})
}

func Test_ProjectSequence_1(t *testing.T) {
	seq := NewProjectSequence(NewArraySequence[uint](1, 2, 3), func(x uint) uint { return x * 10 })
	checkSequence(t, seq, []uint{10, 20, 30})
}

func Test_FlattenSequence_1(t *testing.T) {
	seq := NewFlattenSequence(NewArraySequence([]uint{1, 2}, nil, []uint{3}, []uint{}))
	checkSequence(t, seq, []uint{1, 2, 3})
}

func Test_FlattenSequence_2(t *testing.T) {
	checkSequence(t, NewFlattenSequence(NewArraySequence[[]uint](nil, []uint{})), []uint{})
	checkSequence(t, NewFlattenSequence(NewEmptySequence[[]uint]()), []uint{})
}

func Test_Stop_1(t *testing.T) {
	seqs := []Sequence[uint]{
		NewArraySequence[uint](1, 2),
		NewUnitSequence[uint](1),
		NewProjectSequence(NewArraySequence[uint](1), func(x uint) uint { return x }),
		NewFlattenSequence(NewArraySequence([]uint{1}, []uint{2})),
	}
	//
	for i, seq := range seqs {
		seq.Stop()
		//
		if seq.HasValue() {
			t.Errorf("sequence %d has value after stop", i)
		}
		// Stopping twice is harmless
		seq.Stop()
		seq.Next()
		//
		if seq.HasValue() {
			t.Errorf("sequence %d has value after stop", i)
		}
	}
}

func Test_Value_Exhausted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic reading exhausted sequence")
		}
	}()
	//
	seq := NewArraySequence[uint](1)
	seq.Next()
	seq.Value()
}

func Test_Count_1(t *testing.T) {
	if n := Count(NewArraySequence[uint](5, 6, 7)); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check a sequence holds exactly the expected items, and that restarting it
// reproduces the same items.
func checkSequence[E comparable](t *testing.T, seq Sequence[E], expected []E) {
	for pass := 0; pass < 2; pass++ {
		actual := Collect(seq)
		//
		if len(actual) != len(expected) {
			t.Errorf("expected %d elements, got %d (pass %d)", len(expected), len(actual), pass)
			return
		}
		//
		for i := range expected {
			if actual[i] != expected[i] {
				t.Errorf("expected %v, got %v (pass %d)", expected[i], actual[i], pass)
			}
		}
		// Sanity check exhausted
		if seq.HasValue() {
			t.Errorf("expected %d elements, got more", len(expected))
		}
	}
}
