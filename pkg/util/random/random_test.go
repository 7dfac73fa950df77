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
package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Random_SameSeed(t *testing.T) {
	lhs, rhs := New(42), New(42)
	//
	for i := 0; i < 100; i++ {
		require.Equal(t, lhs.Uint64(), rhs.Uint64())
	}
}

func Test_Random_SetSeed(t *testing.T) {
	rnd := New(7)
	first := []uint64{rnd.Uint64(), rnd.Uint64()}
	// Reseed and replay
	rnd.SetSeed(7)
	assert.Equal(t, first, []uint64{rnd.Uint64(), rnd.Uint64()})
	assert.Equal(t, uint64(7), rnd.Seed())
}

func Test_Random_Fork(t *testing.T) {
	rnd := New(99)
	// Forks are independent of draws on the parent
	f1 := rnd.Fork(0).Uint64()
	rnd.Uint64()
	f2 := rnd.Fork(0).Uint64()
	assert.Equal(t, f1, f2)
	// Different units get different streams
	assert.NotEqual(t, rnd.Fork(0).Uint64(), rnd.Fork(1).Uint64())
}

func Test_Random_Choose(t *testing.T) {
	rnd := New(3)
	items := []string{"a", "b", "c"}
	//
	for i := 0; i < 50; i++ {
		assert.Contains(t, items, Choose(rnd, items))
	}
	//
	assert.Panics(t, func() { Choose(rnd, []string{}) })
}
