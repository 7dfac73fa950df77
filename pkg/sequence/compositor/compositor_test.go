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
package compositor

import (
	"sort"
	"testing"

	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Catenation_1(t *testing.T) {
	c := NewCatenation(seq("a1", "a2"), seq("b1"))
	assert.Equal(t, []string{"a1", "a2", "b1"}, iter.Collect[string](c))
}

func Test_Catenation_2(t *testing.T) {
	c := NewCatenation(seq(), seq("b1"), seq(), seq("d1", "d2"))
	assert.Equal(t, []string{"b1", "d1", "d2"}, iter.Collect[string](c))
}

func Test_Catenation_3(t *testing.T) {
	c := NewCatenation[string]()
	assert.False(t, c.HasValue())
	assert.Empty(t, iter.Collect[string](c))
}

func Test_Catenation_Order(t *testing.T) {
	c := NewCatenation(seq("a1", "a2", "a3"), seq("b1", "b2"))
	seenB := false
	//
	for c.Init(); c.HasValue(); c.Next() {
		v := c.Value()
		if v[0] == 'b' {
			seenB = true
		} else {
			require.False(t, seenB, "value %s of A after B", v)
		}
	}
}

func Test_Catenation_Restart(t *testing.T) {
	c := NewCatenation(seq("a1", "a2"), seq("b1"))
	c.Next()
	c.Next()
	require.Equal(t, "b1", c.Value())
	// Restart
	c.Init()
	assert.Equal(t, "a1", c.Value())
	assert.Equal(t, []string{"a1", "a2", "b1"}, iter.Collect[string](c))
}

func Test_Catenation_AddSequence(t *testing.T) {
	c := NewCatenation(seq("a1"))
	c.AddSequence(seq("b1"))
	assert.False(t, c.HasValue())
	assert.Equal(t, uint(2), c.Size())
	assert.Equal(t, []string{"a1", "b1"}, iter.Collect[string](c))
}

func Test_Rotation_1(t *testing.T) {
	c := NewRotation(seq("a", "b", "c"), seq("x"))
	assert.Equal(t, []string{"a", "x", "b", "c"}, iter.Collect[string](c))
}

func Test_Rotation_2(t *testing.T) {
	c := NewRotation(seq("a", "b"), seq("x", "y"), seq("p"))
	assert.Equal(t, []string{"a", "x", "p", "b", "y"}, iter.Collect[string](c))
}

func Test_Random_1(t *testing.T) {
	c := NewRandom(random.New(3), seq("a", "b", "c"), seq("x", "y"))
	items := iter.Collect[string](c)
	sort.Strings(items)
	// Every value appears exactly once, whatever the interleaving.
	assert.Equal(t, []string{"a", "b", "c", "x", "y"}, items)
}

func Test_Random_PreservesComponentOrder(t *testing.T) {
	c := NewRandom(random.New(8), seq("a1", "a2", "a3"), seq("b1", "b2", "b3"))
	var as, bs []string
	//
	for c.Init(); c.HasValue(); c.Next() {
		if v := c.Value(); v[0] == 'a' {
			as = append(as, v)
		} else {
			bs = append(bs, v)
		}
	}
	//
	assert.Equal(t, []string{"a1", "a2", "a3"}, as)
	assert.Equal(t, []string{"b1", "b2", "b3"}, bs)
}

func Test_Random_StableValue(t *testing.T) {
	c := NewRandom(random.New(8), seq("a1", "a2"), seq("b1", "b2"))
	// Reading the value repeatedly must not change the choice.
	v := c.Value()
	assert.Equal(t, v, c.Value())
	assert.Equal(t, v, c.Value())
}

func Test_Compositor_Restart(t *testing.T) {
	compositors := []*Compositor[string]{
		NewCatenation(seq("a", "b"), seq("c")),
		NewRotation(seq("a", "b"), seq("c")),
		NewRandom(random.New(21), seq("a", "b"), seq("c")),
	}
	//
	for _, c := range compositors {
		first := iter.Collect[string](c)
		second := iter.Collect[string](c)
		assert.Equal(t, first, second)
	}
}

func Test_Compositor_Stop(t *testing.T) {
	c := NewCatenation(seq("a", "b"), seq("c"))
	c.Stop()
	assert.False(t, c.HasValue())
	c.Next()
	assert.False(t, c.HasValue())
	assert.Panics(t, func() { c.Value() })
	// Restart after stop
	c.Init()
	assert.Equal(t, "a", c.Value())
}

// ===================================================================
// Test Helpers
// ===================================================================

func seq(items ...string) iter.Sequence[string] {
	return iter.NewArraySequence(items...)
}
