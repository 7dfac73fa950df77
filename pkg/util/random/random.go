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

import "math/rand/v2"

// Random is a seedable source of random numbers.  A single instance is threaded
// through a generation run, such that the whole run is reproducible given its
// seed.  Random is not safe for concurrent use: parallel units of work should
// each obtain their own stream via Fork.
type Random struct {
	seed uint64
	rng  *rand.Rand
}

// New constructs a random source from a given seed.
func New(seed uint64) *Random {
	return &Random{seed, rand.New(rand.NewPCG(seed, mix(seed)))}
}

// Seed returns the seed this source was (last) seeded with.
func (p *Random) Seed() uint64 {
	return p.seed
}

// SetSeed reseeds this source, such that it reproduces the stream of a fresh
// source constructed with the same seed.
func (p *Random) SetSeed(seed uint64) {
	p.seed = seed
	p.rng = rand.New(rand.NewPCG(seed, mix(seed)))
}

// Uint64 returns a uniformly distributed 64bit value.
func (p *Random) Uint64() uint64 {
	return p.rng.Uint64()
}

// UintN returns a uniformly distributed value in [0,n).  This panics if n is
// zero.
func (p *Random) UintN(n uint) uint {
	if n == 0 {
		panic("invalid random range (n == 0)")
	}
	//
	return p.rng.UintN(n)
}

// Fork derives an independent stream for the ith unit of work.  The derived
// stream depends only upon the seed of this source and i, not on how many
// values have already been drawn.
func (p *Random) Fork(i uint64) *Random {
	return New(mix(p.seed ^ mix(i+1)))
}

// Choose selects an item uniformly at random from a non-empty array.
func Choose[T any](rnd *Random, items []T) T {
	if len(items) == 0 {
		panic("cannot choose from an empty array")
	}
	//
	return items[rnd.UintN(uint(len(items)))]
}

// splitmix64 finaliser, used to decorrelate seeds.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	//
	return x ^ (x >> 31)
}
