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
package bit

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set provides a straightforward bitset implementation. That is, a set of
// (unsigned) integer values implemented as an array of bits.  This is used
// throughout for sets of qubit indices.
type Set struct {
	words []uint64
}

// NewSet creates an empty Set with enough room for the given number of
// elements.  The set will still grow as necessary.
func NewSet(size uint) Set {
	return Set{make([]uint64, (size+63)/64)}
}

// Insert a given value into this set.
func (p *Set) Insert(val uint) {
	word := val / 64
	bit := val % 64
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	// Set bit
	p.words[word] |= uint64(1) << bit
}

// InsertAll inserts zero or more elements into this bitset.
func (p *Set) InsertAll(vals ...uint) {
	for _, v := range vals {
		p.Insert(v)
	}
}

// Contains checks whether a given value is contained, or not.
func (p *Set) Contains(val uint) bool {
	word := val / 64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	//
	return p.words[word]&(uint64(1)<<(val%64)) != 0
}

// Count returns the number of bits in the bitset which are set to one.
func (p *Set) Count() uint {
	count := 0
	//
	for _, w := range p.words {
		count += bits.OnesCount64(w)
	}
	//
	return uint(count)
}

// Elements returns the elements of this set in ascending order.
func (p *Set) Elements() []uint {
	elems := make([]uint, 0, p.Count())
	//
	for w, word := range p.words {
		for word != 0 {
			bit := uint(bits.TrailingZeros64(word))
			elems = append(elems, uint(w)*64+bit)
			word &= word - 1
		}
	}
	//
	return elems
}

func (p *Set) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, e := range p.Elements() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", e))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
