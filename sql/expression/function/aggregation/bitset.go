// Copyright 2022 DoltHub, Inc.
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

package aggregation

import dbsql "github.com/dolthub/windowq/sql"

// bitSet is a growable set of non-negative ints backed by a word slice,
// used during segment-tree construction to track which nodes have
// already been combined into their parent.
type bitSet struct {
	words []uint64
}

const wordBits = 64

func (b *bitSet) ensure(word int) {
	for len(b.words) <= word {
		b.words = append(b.words, 0)
	}
}

// Add marks i as present in the set.
func (b *bitSet) Add(i int) {
	if i < 0 {
		panic(dbsql.ErrNegativeBitsetIndex.New(i))
	}
	word, bit := i/wordBits, uint(i%wordBits)
	b.ensure(word)
	b.words[word] |= 1 << bit
}

// Contains reports whether i is present in the set.
func (b *bitSet) Contains(i int) bool {
	if i < 0 {
		panic(dbsql.ErrNegativeBitsetIndex.New(i))
	}
	word, bit := i/wordBits, uint(i%wordBits)
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<bit) != 0
}
